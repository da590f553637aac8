package panels

import (
	"strings"

	"github.com/zappabad/lojistik/internal/market/analysis"
	"github.com/zappabad/lojistik/tui/styles"
)

// RangeBarWidth is the number of cells of a range bar.
const RangeBarWidth = 10

// RangeBar draws the position of the last close within its window as a
// marker on a line of width cells. The marker color follows the bucket.
func RangeBar(pos analysis.Position, width int) string {
	if pos.Flat {
		return styles.MutedStyle.Render("──●──")
	}
	if width < 1 {
		width = RangeBarWidth
	}
	idx := int(pos.Value * float64(width-1))

	marker := styles.RangeMidStyle
	switch pos.Bucket() {
	case analysis.BucketHigh:
		marker = styles.RangeHighStyle
	case analysis.BucketLow:
		marker = styles.RangeLowStyle
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i == idx {
			b.WriteString(marker.Render("●"))
			continue
		}
		b.WriteString(styles.MutedStyle.Render("─"))
	}
	return b.String()
}
