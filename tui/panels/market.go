package panels

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	marketview "github.com/zappabad/lojistik/internal/market/view"
	"github.com/zappabad/lojistik/tui/styles"
)

// MarketOverviewPanel renders the price table of a snapshot.
type MarketOverviewPanel struct {
	snap marketview.MarketSnapshot
}

// NewMarketOverviewPanel creates a new market overview panel.
func NewMarketOverviewPanel() *MarketOverviewPanel {
	return &MarketOverviewPanel{}
}

// SetSnapshot sets the snapshot to render.
func (p *MarketOverviewPanel) SetSnapshot(snap marketview.MarketSnapshot) {
	p.snap = snap
}

// View renders the panel.
func (p *MarketOverviewPanel) View() string {
	rows := make([][]string, 0, len(p.snap.Rows.Results))
	for _, res := range p.snap.Rows.Results {
		in, _ := p.snap.Instrument(res.Key)
		if !res.OK() {
			rows = append(rows, []string{res.Key, "N/A", "-", styles.ErrorStyle.Render("HATA"), in.Label})
			continue
		}
		v := res.Value
		rows = append(rows, []string{
			string(v.Instrument.Symbol),
			FormatPrice(v.Last, v.Instrument.PriceDecimals()),
			RangeBar(v.Position, RangeBarWidth),
			ChangeArrow(v.Change),
			v.Instrument.Label,
		})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(styles.BorderStyle).
		Headers("Enstrüman", "Fiyat", "Trend (14G)", "Değişim", "Etiket").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle
			}
			switch col {
			case 0:
				return styles.CellStyle.Inherit(styles.SymbolStyle)
			case 1, 3:
				return styles.CellStyle.Align(lipgloss.Right)
			case 2:
				return styles.CellStyle.Align(lipgloss.Center)
			case 4:
				return styles.CellStyle.Inherit(styles.LabelStyle)
			}
			return styles.CellStyle
		})

	return t.String()
}

// FormatPrice renders a price as dollars with thousands separators and the
// given number of decimals.
func FormatPrice(price float64, decimals int) string {
	return "$" + humanize.FormatFloat("#,###."+strings.Repeat("#", decimals), price)
}

// ChangeArrow renders a day change as a colored arrow and magnitude.
func ChangeArrow(pct float64) string {
	switch {
	case pct > 0:
		return styles.PriceUpStyle.Render(fmt.Sprintf("▲ %%%.2f", math.Abs(pct)))
	case pct < 0:
		return styles.PriceDownStyle.Render(fmt.Sprintf("▼ %%%.2f", math.Abs(pct)))
	default:
		return styles.MutedStyle.Render("• %0.00")
	}
}

// joinLines is strings.Join with a newline, skipping empty parts.
func joinLines(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
