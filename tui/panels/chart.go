package panels

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/zappabad/lojistik/internal/history"
	"github.com/zappabad/lojistik/internal/market"
	"github.com/zappabad/lojistik/tui/styles"
)

var chartColors = map[string]asciigraph.AnsiColor{
	"blue":    asciigraph.Blue,
	"cyan":    asciigraph.Cyan,
	"magenta": asciigraph.Magenta,
	"green":   asciigraph.Green,
	"red":     asciigraph.Red,
	"yellow":  asciigraph.Yellow,
	"white":   asciigraph.White,
}

// ChartPanel renders one trend chart per instrument from the snapshot log.
type ChartPanel struct {
	instruments []market.Instrument
	tbl         history.Table
	height      int
}

// NewChartPanel creates a chart panel for the given instruments.
func NewChartPanel(instruments []market.Instrument, height int) *ChartPanel {
	if height <= 0 {
		height = 10
	}
	return &ChartPanel{instruments: instruments, height: height}
}

// SetTable sets the loaded log.
func (p *ChartPanel) SetTable(t history.Table) {
	p.tbl = t
}

// View renders every instrument present in the log header, in instrument
// order, followed by the covered time range.
func (p *ChartPanel) View() string {
	var b strings.Builder
	b.WriteString("\n" + styles.HeadingStyle.Render("GEÇMİŞ PERFORMANS GRAFİKLERİ") + "\n\n")

	for _, in := range p.instruments {
		values, ok := p.tbl.Column(in.Symbol)
		if !ok || len(values) == 0 {
			continue
		}
		last := values[len(values)-1]
		heading := styles.Parse("bold " + in.Color).Render(fmt.Sprintf("📈 %s Trendi (Son: $%.*f)", in.Symbol, in.PriceDecimals(), last))
		b.WriteString(heading + "\n")
		b.WriteString(p.plot(values, in) + "\n")
		b.WriteString("\n" + strings.Repeat("-", 40) + "\n\n")
	}

	if n := len(p.tbl.Rows); n > 0 {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("Veri Aralığı: %s - %s", p.tbl.Rows[0].Time, p.tbl.Rows[n-1].Time)))
	}
	return b.String()
}

func (p *ChartPanel) plot(values []float64, in market.Instrument) string {
	opts := []asciigraph.Option{
		asciigraph.Height(p.height),
		asciigraph.Precision(uint(in.PriceDecimals())),
	}
	if c, ok := chartColors[in.Color]; ok {
		opts = append(opts, asciigraph.SeriesColors(c))
	}
	return asciigraph.Plot(values, opts...)
}
