package panels

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	newsservice "github.com/zappabad/lojistik/internal/news/service"
	"github.com/zappabad/lojistik/tui/styles"
)

// NewsPanel renders the classified news desk.
type NewsPanel struct {
	desk  newsservice.Desk
	width int
}

// NewNewsPanel creates a new news panel.
func NewNewsPanel() *NewsPanel {
	return &NewsPanel{}
}

// SetSize sets the table width; zero lets the table size to content.
func (p *NewsPanel) SetSize(width int) {
	p.width = width
}

// SetDesk sets the scan result to render.
func (p *NewsPanel) SetDesk(d newsservice.Desk) {
	p.desk = d
}

// View renders the panel.
func (p *NewsPanel) View() string {
	rows := make([][]string, 0, len(p.desk.Rows))
	for _, r := range p.desk.Rows {
		src := lipgloss.NewStyle().Foreground(styles.Color(r.Source.Color)).Render(r.Source.Name)
		if r.Err != nil {
			rows = append(rows, []string{"-", r.Source.Name, styles.ErrorStyle.Render("HATA"), r.Err.Error()})
			continue
		}
		title := styles.Parse(r.Verdict.Style).Render(r.Verdict.Icon + " " + r.Entry.Title)
		rows = append(rows, []string{r.Date(), src, r.Source.Tag, title})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		BorderStyle(styles.BorderStyle).
		Headers("Tarih", "Kaynak", "Kategori", "İstihbarat Başlığı").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle.Align(lipgloss.Center)
			}
			switch col {
			case 0:
				return styles.CellStyle.Align(lipgloss.Center).Inherit(styles.MutedStyle)
			case 1:
				return styles.CellStyle.Align(lipgloss.Center).Bold(true)
			case 2:
				return styles.CellStyle.Align(lipgloss.Center).Inherit(styles.MutedStyle)
			}
			return styles.CellStyle
		})
	if p.width > 0 {
		t = t.Width(p.width)
	}

	var footnote string
	if p.desk.Important > 0 {
		footnote = styles.MutedStyle.Render(fmt.Sprintf("Dipnot: Tarama sonucunda %d adet kritik sinyal yakalandı.", p.desk.Important))
	}
	return joinLines(styles.RenderTitle("🌍 KÜRESEL İSTİHBARAT MASASI"), t.String(), footnote)
}
