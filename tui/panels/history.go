package panels

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zappabad/lojistik/internal/history"
	"github.com/zappabad/lojistik/tui/styles"
)

// HistoryPanel renders the most recent rows of the snapshot log.
type HistoryPanel struct {
	tbl  history.Table
	rows int
}

// NewHistoryPanel creates a panel showing up to rows entries.
func NewHistoryPanel(rows int) *HistoryPanel {
	if rows <= 0 {
		rows = 10
	}
	return &HistoryPanel{rows: rows}
}

// SetTable sets the loaded log.
func (p *HistoryPanel) SetTable(t history.Table) {
	p.tbl = t
}

// View renders the panel, newest row first.
func (p *HistoryPanel) View() string {
	if len(p.tbl.Rows) == 0 {
		return styles.MutedStyle.Render("Dosya boş.")
	}

	rows := make([][]string, 0, p.rows)
	for _, r := range p.tbl.Last(p.rows) {
		rows = append(rows, append([]string{r.Time}, r.Values...))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		BorderStyle(styles.BorderStyle).
		Headers(p.tbl.Header()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.CellStyle.Bold(true)
			}
			return styles.CellStyle.Foreground(styles.PrimaryColor)
		})

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.RenderTitle("📜 Lojistik Kayıt Defteri (En Yeni En Üstte)"),
		t.String(),
	)
}
