package panels

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/lojistik/internal/risk"
	"github.com/zappabad/lojistik/tui/styles"
)

// AlertsPanel renders the risk commentary of a snapshot.
type AlertsPanel struct {
	report risk.Report
}

// NewAlertsPanel creates a new alerts panel.
func NewAlertsPanel() *AlertsPanel {
	return &AlertsPanel{}
}

// SetReport sets the evaluator report to render.
func (p *AlertsPanel) SetReport(r risk.Report) {
	p.report = r
}

// View renders a bordered alert box, or a single stable line when no
// heuristic fired.
func (p *AlertsPanel) View() string {
	if p.report.Stable() {
		return "\n" + styles.OKStyle.Faint(true).Render("✔ Piyasa analiz edildi: Stabil.")
	}

	lines := make([]string, 0, len(p.report.Alerts))
	for _, a := range p.report.Alerts {
		lines = append(lines, severityStyle(a.Severity).Render(a.Title)+" "+a.Message)
	}
	title := styles.RenderTitle("🧠 YAPAY ZEKA ANALİZİ")
	return styles.AlertPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, lines...)...))
}

func severityStyle(s risk.Severity) lipgloss.Style {
	switch s {
	case risk.SeverityCritical:
		return styles.ErrorStyle
	case risk.SeverityWarning:
		return styles.WarnStyle
	default:
		return styles.OKStyle.Bold(true)
	}
}
