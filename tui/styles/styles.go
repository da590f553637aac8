package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#06B6D4") // Cyan
	SecondaryColor = lipgloss.Color("#10B981") // Green
	AccentColor    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	UpColor   = lipgloss.Color("#10B981") // Green
	DownColor = lipgloss.Color("#EF4444") // Red
	MidColor  = lipgloss.Color("#EAB308") // Yellow

	// Background colors
	HeaderBackgroundColor = lipgloss.Color("#1E3A8A") // Dark blue
	BorderColor           = lipgloss.Color("#374151")

	// Text colors
	TextColor      = lipgloss.Color("#F9FAFB")
	TextMutedColor = lipgloss.Color("#6B7280")
)

// namedColors maps the color names used in configuration to the palette.
var namedColors = map[string]lipgloss.Color{
	"blue":      lipgloss.Color("#3B82F6"),
	"dark_blue": HeaderBackgroundColor,
	"cyan":      lipgloss.Color("#06B6D4"),
	"magenta":   lipgloss.Color("#D946EF"),
	"green":     UpColor,
	"red":       DownColor,
	"yellow":    MidColor,
	"white":     TextColor,
}

// Panel styles
var (
	// Alert panel: rounded red border, shrinks to content
	AlertPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DownColor).
			Padding(0, 1)

	// Panel title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// Section heading (charts)
	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	// Table header row
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(HeaderBackgroundColor).
			Padding(0, 1)

	// Table cell
	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Table border
	BorderStyle = lipgloss.NewStyle().
			Foreground(BorderColor)
)

// Text styles
var (
	// Price movement
	PriceUpStyle = lipgloss.NewStyle().
			Foreground(UpColor)

	PriceDownStyle = lipgloss.NewStyle().
			Foreground(DownColor)

	// Instrument symbol column
	SymbolStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// Label column
	LabelStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(TextMutedColor)

	// Dimmed helper text
	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	// Positive status line
	OKStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor)

	// Warnings and errors
	WarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DownColor)

	// Range bar marker bands
	RangeLowStyle  = lipgloss.NewStyle().Foreground(UpColor)
	RangeMidStyle  = lipgloss.NewStyle().Foreground(MidColor)
	RangeHighStyle = lipgloss.NewStyle().Foreground(DownColor)

	// Spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)
)

// Helper function to render a title line
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

// Color resolves a configured color name; unknown names fall back to the
// primary text color.
func Color(name string) lipgloss.Color {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return TextColor
}

// Parse builds a style from a description such as "bold red" or "dim italic".
func Parse(desc string) lipgloss.Style {
	s := lipgloss.NewStyle()
	for _, tok := range strings.Fields(strings.ToLower(desc)) {
		switch tok {
		case "bold":
			s = s.Bold(true)
		case "italic":
			s = s.Italic(true)
		case "underline":
			s = s.Underline(true)
		case "dim":
			s = s.Faint(true)
		default:
			if _, ok := namedColors[tok]; ok {
				s = s.Foreground(Color(tok))
			}
		}
	}
	return s
}
