package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")
	ColorCursorBg  = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink
	ColorInfo   = lipgloss.Color("#00FFFF") // Neon cyan
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CursorStyle = lipgloss.NewStyle().
			Background(ColorCursorBg).
			Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Bold(true).
				Underline(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	RunningStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy)

	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ModeStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	MessageStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ColorCritical)
)

// Glyphs
const (
	CheckboxOn  = "[x]"
	CheckboxOff = "[ ]"
	RunningMark = "◉"
	PausedMark  = "⏸ PAUSED"
)

// SeverityStyle returns the colour used for a status of the given severity.
func SeverityStyle(s stats.Severity) lipgloss.Style {
	switch s {
	case stats.SeverityHealthy:
		return lipgloss.NewStyle().Foreground(ColorHealthy)
	case stats.SeverityWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case stats.SeverityCritical:
		return lipgloss.NewStyle().Foreground(ColorCritical)
	default:
		return lipgloss.NewStyle().Foreground(ColorTextMuted)
	}
}
