package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF4672")
	ColorMuted   = lipgloss.Color("#626262")
	ColorBorder  = lipgloss.Color("#3C3C3C")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	LabelStyle        = lipgloss.NewStyle().Width(24)
	FocusedLabelStyle = LabelStyle.Foreground(ColorPrimary).Bold(true)

	ValueStyle = lipgloss.NewStyle().Width(16).Align(lipgloss.Right)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	HighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	ErrorStyle     = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(ColorMuted)
)
