package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Detected is deliberately not styled as an error: finding a
// WAF is the expected positive outcome of a check, not a failure.
var (
	Primary = lipgloss.Color("#7D56F4")
	Success = lipgloss.Color("#00D26A")
	Warning = lipgloss.Color("#FFB800")
	Danger  = lipgloss.Color("#FF3838")
	Muted   = lipgloss.Color("#6B7280")
	InfoCol = lipgloss.Color("#4D96FF")
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	SubtitleStyle = lipgloss.NewStyle().Foreground(Muted)
	BracketStyle  = lipgloss.NewStyle().Foreground(Muted)

	DetectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(Success)
	NotDetectedStyle = lipgloss.NewStyle().Foreground(Muted)
	VendorStyle      = lipgloss.NewStyle().Foreground(InfoCol)
	ErrStyle         = lipgloss.NewStyle().Foreground(Warning)
	FatalStyle       = lipgloss.NewStyle().Bold(true).Foreground(Danger)

	StatLabelStyle = lipgloss.NewStyle().Foreground(Muted)
	StatValueStyle = lipgloss.NewStyle().Bold(true)
)

// StatusCodeStyle colors an HTTP status by class.
func StatusCodeStyle(code int) lipgloss.Style {
	switch {
	case code >= 200 && code < 300:
		return lipgloss.NewStyle().Foreground(Success)
	case code >= 300 && code < 400:
		return lipgloss.NewStyle().Foreground(InfoCol)
	case code >= 400 && code < 500:
		return lipgloss.NewStyle().Foreground(Warning)
	case code >= 500:
		return lipgloss.NewStyle().Foreground(Danger)
	default:
		return lipgloss.NewStyle().Foreground(Muted)
	}
}
