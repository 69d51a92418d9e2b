package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = lipgloss.Color("#5BB974")
	colorSoft   = lipgloss.Color("#A8DAB5")
	colorMuted  = lipgloss.Color("#6B7280")
	colorText   = lipgloss.Color("#FFFFFF")
	colorWarn   = lipgloss.Color("#F4B400")
	colorError  = lipgloss.Color("#FF4757")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginBottom(1)

	MappedStyle = lipgloss.NewStyle().
			Foreground(colorText)

	WarnStyle = lipgloss.NewStyle().
			Foreground(colorWarn)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSoft).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)
