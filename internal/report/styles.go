package report

import "github.com/charmbracelet/lipgloss"

var (
	colorBlue   = lipgloss.Color("4")
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorRed    = lipgloss.Color("1")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	critStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)
