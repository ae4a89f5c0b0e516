package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the tally terminal theme
const (
	ColorBorder       = "#3A3F55" // Grey-blue
	ColorPrimaryText  = "#E6EAF2"
	ColorDisabledText = "#6D7383"

	ColorAccentMain   = "#7C3AED" // Headers
	ColorAccentBright = "#A78BFA"

	ColorSuccess = "#22C55E" // Remitted
	ColorWarning = "#F59E0B" // Pending
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
)

// Success renders a confirmation line
func Success(msg string) string {
	return successStyle.Render("✓ " + msg)
}

// Highlight renders a value the user has to copy, such as a token
func Highlight(s string) string {
	return accentStyle.Render(s)
}
