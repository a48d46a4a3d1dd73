package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // Soft pastel salmon pink - primary accent
	coralPink   = lipgloss.Color("#FFCCCB") // Lighter coral accent - secondary
	mintGreen   = lipgloss.Color("#A8E6CF") // Soft mint green - enabled/consumed states
	mutedGray   = lipgloss.Color("#6B7280") // Muted gray - secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // Bright white - primary text
	amber       = lipgloss.Color("#FCD34D") // Amber - unknown state
)

var (
	// Text Styles
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	enabledStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	disabledStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	unknownStyle = lipgloss.NewStyle().
			Foreground(amber)

	pinnedStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	pageStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			Bold(true)

	// Container Styles
	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(salmonPink).
			Padding(0, 1)

	featureStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(coralPink).
			Padding(0, 1)

	logStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedGray)
)

