package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed       = lipgloss.Color("#ff5555")
	colorYellow    = lipgloss.Color("#f1fa8c")
	colorBlue      = lipgloss.Color("#8be9fd")
	colorPurple    = lipgloss.Color("#bd93f9")
	colorDim       = lipgloss.Color("#6272a4")
	colorBgLight   = lipgloss.Color("#343746")
	colorFg        = lipgloss.Color("#f8f8f2")
	colorBorder    = lipgloss.Color("#44475a")
	colorHighlight = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	// Results tree styles
	treeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	rowSelectedStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Background(colorHighlight).
				Bold(true)

	fileRowStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(0, 0, 1, 0)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(1, 0)

	// Severity markers
	errorMarkStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	warningMarkStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	noteMarkStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	// Preview pane
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	previewHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPurple).
				Bold(true).
				Padding(0, 0, 1, 0)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(5).
			Align(lipgloss.Right)

	targetLineStyle = lipgloss.NewStyle().
			Background(colorBgLight).
			Bold(true)

	// Progress line
	progressTextStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	toggleOnStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorBgLight).
			Bold(true)

	toggleOffStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Background(colorBgLight)

	// Help overlay
	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)
