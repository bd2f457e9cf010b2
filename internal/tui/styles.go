// Package tui provides the terminal user interface for luxchat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/luxcarwash/luxchat/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Messages area panel
	messagesAreaStyle lipgloss.Style

	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	assistantLabelStyle  lipgloss.Style

	// Typing placeholder
	typingStyle lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style

	loadingStyle lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	// Transient notices such as "Copied to clipboard"
	noticeStyle lipgloss.Style
	errorStyle  lipgloss.Style

	welcomeStyle      lipgloss.Style
	welcomeTitleStyle lipgloss.Style
	welcomeIconStyle  lipgloss.Style
)

// Gradient colors for the typing dots (fixed colors)
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#4fc3f7"), // Wash blue
	lipgloss.Color("#80deea"), // Foam
	lipgloss.Color("#ffca28"), // Wax gold
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#1dd1a1"), // Green
}

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2).
		MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1)

	// User bubbles sit on the right, bot bubbles on the left
	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginLeft(4)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	typingStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		MarginTop(1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginRight(1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		MarginTop(1)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Align(lipgloss.Center)

	welcomeIconStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Align(lipgloss.Center)
}
