package render

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the chat TUI. MarkdownStyle is the
// glamour style used for bot replies under this theme.
type TUITheme struct {
	Name          string
	Description   string
	MarkdownStyle string

	Surface lipgloss.Color
	Border  lipgloss.Color

	// Primary marks the bot, Secondary the user
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// TokyoNightTheme is the default dark theme
	TokyoNightTheme = TUITheme{
		Name:          "tokyonight",
		Description:   "Tokyo Night - Dark theme with blue accents",
		MarkdownStyle: "tokyo-night",
		Surface:       lipgloss.Color("#24283b"),
		Border:        lipgloss.Color("#414868"),
		Primary:       lipgloss.Color("#7aa2f7"),
		Secondary:     lipgloss.Color("#9ece6a"),
		Accent:        lipgloss.Color("#bb9af7"),
		Error:         lipgloss.Color("#f7768e"),
		Text:          lipgloss.Color("#c0caf5"),
		TextDim:       lipgloss.Color("#565f89"),
		TextMute:      lipgloss.Color("#3b4261"),
	}

	// LuxTheme uses the car wash brand colours: wash blue and wax gold
	LuxTheme = TUITheme{
		Name:          "lux",
		Description:   "Lux - Brand theme with blue and gold",
		MarkdownStyle: "dark",
		Surface:       lipgloss.Color("#10243e"),
		Border:        lipgloss.Color("#2b4a6f"),
		Primary:       lipgloss.Color("#4fc3f7"),
		Secondary:     lipgloss.Color("#ffca28"),
		Accent:        lipgloss.Color("#80deea"),
		Error:         lipgloss.Color("#ef5350"),
		Text:          lipgloss.Color("#e3f2fd"),
		TextDim:       lipgloss.Color("#90a4ae"),
		TextMute:      lipgloss.Color("#546e7a"),
	}

	// DraculaTheme is based on the Dracula color palette
	DraculaTheme = TUITheme{
		Name:          "dracula",
		Description:   "Dracula - Dark theme with vibrant colors",
		MarkdownStyle: "dracula",
		Surface:       lipgloss.Color("#44475a"),
		Border:        lipgloss.Color("#6272a4"),
		Primary:       lipgloss.Color("#8be9fd"),
		Secondary:     lipgloss.Color("#50fa7b"),
		Accent:        lipgloss.Color("#ff79c6"),
		Error:         lipgloss.Color("#ff5555"),
		Text:          lipgloss.Color("#f8f8f2"),
		TextDim:       lipgloss.Color("#6272a4"),
		TextMute:      lipgloss.Color("#44475a"),
	}

	// LightTheme is for light terminal backgrounds
	LightTheme = TUITheme{
		Name:          "light",
		Description:   "Light - For light terminal backgrounds",
		MarkdownStyle: "light",
		Surface:       lipgloss.Color("#eceff1"),
		Border:        lipgloss.Color("#b0bec5"),
		Primary:       lipgloss.Color("#1565c0"),
		Secondary:     lipgloss.Color("#2e7d32"),
		Accent:        lipgloss.Color("#6a1b9a"),
		Error:         lipgloss.Color("#c62828"),
		Text:          lipgloss.Color("#212121"),
		TextDim:       lipgloss.Color("#616161"),
		TextMute:      lipgloss.Color("#9e9e9e"),
	}
)

// currentTUITheme holds the currently active TUI theme
var currentTUITheme = TokyoNightTheme

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if ok {
		currentTUITheme = theme
	}
	return ok
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		TokyoNightTheme,
		LuxTheme,
		DraculaTheme,
		LightTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// standardStyles are the glamour built-in style names
var standardStyles = map[string]bool{
	"ascii":       true,
	"dark":        true,
	"dracula":     true,
	"light":       true,
	"notty":       true,
	"pink":        true,
	"tokyo-night": true,
}

// IsStandardStyle reports whether style is a glamour built-in style
func IsStandardStyle(style string) bool {
	return standardStyles[style]
}

// OptionsForTheme returns markdown options matching the active theme.
// GLAMOUR_STYLE takes precedence over the theme's own style.
func OptionsForTheme(theme TUITheme, width int) Options {
	opts := DefaultOptions().WithWidth(width)
	if theme.MarkdownStyle != "" {
		opts.Style = theme.MarkdownStyle
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}
