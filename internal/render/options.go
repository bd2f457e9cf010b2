// Package render turns chat text into terminal output: sanitising untrusted
// bodies, rendering markdown replies and holding the TUI colour themes.
package render

// Options configures the markdown renderer behavior.
type Options struct {
	// Width is the word-wrap width (default: 80)
	Width int

	// Style is a glamour standard style name ("dark", "light", "dracula",
	// "tokyo-night", "notty", "ascii") or a path to a JSON style file
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool

	// PreserveNewLines keeps the reply's own line breaks
	PreserveNewLines bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithEmoji returns Options with emoji support enabled/disabled.
func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

// WithPreserveNewLines returns Options with newline preservation enabled/disabled.
func (o Options) WithPreserveNewLines(enabled bool) Options {
	o.PreserveNewLines = enabled
	return o
}
