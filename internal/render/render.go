package render

import "strings"

// Markdown renders markdown content for terminal display.
// Uses a pooled renderer for better performance and thread safety.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownWithWidth is a convenience function for rendering with specific width.
// Uses default options with the specified width.
func MarkdownWithWidth(content string, width int) (string, error) {
	opts := DefaultOptions().WithWidth(width)
	return Markdown(content, opts)
}

// Reply sanitises an untrusted bot reply and renders it with the glamour
// theme. The body is escaped first, so markup in it is shown literally and
// only the theme's wrapping and colours apply. When rendering fails the
// sanitised plain text is returned.
func Reply(body string, opts Options) string {
	clean := Sanitize(body)

	rendered, err := Markdown(EscapeMarkup(clean), opts)
	if err != nil {
		return clean
	}
	// glamour pads with blank lines on both ends
	return strings.Trim(rendered, "\n")
}
