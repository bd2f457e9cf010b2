package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
)

// textareaInput lets the widget read and clear the bubbles textarea.
// It is shared by pointer because bubbletea copies the Model on every update.
type textareaInput struct {
	ta textarea.Model
}

func newTextareaInput() *textareaInput {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	return &textareaInput{ta: ta}
}

func (i *textareaInput) Value() string {
	return i.ta.Value()
}

func (i *textareaInput) Reset() {
	i.ta.Reset()
}
