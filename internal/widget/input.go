package widget

// Input is the text field messages are typed into
type Input interface {
	Value() string
	Reset()
}

// TextInput is an in-memory Input for non-interactive hosts
type TextInput struct {
	value string
}

// NewTextInput creates an empty TextInput
func NewTextInput() *TextInput {
	return &TextInput{}
}

func (i *TextInput) Value() string {
	return i.value
}

func (i *TextInput) Reset() {
	i.value = ""
}

// SetValue replaces the current text
func (i *TextInput) SetValue(value string) {
	i.value = value
}
