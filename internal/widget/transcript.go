package widget

import (
	"github.com/luxcarwash/luxchat/internal/models"
)

// EventKind describes a change to a Transcript
type EventKind int

const (
	EventAppend EventKind = iota
	EventShowTyping
	EventHideTyping
	EventClear
)

func (k EventKind) String() string {
	switch k {
	case EventAppend:
		return "append"
	case EventShowTyping:
		return "show-typing"
	case EventHideTyping:
		return "hide-typing"
	case EventClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Event is delivered to transcript observers after each change
type Event struct {
	Kind EventKind
	Node Node
}

// Node is one entry of the transcript: a message bubble or the typing placeholder
type Node struct {
	// ID is models.TypingID for the placeholder and empty for messages
	ID      string
	Message models.Message
}

// IsTyping reports whether n is the typing placeholder
func (n Node) IsTyping() bool {
	return n.ID == models.TypingID
}

// Transcript is the scrollable message container. New nodes always go to the
// end. It holds at most one typing placeholder.
type Transcript struct {
	nodes     []Node
	observers []func(Event)
}

// NewTranscript creates an empty transcript
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Observe registers fn to be called after every change
func (t *Transcript) Observe(fn func(Event)) {
	t.observers = append(t.observers, fn)
}

func (t *Transcript) emit(e Event) {
	for _, fn := range t.observers {
		fn(e)
	}
}

// Append adds a message bubble at the end
func (t *Transcript) Append(msg models.Message) {
	n := Node{Message: msg}
	t.nodes = append(t.nodes, n)
	t.emit(Event{Kind: EventAppend, Node: n})
}

// ShowTyping appends the placeholder for sender. It returns false, and
// changes nothing, when a placeholder is already shown.
func (t *Transcript) ShowTyping(sender string) bool {
	if t.TypingVisible() {
		return false
	}
	n := Node{ID: models.TypingID, Message: models.Message{Sender: sender, Role: models.RoleBot}}
	t.nodes = append(t.nodes, n)
	t.emit(Event{Kind: EventShowTyping, Node: n})
	return true
}

// HideTyping removes the placeholder if present. Safe to call when absent.
func (t *Transcript) HideTyping() bool {
	for i, n := range t.nodes {
		if n.IsTyping() {
			t.nodes = append(t.nodes[:i], t.nodes[i+1:]...)
			t.emit(Event{Kind: EventHideTyping, Node: n})
			return true
		}
	}
	return false
}

// TypingVisible reports whether the placeholder is shown
func (t *Transcript) TypingVisible() bool {
	for _, n := range t.nodes {
		if n.IsTyping() {
			return true
		}
	}
	return false
}

// Clear removes every node
func (t *Transcript) Clear() {
	t.nodes = nil
	t.emit(Event{Kind: EventClear})
}

// Nodes returns a copy of all nodes in display order
func (t *Transcript) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Messages returns the message bubbles, without the placeholder
func (t *Transcript) Messages() []models.Message {
	var out []models.Message
	for _, n := range t.nodes {
		if !n.IsTyping() {
			out = append(out, n.Message)
		}
	}
	return out
}

// Len returns the number of nodes, placeholder included
func (t *Transcript) Len() int {
	return len(t.nodes)
}

// LastBotMessage returns the most recent bot message
func (t *Transcript) LastBotMessage() (models.Message, bool) {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := t.nodes[i]
		if !n.IsTyping() && n.Message.Role == models.RoleBot {
			return n.Message, true
		}
	}
	return models.Message{}, false
}
