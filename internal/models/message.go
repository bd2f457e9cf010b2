package models

import "fmt"

// Role identifies who authored a message
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the role name
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleBot
}

// Message is one rendered chat entry. It is never mutated after creation.
type Message struct {
	Sender string
	Body   string
	Role   Role
}

// NewUserMessage creates a user-role message
func NewUserMessage(sender, body string) Message {
	return Message{Sender: sender, Body: body, Role: RoleUser}
}

// NewBotMessage creates a bot-role message
func NewBotMessage(sender, body string) Message {
	return Message{Sender: sender, Body: body, Role: RoleBot}
}

// String returns the plain "Sender: Body" form shown in a bubble
func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.Sender, m.Body)
}
