// Package models contains data types and constants for the Lux chat widget.
package models

// Endpoints served by the chat backend
const (
	EndpointChat = "/chat"

	// DefaultServerURL is where the Flask backend listens when run locally.
	DefaultServerURL = "http://127.0.0.1:5000"
)

// Display names and fixed texts
const (
	DefaultUserName = "You"
	DefaultBotName  = "Lux Assistant"

	// FallbackMessage replaces the reply for every client-side failure.
	FallbackMessage = "Oops, something went wrong."

	// TypingID identifies the typing placeholder node in a transcript.
	TypingID = "typing"
)

// DefaultSoundURL is the notification sound played on every rendered message.
const DefaultSoundURL = "https://assets.mixkit.co/sfx/preview/mixkit-modern-technology-select-3124.mp3"

// DefaultHeaders returns the headers sent with every chat request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "luxchat",
	}
}
