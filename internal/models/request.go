package models

// ChatRequest is the JSON body posted to the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the JSON body returned by the chat endpoint.
// Error is only set by the server on failures (400/500).
type ChatResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}
