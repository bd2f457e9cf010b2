package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(500, "/chat", "chat request failed")

	expected := "API error [500] at /chat: chat request failed"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	noStatus := NewAPIError(0, "/chat", "boom")
	if noStatus.Error() != "API error at /chat: boom" {
		t.Errorf("Unexpected message without status: %s", noStatus.Error())
	}
}

func TestAPIErrorWithBody(t *testing.T) {
	err := NewAPIErrorWithBody(400, "/chat", "bad request", `{"error":"No message provided"}`)
	wrapped := fmt.Errorf("send: %w", err)

	if GetHTTPStatus(wrapped) != 400 {
		t.Errorf("Expected status 400, got %d", GetHTTPStatus(wrapped))
	}
	if GetEndpoint(wrapped) != "/chat" {
		t.Errorf("Expected endpoint /chat, got %q", GetEndpoint(wrapped))
	}
	if GetResponseBody(wrapped) != `{"error":"No message provided"}` {
		t.Errorf("Unexpected body %q", GetResponseBody(wrapped))
	}
	if !IsAPIError(wrapped) {
		t.Error("Expected IsAPIError to be true")
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkErrorWithEndpoint("send message", "/chat", cause)

	expected := "network error during send message at /chat: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected NetworkError to unwrap to its cause")
	}
	if !IsNetworkError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("Expected IsNetworkError to see through wrapping")
	}
	if GetEndpoint(err) != "/chat" {
		t.Errorf("Expected endpoint /chat, got %q", GetEndpoint(err))
	}

	bare := NewNetworkError("dial", cause)
	if bare.Error() != "network error during dial: connection refused" {
		t.Errorf("Unexpected message: %s", bare.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	if NewTimeoutError("").Error() != "request timed out" {
		t.Error("Unexpected empty timeout message")
	}
	if NewTimeoutError("after 5s").Error() != "request timed out: after 5s" {
		t.Error("Unexpected timeout message")
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout type", NewTimeoutError("x"), true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", NewNetworkError("send", context.DeadlineExceeded), true},
		{"other", errors.New("nope"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeoutError(tt.err); got != tt.want {
				t.Errorf("IsTimeoutError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("field missing", "response")

	if err.Error() != `parse error at "response": field missing` {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("Expected ParseError to match ErrInvalidResponse")
	}
	if !IsParseError(fmt.Errorf("decode: %w", err)) {
		t.Error("Expected IsParseError to see through wrapping")
	}
	if IsParseError(NewAPIError(500, "/chat", "x")) {
		t.Error("Expected APIError not to be a parse error")
	}
	if NewParseError("bad json", "").Error() != "parse error: bad json" {
		t.Error("Unexpected message without path")
	}
}

func TestGettersOnPlainErrors(t *testing.T) {
	plain := errors.New("plain")
	if GetHTTPStatus(plain) != 0 {
		t.Error("Expected 0 status for plain error")
	}
	if GetEndpoint(plain) != "" {
		t.Error("Expected empty endpoint for plain error")
	}
	if GetResponseBody(plain) != "" {
		t.Error("Expected empty body for plain error")
	}
}
