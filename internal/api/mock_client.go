package api

import (
	"context"
	"sync"
)

// MockChatClient is a mock implementation of ChatClientInterface for testing
type MockChatClient struct {
	// Reply and Err are returned by Send unless SendFunc is set
	Reply    string
	Err      error
	SendFunc func(ctx context.Context, message string) (string, error)

	mu          sync.Mutex
	messages    []string
	closeCalled bool
}

// Ensure MockChatClient implements ChatClientInterface
var _ ChatClientInterface = (*MockChatClient)(nil)

// NewMockChatClient returns a mock that always replies with reply
func NewMockChatClient(reply string) *MockChatClient {
	return &MockChatClient{Reply: reply}
}

// NewMockChatClientWithError returns a mock that always fails with err
func NewMockChatClientWithError(err error) *MockChatClient {
	return &MockChatClient{Err: err}
}

func (m *MockChatClient) Send(ctx context.Context, message string) (string, error) {
	m.mu.Lock()
	m.messages = append(m.messages, message)
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, message)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

func (m *MockChatClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalled = true
}

// Messages returns every message passed to Send, in call order
func (m *MockChatClient) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out
}

// CloseCalled reports whether Close was called
func (m *MockChatClient) CloseCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}
