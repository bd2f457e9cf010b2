// Package api implements the HTTP client for the Lux chat backend.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apierrors "github.com/luxcarwash/luxchat/internal/errors"
	"github.com/luxcarwash/luxchat/internal/models"
)

const instrumentationName = "github.com/luxcarwash/luxchat/internal/api"

// ChatClientInterface is what the widget needs from a chat backend
type ChatClientInterface interface {
	Send(ctx context.Context, message string) (string, error)
	Close()
}

// ChatClient posts messages to the chat endpoint of a Lux backend
type ChatClient struct {
	httpClient tls_client.HttpClient
	serverURL  string
	timeout    int
	logger     *slog.Logger

	tracer   trace.Tracer
	requests metric.Int64Counter
	failures metric.Int64Counter

	mu     sync.RWMutex
	closed bool
}

// Ensure ChatClient implements ChatClientInterface
var _ ChatClientInterface = (*ChatClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*ChatClient)

// WithTimeoutSeconds sets the transport timeout; 0 keeps the transport default
func WithTimeoutSeconds(seconds int) ClientOption {
	return func(c *ChatClient) {
		c.timeout = seconds
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *ChatClient) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying transport (used in tests)
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *ChatClient) {
		c.httpClient = httpClient
	}
}

// NewClient creates a ChatClient for the backend at serverURL
func NewClient(serverURL string, opts ...ClientOption) (*ChatClient, error) {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		return nil, fmt.Errorf("server URL cannot be empty")
	}

	client := &ChatClient{
		serverURL: serverURL,
		timeout:   300,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}
		if client.timeout > 0 {
			options = append(options, tls_client.WithTimeoutSeconds(client.timeout))
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	if err := client.initInstruments(); err != nil {
		return nil, err
	}

	return client, nil
}

// initInstruments creates the tracer and counters from the global providers
func (c *ChatClient) initInstruments() error {
	c.tracer = otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)

	var err error
	c.requests, err = meter.Int64Counter(
		"luxchat.chat.requests",
		metric.WithDescription("Chat requests sent to the backend"),
	)
	if err != nil {
		return fmt.Errorf("failed to create requests counter: %w", err)
	}

	c.failures, err = meter.Int64Counter(
		"luxchat.chat.failures",
		metric.WithDescription("Chat requests that ended without a usable reply"),
	)
	if err != nil {
		return fmt.Errorf("failed to create failures counter: %w", err)
	}

	return nil
}

// ServerURL returns the backend base URL
func (c *ChatClient) ServerURL() string {
	return c.serverURL
}

// ChatURL returns the full URL of the chat endpoint
func (c *ChatClient) ChatURL() string {
	return c.serverURL + models.EndpointChat
}

// Close shuts down the client; further sends fail with ErrClientClosed
func (c *ChatClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *ChatClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// ensureOpen returns ErrClientClosed once Close has been called
func (c *ChatClient) ensureOpen() error {
	if c.IsClosed() {
		return apierrors.ErrClientClosed
	}
	return nil
}
