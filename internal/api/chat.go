package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	apierrors "github.com/luxcarwash/luxchat/internal/errors"
	"github.com/luxcarwash/luxchat/internal/models"
)

const (
	// maxResponseSize caps how much of a reply body is read
	maxResponseSize = 1 << 20
	// maxErrorBody caps the body kept on an APIError
	maxErrorBody = 4096
)

// Send posts message to the chat endpoint and returns the reply text.
// Exactly one request is issued; there is no retry.
func (c *ChatClient) Send(ctx context.Context, message string) (reply string, err error) {
	ctx, span := c.tracer.Start(ctx, "chat.send")
	defer span.End()

	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.failures.Add(ctx, 1)
		}
		c.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}()

	if strings.TrimSpace(message) == "" {
		return "", apierrors.ErrEmptyMessage
	}
	if err := c.ensureOpen(); err != nil {
		return "", err
	}

	span.SetAttributes(attribute.Int("chat.message.length", len(message)))

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ChatURL(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	c.logger.Debug("sending chat request", "url", c.ChatURL(), "length", len(message))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("read response", models.EndpointChat, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	// the status only decides which error is reported when no reply is present
	reply, err = parseChatResponse(body)
	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	switch {
	case err != nil && !ok:
		return "", newStatusError(resp.StatusCode, body)
	case err != nil:
		return "", err
	case !ok:
		c.logger.Warn("chat reply carried an error status", "status", resp.StatusCode)
	}

	c.logger.Debug("chat reply received", "status", resp.StatusCode, "length", len(reply))
	return reply, nil
}

// classifyTransportError maps a failed Do call onto the error taxonomy
func classifyTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return apierrors.NewTimeoutError(fmt.Sprintf("%s: %v", models.EndpointChat, err))
		}
		return apierrors.NewNetworkErrorWithEndpoint("send message", models.EndpointChat, ctxErr)
	}
	if apierrors.IsTimeoutError(err) {
		return apierrors.NewTimeoutError(fmt.Sprintf("%s: %v", models.EndpointChat, err))
	}
	return apierrors.NewNetworkErrorWithEndpoint("send message", models.EndpointChat, err)
}

// newStatusError builds an APIError, preferring the server's {"error": ...} text
func newStatusError(status int, body []byte) error {
	message := "chat request failed"
	if gjson.ValidBytes(body) {
		if e := gjson.GetBytes(body, "error"); e.Type == gjson.String && e.String() != "" {
			message = e.String()
		}
	}

	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return apierrors.NewAPIErrorWithBody(status, models.EndpointChat, message, string(body))
}

// parseChatResponse extracts the reply from a {"response": "..."} body
func parseChatResponse(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", apierrors.NewParseError("empty response body", "")
	}
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	result := gjson.GetBytes(body, "response")
	if !result.Exists() {
		return "", apierrors.NewParseError("field not found", "response")
	}
	if result.Type != gjson.String {
		return "", apierrors.NewParseError(fmt.Sprintf("expected string, got %s", result.Type), "response")
	}

	return result.String(), nil
}
