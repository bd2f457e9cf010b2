// Package widget implements the chat widget independently of any display:
// input capture, the message container, the typing indicator and the
// request/response cycle against a chat client.
//
// A Widget is not safe for concurrent use. Hosts drive it from a single event
// loop; only Reply may run elsewhere, because it touches nothing but the client.
package widget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/luxcarwash/luxchat/internal/models"
	"github.com/luxcarwash/luxchat/internal/sound"
)

// ChatClient sends one message and returns the reply
type ChatClient interface {
	Send(ctx context.Context, message string) (string, error)
}

// Deps are the collaborators injected into a Widget. Input and Client are
// required; the rest have defaults.
type Deps struct {
	Input    Input
	Client   ChatClient
	Notifier sound.Notifier
	Logger   *slog.Logger
	UserName string
	BotName  string
}

// Request is a submitted message waiting for, or awaiting, its reply
type Request struct {
	Seq  uint64
	Text string
}

// Response is the outcome of a Request. Body is the text to render: the
// server's reply, or the fallback message when Err is set.
type Response struct {
	Seq  uint64
	Body string
	Err  error
}

// State is the widget's position in the submission cycle
type State int

const (
	StateIdle State = iota
	StateSent
)

func (s State) String() string {
	if s == StateSent {
		return "sent"
	}
	return "idle"
}

// Widget is the chat widget core
type Widget struct {
	input      Input
	client     ChatClient
	notifier   sound.Notifier
	logger     *slog.Logger
	userName   string
	botName    string
	transcript *Transcript

	// queue holds submitted requests not yet dispatched, oldest first
	queue    []Request
	inFlight *Request
	seq      uint64
}

// New creates a Widget. It fails when a required anchor is missing.
func New(d Deps) (*Widget, error) {
	if d.Input == nil {
		return nil, fmt.Errorf("widget: input is required")
	}
	if d.Client == nil {
		return nil, fmt.Errorf("widget: chat client is required")
	}

	w := &Widget{
		input:      d.Input,
		client:     d.Client,
		notifier:   d.Notifier,
		logger:     d.Logger,
		userName:   d.UserName,
		botName:    d.BotName,
		transcript: NewTranscript(),
	}

	if w.notifier == nil {
		w.notifier = sound.Silent
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.userName == "" {
		w.userName = models.DefaultUserName
	}
	if w.botName == "" {
		w.botName = models.DefaultBotName
	}

	return w, nil
}

// Transcript returns the message container
func (w *Widget) Transcript() *Transcript {
	return w.transcript
}

// UserName returns the display name used for the user's messages
func (w *Widget) UserName() string {
	return w.userName
}

// BotName returns the display name used for replies
func (w *Widget) BotName() string {
	return w.botName
}

// State returns StateSent while a request is in flight
func (w *Widget) State() State {
	if w.inFlight != nil {
		return StateSent
	}
	return StateIdle
}

// Pending returns the number of submissions without a rendered reply
func (w *Widget) Pending() int {
	n := len(w.queue)
	if w.inFlight != nil {
		n++
	}
	return n
}

// Submit captures the input. Whitespace-only input is ignored and left as
// is. Otherwise the trimmed text is rendered as a user message, the input is
// cleared and a request is queued for Next.
func (w *Widget) Submit() bool {
	text := strings.TrimSpace(w.input.Value())
	if text == "" {
		return false
	}

	w.render(models.NewUserMessage(w.userName, text))
	w.input.Reset()

	w.seq++
	w.queue = append(w.queue, Request{Seq: w.seq, Text: text})
	return true
}

// Next dispatches the oldest queued request when nothing is in flight and
// shows the typing placeholder for it. The caller must pass the request to
// Reply and its outcome to Resolve.
func (w *Widget) Next() (Request, bool) {
	if w.inFlight != nil || len(w.queue) == 0 {
		return Request{}, false
	}

	req := w.queue[0]
	w.queue = w.queue[1:]
	w.inFlight = &req

	w.transcript.ShowTyping(w.botName)
	w.logger.Debug("chat request dispatched", "seq", req.Seq, "queued", len(w.queue))
	return req, true
}

// Reply performs the network call for req. Failures are not returned as
// errors: they become a Response carrying the fallback message.
func (w *Widget) Reply(ctx context.Context, req Request) Response {
	reply, err := w.client.Send(ctx, req.Text)
	if err != nil {
		w.logger.Warn("chat request failed", "seq", req.Seq, "error", err)
		return Response{Seq: req.Seq, Body: models.FallbackMessage, Err: err}
	}
	return Response{Seq: req.Seq, Body: reply}
}

// Resolve hides the placeholder and then renders the bot message for resp.
// A response that does not belong to the in-flight request is dropped.
func (w *Widget) Resolve(resp Response) bool {
	if w.inFlight == nil || resp.Seq != w.inFlight.Seq {
		w.logger.Debug("dropping stale chat response", "seq", resp.Seq)
		return false
	}

	w.inFlight = nil
	w.transcript.HideTyping()
	w.render(models.NewBotMessage(w.botName, resp.Body))
	return true
}

// Drain runs every queued request to completion, in order. It is the
// synchronous form of the Next/Reply/Resolve loop for hosts without their
// own event loop.
func (w *Widget) Drain(ctx context.Context) {
	for {
		req, ok := w.Next()
		if !ok {
			return
		}
		w.Resolve(w.Reply(ctx, req))
	}
}

// Clear empties the transcript. A pending placeholder is kept.
func (w *Widget) Clear() {
	w.transcript.Clear()
	if w.inFlight != nil {
		w.transcript.ShowTyping(w.botName)
	}
}

// render appends msg and fires the notification hook
func (w *Widget) render(msg models.Message) {
	w.transcript.Append(msg)
	w.notifier.Notify()
}
