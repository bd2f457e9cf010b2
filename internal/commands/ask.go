package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	apierrors "github.com/luxcarwash/luxchat/internal/errors"
	"github.com/luxcarwash/luxchat/internal/models"
	"github.com/luxcarwash/luxchat/internal/render"
	"github.com/luxcarwash/luxchat/internal/widget"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#4fc3f7"), // Wash blue
	lipgloss.Color("#80deea"), // Foam
	lipgloss.Color("#ffca28"), // Wax gold
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorPrimary  = lipgloss.Color("#7aa2f7")
	colorUser     = lipgloss.Color("#9ece6a")
)

// Styles matching the chat TUI
var (
	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorUser).
			Bold(true)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginBottom(0)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)
)

// spinner is the typing indicator shown while a one-shot question is pending
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWait stops the spinner and waits for the line to be cleared
func (s *spinner) stopWait() {
	s.stopOnce()
	<-s.done
}

type askOptions struct {
	raw  bool
	copy bool
}

func newAskCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	opts := askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Ask a single question and print the reply",
		Long: `Send one message to the assistant and print the reply.

The message is taken from the argument, or from stdin when no argument is
given. A typing indicator is shown on stderr while the assistant answers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, deps, flags, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the reply text, without styling")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the reply to the clipboard")

	return cmd
}

// readMessage returns the message from args or stdin
func readMessage(deps *Dependencies, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if deps.StdinIsTerminal() {
		return "", fmt.Errorf("no message given: pass it as an argument or pipe it on stdin")
	}
	data, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// runAsk runs one submission cycle outside the TUI
func runAsk(cmd *cobra.Command, deps *Dependencies, flags *globalFlags, args []string, opts askOptions) error {
	message, err := readMessage(deps, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		return apierrors.ErrEmptyMessage
	}

	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	s, err := openSession(ctx, deps, flags)
	if err != nil {
		return err
	}
	defer s.Close()

	input := widget.NewTextInput()
	input.SetValue(message)

	chat, err := widget.New(widget.Deps{
		Input:    input,
		Client:   s.client,
		Notifier: s.notifier,
		Logger:   s.logger,
		UserName: s.cfg.UserName,
		BotName:  s.cfg.BotName,
	})
	if err != nil {
		return err
	}

	chat.Submit()
	req, _ := chat.Next()

	var spin *spinner
	if !opts.raw {
		spin = newSpinner(stderr, chat.BotName()+" is typing")
		spin.start()
	}
	resp := chat.Reply(ctx, req)
	if spin != nil {
		spin.stopWait()
	}
	chat.Resolve(resp)

	reply, _ := chat.Transcript().LastBotMessage()
	text := render.Sanitize(reply.Body)

	if opts.raw {
		fmt.Fprintln(stdout, text)
	} else {
		printReply(stdout, chat, reply.Body, s.cfg.Markdown)
	}

	if resp.Err == nil && (opts.copy || s.cfg.CopyToClipboard) {
		copyReply(stderr, deps, text, opts.raw)
	}

	if resp.Err != nil {
		return fmt.Errorf("chat request failed: %w", resp.Err)
	}
	return nil
}

// printReply prints the exchange as labelled bubbles
func printReply(out io.Writer, chat *widget.Widget, body string, markdown bool) {
	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	for _, msg := range chat.Transcript().Messages() {
		if msg.Role != models.RoleUser {
			continue
		}
		fmt.Fprintln(out, userLabelStyle.Render("● "+render.Sanitize(msg.Sender)+": ")+render.Sanitize(msg.Body))
	}

	rendered := render.Sanitize(body)
	if markdown {
		rendered = render.Reply(body, render.OptionsForTheme(render.GetTUITheme(), contentWidth))
	}

	fmt.Fprintln(out, assistantLabelStyle.Render("✦ "+render.Sanitize(chat.BotName())))
	fmt.Fprintln(out, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))
}

// copyReply copies text and reports the outcome on stderr
func copyReply(stderr io.Writer, deps *Dependencies, text string, quiet bool) {
	err := deps.Clipboard(text)
	if quiet {
		return
	}
	if err != nil {
		warnMsg := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		)
		fmt.Fprintln(stderr, warnMsg)
		return
	}
	fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch {
	case apierrors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The assistant took too long. Try again or raise timeout_seconds"))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check that the chat server is running and server_url is correct"))
	case apierrors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The server answered without a \"response\" field. Is server_url pointing at the chat backend?"))
	case apierrors.GetHTTPStatus(err) >= 500:
		sb.WriteString(dimStyle.Render("\n  Hint: The chat server failed. Check its logs"))
	}

	return sb.String()
}
