package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luxcarwash/luxchat/internal/models"
	"github.com/luxcarwash/luxchat/internal/render"
	"github.com/luxcarwash/luxchat/internal/sound"
	"github.com/luxcarwash/luxchat/internal/widget"
)

// Animation tick message
type animationTickMsg time.Time

// replyMsg carries a resolved request back into the update loop
type replyMsg widget.Response

// Options configures the chat TUI
type Options struct {
	Client   widget.ChatClient
	Notifier sound.Notifier
	Logger   *slog.Logger

	UserName string
	BotName  string
	// Subtitle is shown in the header, usually the server URL
	Subtitle string

	// Markdown renders bot replies with glamour instead of plain text
	Markdown bool
	// AutoCopy copies every bot reply to the clipboard
	AutoCopy bool

	// Clipboard overrides clipboard.WriteAll
	Clipboard func(string) error
}

// Model represents the TUI state
type Model struct {
	ctx    context.Context
	chat   *widget.Widget
	logger *slog.Logger

	subtitle string
	markdown bool
	autoCopy bool
	copyFn   func(string) error

	// UI components
	input    *textareaInput
	viewport viewport.Model
	spinner  spinner.Model

	// rendered caches markdown output by width and body
	rendered map[string]string

	ready          bool
	spinning       bool
	animating      bool
	animationFrame int
	notice         string

	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(ctx context.Context, opts Options) (Model, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := newTextareaInput()

	chat, err := widget.New(widget.Deps{
		Input:    input,
		Client:   opts.Client,
		Notifier: opts.Notifier,
		Logger:   logger,
		UserName: opts.UserName,
		BotName:  opts.BotName,
	})
	if err != nil {
		return Model{}, err
	}

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	return Model{
		ctx:      ctx,
		chat:     chat,
		logger:   logger,
		subtitle: opts.Subtitle,
		markdown: opts.Markdown,
		autoCopy: opts.AutoCopy,
		copyFn:   copyFn,
		rendered: make(map[string]string),
		input:    input,
		spinner:  s,
	}, nil
}

// Widget returns the chat widget driven by this model
func (m Model) Widget() *widget.Widget {
	return m.chat
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*250, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// isQuitCommand reports whether the trimmed input asks to leave. Bare words
// such as "exit" are ordinary messages.
func isQuitCommand(input string) bool {
	switch input {
	case "/exit", "/quit":
		return true
	}
	return false
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 1 // Status bar
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.input.ta.SetWidth(contentWidth - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			// enter never reaches the textarea, so blank input stays as typed
			return m.handleEnter()
		}

	case replyMsg:
		if m.chat.Resolve(widget.Response(msg)) {
			if m.autoCopy && msg.Err == nil {
				m.copyReply(msg.Body)
			}
			m.updateViewport()
			m.viewport.GotoBottom()
		}
		cmds = append(cmds, m.dispatch())

	case spinner.TickMsg:
		if m.chat.Pending() > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			m.spinning = false
		}

	case animationTickMsg:
		if m.chat.Pending() > 0 {
			m.animationFrame++
			m.updateViewport()
			cmds = append(cmds, animationTick())
		} else {
			m.animating = false
		}
	}

	// Only KeyMsg goes to the textarea to prevent escape sequence leaks
	if _, ok := msg.(tea.KeyMsg); ok {
		m.input.ta, cmd = m.input.ta.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleEnter runs local commands or submits the input to the widget
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.notice = ""

	switch {
	case isQuitCommand(input):
		return m, tea.Quit

	case input == "/clear":
		m.input.Reset()
		m.chat.Clear()
		m.updateViewport()
		return m, nil

	case input == "/copy":
		m.input.Reset()
		if last, ok := m.chat.Transcript().LastBotMessage(); ok {
			m.copyReply(last.Body)
		} else {
			m.notice = "Nothing to copy yet"
		}
		return m, nil
	}

	if !m.chat.Submit() {
		return m, nil
	}
	m.updateViewport()
	m.viewport.GotoBottom()

	cmd := m.dispatch()
	return m, cmd
}

// dispatch sends the next queued request, if any, and starts the typing
// animation for it
func (m *Model) dispatch() tea.Cmd {
	req, ok := m.chat.Next()
	if !ok {
		return nil
	}
	m.updateViewport()
	m.viewport.GotoBottom()

	chat := m.chat
	ctx := m.ctx
	cmds := []tea.Cmd{
		func() tea.Msg {
			return replyMsg(chat.Reply(ctx, req))
		},
	}

	// each tick chain stops by itself once nothing is pending
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	if !m.animating {
		m.animating = true
		m.animationFrame = 0
		cmds = append(cmds, animationTick())
	}
	return tea.Batch(cmds...)
}

func (m *Model) copyReply(body string) {
	if err := m.copyFn(render.Sanitize(body)); err != nil {
		m.logger.Debug("clipboard copy failed", "error", err)
		m.notice = "Could not copy to clipboard"
		return
	}
	m.notice = "Copied last reply to clipboard"
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{titleStyle.Render("✦ Lux Chat")}
	if m.subtitle != "" {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.subtitle),
		)
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages area
	var messagesContent string
	if m.chat.Transcript().Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area stays usable while replies are pending
	inputContent := lipgloss.JoinVertical(
		lipgloss.Left,
		inputLabelStyle.Render(m.chat.UserName()),
		m.input.ta.View(),
	)
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("Welcome to Lux Car Wash"),
		"",
		welcomeStyle.Width(width).Render("Ask about our wash packages, prices or opening hours"),
		"",
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderTypingDots renders the animated dots of the typing placeholder
func (m Model) renderTypingDots() string {
	frame := m.animationFrame
	numDots := frame%3 + 1

	var dots strings.Builder
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}
	return dots.String()
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	if m.notice != "" {
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(noticeStyle.Render(m.notice))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
		{"/copy", "Copy reply"},
		{"/clear", "Clear"},
	}

	var items []string
	if pending := m.chat.Pending(); pending > 0 {
		items = append(items, m.spinner.View()+statusDescStyle.Render(fmt.Sprintf(" %d pending", pending)))
	}
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// bubbleWidth returns the width available to a message bubble
func (m Model) bubbleWidth() int {
	w := m.viewport.Width - 6
	if w < 20 {
		w = 20
	}
	return w
}

// renderTranscript renders every transcript node in order. Bodies are
// sanitized, never interpreted as terminal control sequences.
func (m Model) renderTranscript() string {
	var content strings.Builder
	bubbleWidth := m.bubbleWidth()

	for i, node := range m.chat.Transcript().Nodes() {
		if i > 0 {
			content.WriteString("\n")
		}

		msg := node.Message
		switch {
		case node.IsTyping():
			label := assistantLabelStyle.Render("✦ " + render.Sanitize(msg.Sender))
			typing := typingStyle.Render("typing ") + m.renderTypingDots()
			content.WriteString(label + "\n" + typing)

		case msg.Role == models.RoleUser:
			label := userLabelStyle.Render("● " + render.Sanitize(msg.Sender))
			bubble := userBubbleStyle.Width(bubbleWidth).Render(render.Sanitize(msg.Body))
			content.WriteString(label + "\n" + bubble)

		default:
			label := assistantLabelStyle.Render("✦ " + render.Sanitize(msg.Sender))
			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(m.replyBody(msg.Body, bubbleWidth-4))
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	return content.String()
}

// replyBody renders a bot reply, reusing earlier markdown renders
func (m Model) replyBody(body string, width int) string {
	if !m.markdown {
		return render.Sanitize(body)
	}

	key := fmt.Sprintf("%d:%s", width, body)
	if out, ok := m.rendered[key]; ok {
		return out
	}
	out := render.Reply(body, render.OptionsForTheme(render.GetTUITheme(), width))
	m.rendered[key] = out
	return out
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderTranscript())
}

// RunChat starts the chat TUI and blocks until the user quits. Requests
// still in flight when it returns are cancelled.
func RunChat(ctx context.Context, opts Options) error {
	return runChat(ctx, opts, tea.WithAltScreen())
}

func runChat(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := NewChatModel(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, append(programOpts, tea.WithContext(ctx))...)

	_, err = p.Run()
	return err
}
