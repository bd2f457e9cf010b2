package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/luxcarwash/luxchat/internal/api"
	"github.com/luxcarwash/luxchat/internal/config"
	"github.com/luxcarwash/luxchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the chat client for the resolved configuration.
	NewClient func(cfg config.Config, logger *slog.Logger) (api.ChatClientInterface, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard copies text for --copy and copy_to_clipboard.
	Clipboard func(string) error

	// Stdin is read by ask when no message argument is given.
	Stdin io.Reader

	// StdinIsTerminal reports whether Stdin is interactive.
	StdinIsTerminal func() bool

	// Bell receives the terminal bell when no sound player is configured.
	Bell io.Writer

	// DisableLogFile keeps logs out of the config directory (tests).
	DisableLogFile bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, opts tui.Options) error {
	return tui.RunChat(ctx, opts)
}

// newChatClient is the production client factory
func newChatClient(cfg config.Config, logger *slog.Logger) (api.ChatClientInterface, error) {
	return api.NewClient(cfg.ServerURL,
		api.WithTimeoutSeconds(cfg.TimeoutSeconds),
		api.WithLogger(logger),
	)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: newChatClient,
		TUI:       &DefaultTUI{},
		Clipboard: clipboard.WriteAll,
		Stdin:     os.Stdin,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		Bell: os.Stderr,
	}
}
