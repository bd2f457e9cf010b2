package commands

import (
	"github.com/spf13/cobra"

	"github.com/luxcarwash/luxchat/internal/tui"
)

func newChatCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the Lux Car Wash assistant.

Messages typed while the assistant is answering are queued and sent in order.
Type /copy to copy the last reply, /clear to clear the screen, and
/exit, /quit or press Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, flags)
		},
	}
}

func runChat(cmd *cobra.Command, deps *Dependencies, flags *globalFlags) error {
	ctx := cmd.Context()

	s, err := openSession(ctx, deps, flags)
	if err != nil {
		return err
	}
	defer s.Close()

	return deps.TUI.RunChat(ctx, tui.Options{
		Client:    s.client,
		Notifier:  s.notifier,
		Logger:    s.logger,
		UserName:  s.cfg.UserName,
		BotName:   s.cfg.BotName,
		Subtitle:  s.cfg.ServerURL,
		Markdown:  s.cfg.Markdown,
		AutoCopy:  s.cfg.CopyToClipboard,
		Clipboard: deps.Clipboard,
	})
}
