// Package commands provides CLI commands for luxchat.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the luxchat command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "luxchat [message]",
		Short: "Chat with the Lux Car Wash assistant",
		Long: `luxchat is a terminal chat client for the Lux Car Wash assistant.
Messages are posted to the assistant's /chat endpoint and replies appear
as chat bubbles with a typing indicator while the assistant answers.

Examples:
  luxchat                                   Start interactive chat
  luxchat "Do you wash trucks?"             Ask a single question
  echo "Opening hours?" | luxchat ask       Read the question from stdin
  luxchat -s http://10.0.0.5:5000 chat      Use another server
  luxchat config set sound_player paplay    Play the notification sound`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "luxchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			// A message argument or piped stdin means a one-shot question
			if len(args) > 0 || !deps.StdinIsTerminal() {
				return runAsk(cmd, deps, flags, args, askOptions{})
			}

			return runChat(cmd, deps, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.server, "server", "s", "", "Chat server base URL (overrides server_url)")
	cmd.PersistentFlags().BoolVar(&flags.noSound, "no-sound", false, "Disable the notification sound")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Write debug logs to the log file")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(newChatCmd(deps, flags))
	cmd.AddCommand(newAskCmd(deps, flags))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(nil)

// Execute runs the root command. An interrupt or SIGTERM cancels the
// command context, aborting any request in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}
