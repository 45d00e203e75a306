package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for scrivener.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrivener",
		Short: "Client for a meeting transcription and summary backend",
		Long: `scrivener manages recordings on a transcription and summary backend.
It stores the login token handed over by the web login flow and uses it for
every request.

Run "scrivener login <url>" with the URL the login page redirected to, then
use the other commands or "scrivener tui" for the interactive view.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().String("config", "", "Path to config file (default ~/.config/scrivener/config.toml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewWhoamiCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewGetCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewRenameCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewUploadCmd())
	cmd.AddCommand(NewTUICmd())
	cmd.AddCommand(NewLogsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command, cancelling its context on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrivener: %v\n", err)
		os.Exit(1)
	}
}
