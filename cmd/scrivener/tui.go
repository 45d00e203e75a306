package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/scrivener/internal/app"
)

// NewTUICmd creates the tui command.
func NewTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI",
		Long: `Open the interactive terminal UI.

The UI starts on the login view, or on the summaries list when a credential is
stored. --open takes a route such as "/?token=abc" or "/summary/42". Logs go
to scrivener.log next to the credential database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, _ := cmd.Flags().GetString("open")
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: getConfigFlag(cmd),
				Verbose:    getVerboseFlag(cmd),
				StartPath:  start,
			})
		},
	}
	cmd.Flags().String("open", "", "Initial route, e.g. /summary/42 or /?token=...")
	return cmd
}
