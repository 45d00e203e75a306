package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/scrivener/internal/app"
	"github.com/five82/scrivener/internal/guard"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, _ = cmd.Root().PersistentFlags().GetString("config")
	}
	return path
}

// openServices wires config, credentials and the client for one command.
// CLI logs go to stderr.
func openServices(cmd *cobra.Command) (*app.Services, error) {
	return app.Open(app.Options{
		ConfigPath: getConfigFlag(cmd),
		Verbose:    getVerboseFlag(cmd),
		LogOutput:  cmd.ErrOrStderr(),
	})
}

// openAuthorized is openServices for commands that need a credential. The
// guard is consulted the same way the TUI does before entering Home.
func openAuthorized(cmd *cobra.Command) (*app.Services, error) {
	svc, err := openServices(cmd)
	if err != nil {
		return nil, err
	}
	if err := svc.Guard.Require(guard.RouteHome); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("%w; run \"scrivener login <url>\"", err)
	}
	return svc, nil
}

// runWithServices opens services, runs fn and closes them again.
func runWithServices(cmd *cobra.Command, authorized bool, fn func(*app.Services) error) error {
	open := openServices
	if authorized {
		open = openAuthorized
	}
	svc, err := open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()
	return fn(svc)
}
