package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/scrivener/internal/app"
	"github.com/five82/scrivener/internal/credential"
	"github.com/five82/scrivener/internal/guard"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <url|token>",
		Short: "Store the credential from a login URL or a raw token",
		Long: `Store the bearer token used for every request.

Pass the URL the login page redirected to (it carries ?token=...) or the
token itself. The token is kept in the credential database until logout.`,
		Example: `  scrivener login "http://localhost:8008/?token=abc123"
  scrivener login abc123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, false, func(svc *app.Services) error {
				return runLogin(cmd, svc, args[0])
			})
		},
	}
}

func runLogin(cmd *cobra.Command, svc *app.Services, input string) error {
	loc, token, err := credential.ParseLogin(input)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if loc != nil {
		// Reading through the location persists its token.
		svc.Tokens.SetLocation(loc)
		_, _ = svc.Tokens.Token()
		svc.Tokens.SetLocation(credential.NoLocation)
	} else if err := svc.Tokens.Set(token); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if svc.Guard.Evaluate(guard.RouteLogin).Proceed {
		return errors.New("login: no token was stored; the token is empty")
	}
	svc.Logger.Info("logged in", "api_base", svc.Client.BaseURL())
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", svc.Client.BaseURL())
	return nil
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithServices(cmd, false, func(svc *app.Services) error {
				if err := svc.Client.Logout(); err != nil {
					return fmt.Errorf("logout: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show whether a credential is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithServices(cmd, true, func(svc *app.Services) error {
				token, _ := svc.Tokens.Token()
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", svc.Client.BaseURL())
				fmt.Fprintf(cmd.OutOrStdout(), "  token: %s\n", maskToken(token))
				return nil
			})
		},
	}
}

// maskToken keeps the first and last four characters of long tokens.
func maskToken(token string) string {
	r := []rune(token)
	if len(r) <= 8 {
		return "********"
	}
	return string(r[:4]) + "..." + string(r[len(r)-4:])
}
