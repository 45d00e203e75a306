package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/scrivener/internal/app"
	"github.com/five82/scrivener/internal/render"
	"github.com/five82/scrivener/internal/summaries"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List summaries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithServices(cmd, true, func(svc *app.Services) error {
				return runList(cmd, svc)
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output format: table, json, yaml (default from prefs)")
	return cmd
}

func runList(cmd *cobra.Command, svc *app.Services) error {
	allowed := []render.Format{render.FormatTable, render.FormatJSON, render.FormatYAML}
	format, err := outputFormat(cmd, svc.Prefs.Output, allowed...)
	if err != nil {
		return err
	}

	raw, err := svc.Client.ListSummaries(cmd.Context())
	if err != nil {
		return err
	}
	var items []summaries.Summary
	if format != render.FormatJSON {
		if items, err = summaries.DecodeSummaries(raw); err != nil {
			return err
		}
	}
	return render.List(cmd.OutOrStdout(), format, raw, items)
}

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, true, func(svc *app.Services) error {
				return runGet(cmd, svc, args[0])
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output format: table, json, yaml, markdown (default from prefs)")
	return cmd
}

func runGet(cmd *cobra.Command, svc *app.Services, id string) error {
	allowed := []render.Format{render.FormatTable, render.FormatJSON, render.FormatYAML, render.FormatMarkdown}
	format, err := outputFormat(cmd, svc.Prefs.Output, allowed...)
	if err != nil {
		return err
	}

	raw, err := svc.Client.GetSummary(cmd.Context(), id)
	if err != nil {
		return err
	}
	var s summaries.Summary
	if format != render.FormatJSON {
		if s, err = summaries.DecodeSummary(raw); err != nil {
			return err
		}
	}
	return render.Summary(cmd.OutOrStdout(), format, raw, s)
}

// outputFormat reads --output, falling back to the preferred format when the
// command supports it and to a table otherwise.
func outputFormat(cmd *cobra.Command, preferred string, allowed ...render.Format) (render.Format, error) {
	value, _ := cmd.Flags().GetString("output")
	fallback, err := render.ParseFormat(preferred, render.FormatTable, allowed...)
	if err != nil {
		fallback = render.FormatTable
	}
	return render.ParseFormat(value, fallback, allowed...)
}

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <audio_file_name>",
		Aliases: []string{"rm"},
		Short:   "Delete a summary",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, true, func(svc *app.Services) error {
				return runRemove(cmd, svc, args[0])
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func runRemove(cmd *cobra.Command, svc *app.Services, audioFileName string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		prompt := fmt.Sprintf("Remove summary for %q? [y/N] ", audioFileName)
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}
	if _, err := svc.Client.RemoveSummary(cmd.Context(), audioFileName); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", audioFileName)
	return nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// NewRenameCmd creates the rename command.
func NewRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <audio_file_name> <recording_name>",
		Short: "Change a summary's display title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, true, func(svc *app.Services) error {
				name := strings.TrimSpace(args[1])
				if name == "" {
					return fmt.Errorf("rename: recording name is empty")
				}
				if _, err := svc.Client.RenameSummary(cmd.Context(), args[0], name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], name)
				return nil
			})
		},
	}
}
