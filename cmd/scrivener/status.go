package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/scrivener/internal/app"
	"github.com/five82/scrivener/internal/summaries"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [audio_file_name]",
		Short: "Check whether a recording has been summarized",
		Long: `Ask the backend whether summarization of a recording has finished.

The query is {"audio_file_name": <arg>} unless --query supplies a raw JSON
payload. With --wait the check repeats at the poll interval until the backend
reports completion.`,
		Example: `  scrivener status weekly-sync.webm
  scrivener status weekly-sync.webm --wait
  scrivener status --query '{"audio_file_name":"weekly-sync.webm"}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, true, func(svc *app.Services) error {
				return runStatus(cmd, svc, args)
			})
		},
	}
	cmd.Flags().Bool("wait", false, "Poll until summarization completes")
	cmd.Flags().String("query", "", "Raw JSON payload instead of audio_file_name")
	cmd.Flags().Duration("interval", 0, "Poll interval for --wait (default from config)")
	return cmd
}

func runStatus(cmd *cobra.Command, svc *app.Services, args []string) error {
	query, label, err := statusQuery(cmd, args)
	if err != nil {
		return err
	}

	var status summaries.Status
	if wait, _ := cmd.Flags().GetBool("wait"); wait {
		interval, _ := cmd.Flags().GetDuration("interval")
		if interval <= 0 {
			interval = svc.Config.PollInterval
		}
		svc.Logger.Debug("waiting for summary", "query", label, "interval", interval)
		status, err = app.WaitForSummary(cmd.Context(), svc.Client, query, interval)
	} else {
		var raw json.RawMessage
		if raw, err = svc.Client.CheckSummarizationStatus(cmd.Context(), query); err == nil {
			status, err = summaries.DecodeStatus(raw)
		}
	}
	if err != nil {
		return err
	}
	printStatus(cmd.OutOrStdout(), label, status)
	return nil
}

func statusQuery(cmd *cobra.Command, args []string) (any, string, error) {
	raw, _ := cmd.Flags().GetString("query")
	switch {
	case raw != "" && len(args) > 0:
		return nil, "", errors.New("status: pass either an audio file name or --query, not both")
	case raw != "":
		if !json.Valid([]byte(raw)) {
			return nil, "", fmt.Errorf("status: --query is not valid JSON")
		}
		return json.RawMessage(raw), raw, nil
	case len(args) == 1:
		return summaries.StatusQuery{AudioFileName: args[0]}, args[0], nil
	default:
		return nil, "", errors.New("status: audio file name required")
	}
}

func printStatus(w io.Writer, label string, status summaries.Status) {
	state := "in progress"
	if status.Completed {
		state = "completed"
	}
	fmt.Fprintf(w, "%s: %s\n", label, state)
	if status.Message != "" {
		fmt.Fprintf(w, "  %s\n", status.Message)
	}
}
