package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/scrivener/internal/config"
	"github.com/five82/scrivener/internal/logging"
	"github.com/five82/scrivener/internal/logtail"
)

const defaultLogLines = 200

// NewLogsCmd creates the logs command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the TUI log file",
		Long: `Show the last lines of scrivener.log, the file the terminal UI logs to.

The file lives next to the credential database. --level hides records below
the given level; continuation lines follow the record they belong to.`,
		Args: cobra.NoArgs,
		RunE: runLogs,
	}
	cmd.Flags().IntP("lines", "n", defaultLogLines, "Number of lines to show (0 for all)")
	cmd.Flags().String("level", "debug", "Minimum level: debug, info, warn, error")
	cmd.Flags().Bool("no-color", false, "Disable level colors")
	return cmd
}

func runLogs(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(getConfigFlag(cmd))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lines, _ := cmd.Flags().GetInt("lines")
	levelName, _ := cmd.Flags().GetString("level")
	noColor, _ := cmd.Flags().GetBool("no-color")

	minLevel, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	path := cfg.LogPath()
	tail, err := logtail.Read(path, lines)
	if err != nil {
		return err
	}
	if len(tail) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "no log entries in %s\n", path)
		return nil
	}
	if minLevel > slog.LevelDebug {
		tail = logtail.Filter(tail, minLevel)
	}
	if !noColor {
		tail = logtail.ColorizeLines(tail)
	}
	if len(tail) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tail, "\n"))
	}
	return nil
}
