package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/five82/scrivener/internal/app"
	"github.com/five82/scrivener/internal/summaries"
)

const defaultUploadJobs = 2

// NewUploadCmd creates the upload command.
func NewUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload recordings for transcription",
		Long: `Upload one or more audio files for transcription and summary.

Each file is stored under a slug of its base name, or of --name when a single
file is given. Files upload concurrently up to --jobs at a time; a failed
upload does not stop the others.`,
		Example: `  scrivener upload meeting.webm --name "Weekly sync"
  scrivener upload *.webm --jobs 4 --wait`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, true, func(svc *app.Services) error {
				return runUpload(cmd, svc, args)
			})
		},
	}
	cmd.Flags().String("name", "", "Recording title for a single file")
	cmd.Flags().IntP("jobs", "j", defaultUploadJobs, "Concurrent uploads")
	cmd.Flags().Bool("wait", false, "Wait for each summary to complete")
	return cmd
}

// uploadResult records the outcome for one input file.
type uploadResult struct {
	path     string
	name     string
	waited   time.Duration
	err      error
	finished bool
}

func runUpload(cmd *cobra.Command, svc *app.Services, paths []string) error {
	title, _ := cmd.Flags().GetString("name")
	jobs, _ := cmd.Flags().GetInt("jobs")
	wait, _ := cmd.Flags().GetBool("wait")
	if strings.TrimSpace(title) != "" && len(paths) > 1 {
		return errors.New("upload: --name needs exactly one file")
	}
	if jobs < 1 {
		jobs = 1
	}

	now := time.Now()
	results := make([]uploadResult, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		results[i] = uploadResult{path: path, name: summaries.UploadFileName(path, title, now)}
		g.Go(func() error {
			res := &results[i]
			select {
			case <-ctx.Done():
				res.err = ctx.Err()
				return nil
			default:
			}

			res.err = uploadOne(ctx, svc.Client, path, res.name)
			if res.err == nil && wait {
				start := time.Now()
				query := summaries.StatusQuery{AudioFileName: res.name}
				_, res.err = app.WaitForSummary(ctx, svc.Client, query, svc.Config.PollInterval)
				res.waited = time.Since(start)
				res.finished = res.err == nil
			}
			if res.err != nil {
				svc.Logger.Warn("upload failed", "file", path, "error", res.err)
			}
			// Failures are reported per file; the rest keep going.
			return nil
		})
	}
	_ = g.Wait()

	out := cmd.OutOrStdout()
	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.path, res.err))
			continue
		}
		fmt.Fprintf(out, "Uploaded %s as %s\n", res.path, res.name)
		if res.finished {
			fmt.Fprintf(out, "  summary ready after %s\n", res.waited.Round(time.Second))
		}
	}
	return errors.Join(errs...)
}

func uploadOne(ctx context.Context, client *summaries.Client, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, err = client.UploadFile(ctx, summaries.Upload{FileName: name, Content: file})
	return err
}
