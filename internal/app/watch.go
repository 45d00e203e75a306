package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/five82/scrivener/internal/summaries"
)

const defaultWatchInterval = 3 * time.Second

// StatusChecker is the slice of the client WaitForSummary needs.
type StatusChecker interface {
	CheckSummarizationStatus(ctx context.Context, query any) (json.RawMessage, error)
}

// WaitForSummary polls summarizing_completed until the backend reports
// completion. Errors end the wait immediately; the client has already logged
// them.
func WaitForSummary(ctx context.Context, checker StatusChecker, query any, interval time.Duration) (summaries.Status, error) {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	for {
		if err := limiter.Wait(ctx); err != nil {
			return summaries.Status{}, fmt.Errorf("wait for summary: %w", err)
		}
		raw, err := checker.CheckSummarizationStatus(ctx, query)
		if err != nil {
			return summaries.Status{}, err
		}
		status, err := summaries.DecodeStatus(raw)
		if err != nil {
			return summaries.Status{}, err
		}
		if status.Completed {
			return status, nil
		}
	}
}
