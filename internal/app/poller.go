package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/five82/scrivener/internal/guard"
	"github.com/five82/scrivener/internal/state"
	"github.com/five82/scrivener/internal/summaries"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// Lister fetches the raw summaries list.
type Lister interface {
	ListSummaries(ctx context.Context) (json.RawMessage, error)
}

// Poller keeps a state.Store in sync with the summaries list.
type Poller struct {
	Store    *state.Store
	Lister   Lister
	Tokens   guard.Presence // nil polls unconditionally
	Interval time.Duration
	Logger   *slog.Logger
}

// Start launches a background goroutine that refreshes the store. Failed
// polls back off exponentially up to maxBackoff. It returns immediately.
func (p Poller) Start(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			if p.Refresh(ctx) != nil {
				failures++
			} else {
				failures = 0
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// Refresh runs a single poll. It is a no-op while no credential is present.
func (p Poller) Refresh(ctx context.Context) error {
	if p.Tokens != nil {
		if _, ok := p.Tokens.Token(); !ok {
			return nil
		}
	}

	raw, err := p.Lister.ListSummaries(ctx)
	if err == nil {
		var items []summaries.Summary
		items, err = summaries.DecodeSummaries(raw)
		if err == nil {
			p.Store.Update(items, nil)
			return nil
		}
	}

	p.Store.Update(nil, err)
	if p.Logger != nil {
		p.Logger.Warn("summaries poll failed", slog.Any("error", err))
	}
	return err
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
