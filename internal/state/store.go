package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/scrivener/internal/summaries"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Summaries           []summaries.Summary
	HasSummaries        bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Find returns the summary with the given id.
func (s Snapshot) Find(id string) (summaries.Summary, bool) {
	for _, item := range s.Summaries {
		if item.ID == id {
			return item, true
		}
	}
	return summaries.Summary{}, false
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored list. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(items []summaries.Summary, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Summaries = cloneSummaries(items)
	s.snapshot.HasSummaries = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Forget drops the entry for audioFileName without waiting for the next poll.
func (s *Store) Forget(audioFileName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.snapshot.Summaries[:0:0]
	for _, item := range s.snapshot.Summaries {
		if item.AudioFileName != audioFileName {
			kept = append(kept, item)
		}
	}
	s.snapshot.Summaries = kept
}

// Reset clears all data, e.g. after logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Summaries = cloneSummaries(s.snapshot.Summaries)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneSummaries(items []summaries.Summary) []summaries.Summary {
	if len(items) == 0 {
		return nil
	}
	dup := make([]summaries.Summary, len(items))
	copy(dup, items)
	return dup
}
