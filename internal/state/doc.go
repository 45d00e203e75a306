// Package state provides thread-safe state management for the scrivener TUI.
//
// # Overview
//
// The Store shares the latest summaries list between the background poller
// and the UI:
//
//	Producer (Poller):             Consumer (UI):
//	┌──────────────────┐          ┌──────────────────┐
//	│ ListSummaries()  │          │                  │
//	│       ↓          │          │                  │
//	│ store.Update()   │─────────→│ store.Snapshot() │
//	│       ↓          │ (mutex)  │       ↓          │
//	│  repeat...       │          │  render UI       │
//	└──────────────────┘          └──────────────────┘
//
// # Update Semantics
//
//	// Success case: replace the list
//	store.Update(items, nil)
//	→ snapshot.Summaries = items
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Error case: keep old data, record error
//	store.Update(nil, err)
//	→ snapshot.Summaries = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Forget removes one entry right after a successful remove so the list does
// not show it until the next poll. Reset wipes everything on logout.
//
// # Copying
//
// Update and Snapshot copy the slice so neither side can mutate the other's
// view. The zero Store is ready to use.
package state
