// Package app is scrivener's composition root.
//
// # Overview
//
// Open turns a config path into ready-to-use Services: it loads and
// validates the config, builds the redacting slog logger, opens the bbolt
// credential database, and wires the credential store into the summaries
// client and the navigation guard. Every CLI command starts from Open.
//
// Run does the same for the TUI and then hands control to ui.Run, with a
// background Poller keeping a state.Store fresh.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read scrivener config
//	       ├─────> logging.New()          stderr (CLI) or log file (TUI)
//	       ├─────> credential.OpenBolt()  Durable token storage
//	       ├─────> credential.NewStore()  Token from ?token= or storage
//	       ├─────> summaries.NewClient()  Authenticated HTTP client
//	       └─────> guard.New()            Route decisions
//
//	Run(): Open() → Poller.Start() → ui.Run() (blocks)
//
// # Polling Behavior
//
// The Poller lists summaries every poll_interval while a credential is
// present. Each failed poll doubles the wait, capped at 30 seconds, and a
// success resets it. Failures are recorded in the store for the UI and never
// stop the loop.
//
// WaitForSummary is the one-shot counterpart used after uploads: it asks
// summarizing_completed at a rate-limited pace until the backend reports
// completion, the context ends, or a call fails. It does not retry.
//
// # Error Handling
//
// Open returns wrapped errors for anything that prevents a usable client:
// unreadable config, invalid values, or a locked credential database (bbolt
// waits one second for another scrivener process to release it).
package app
