// Package ui provides scrivener's terminal user interface, built on Bubble
// Tea.
//
// # Routes
//
// The UI has three screens, mirroring the web client it replaces:
//
//   - Login: paste the URL the login page redirects to ("...?token=...")
//     or a bare token
//   - Home: the list of summaries with rename, remove and upload actions
//   - Summary: one summary and its transcript in a scrollable viewport
//
// Every screen change goes through Model.navigate, which asks the guard
// first. Logging out navigates home, and the guard sends the user to Login
// because the credential is gone. Signing in navigates to Login, and the
// guard redirects home once the token is stored.
//
// # Data Flow
//
// A background poller (package app) keeps a state.Store up to date. The
// model re-reads the store on every tick. Actions run as tea.Cmds that call
// the summaries client and report back with a message; failures show up on
// the status line and are already logged by the client.
//
// # Package Structure
//
//   - app.go: Model, Options, Update/View and Run
//   - navigation.go: guarded route changes and the start route
//   - login.go, home.go, summary.go: per-route keys and rendering
//   - commands.go: tea.Cmds wrapping client calls
//   - modal.go: confirm and text input dialogs
//   - header.go, help.go, toast.go: chrome
//   - theme.go, keys.go, strings.go: styling and helpers
package ui
