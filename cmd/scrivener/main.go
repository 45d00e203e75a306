// Package main provides the entry point for the scrivener CLI.
//
// scrivener talks to a meeting-summary backend: it lists, reads, renames and
// removes summaries, uploads recordings, and hosts a terminal UI over the
// same operations.
//
// Usage:
//
//	scrivener login "http://localhost:8008/?token=..."
//	scrivener list
//	scrivener upload meeting.webm --name "Weekly sync"
//	scrivener tui
//
// See --help for all available options.
package main

func main() {
	Execute()
}
