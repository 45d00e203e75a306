// Package logtail reads the tail of scrivener's log file for the logs
// command.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// O(maxLines) however large the file grows. A missing file yields no lines
// rather than an error, since the log only exists once the TUI has run.
//
// Level understands both slog handlers scrivener can be configured with:
//
//	time=2025-03-04T05:06:07Z level=WARN msg="request failed" endpoint=/get_summaries
//	{"time":"2025-03-04T05:06:07Z","level":"WARN","msg":"request failed"}
//
// Filter and Colorize build on it. Multi-line records keep the level of the
// line that started them.
package logtail
