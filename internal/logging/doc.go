// Package logging builds the slog loggers used across scrivener.
//
// Every logger returned by New wraps its text or JSON handler in Handler,
// which masks bearer tokens before they are written. Keys such as
// "authorization", anything containing "token", or an "auth" key segment
// are replaced with MaskValue, as are values containing "Bearer ...",
// JWTs, or URLs carrying a token query parameter.
//
// The CLI logs to stderr. The TUI logs to a file so log lines do not
// corrupt the alternate screen.
package logging
