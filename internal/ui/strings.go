package ui

import (
	"fmt"
	"strings"

	"github.com/five82/scrivener/internal/summaries"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle shortens a file name from the middle, keeping a short
// extension intact.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}

	ext := ""
	if dot := strings.LastIndex(value, "."); dot > 0 {
		if e := []rune(value[dot:]); len(e) < 8 && len(e) < limit/2 {
			ext = value[dot:]
			runes = []rune(value[:dot])
		}
	}

	keep := limit - len([]rune(ext)) - 1 // room for ellipsis rune
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:]) + ext
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// formatCreated renders a summary's creation time in local time, or the raw
// value when it does not parse.
func formatCreated(s summaries.Summary) string {
	if t := s.ParsedCreatedAt(); !t.IsZero() {
		return t.Local().Format("2006-01-02 15:04")
	}
	return strings.TrimSpace(s.CreatedAt)
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%3.0f%%", fraction*100)
}
