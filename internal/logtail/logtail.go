package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file is not an error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// levelPattern matches the level attribute of slog's text and JSON handlers.
var levelPattern = regexp.MustCompile(`(?:^|\s)level=([A-Za-z]+(?:[+-]\d+)?)|"level":"([A-Za-z]+(?:[+-]\d+)?)"`)

// Level extracts the slog level recorded on line.
func Level(line string) (slog.Level, bool) {
	m := levelPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	value := m[1]
	if value == "" {
		value = m[2]
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, false
	}
	return level, true
}

// Filter keeps lines at or above minLevel. Lines without a level follow the
// decision made for the record before them.
func Filter(lines []string, minLevel slog.Level) []string {
	out := make([]string, 0, len(lines))
	keep := true
	for _, line := range lines {
		if level, ok := Level(line); ok {
			keep = level >= minLevel
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Colorize styles a line by its level. Lines without a level are returned
// unchanged.
func Colorize(line string) string {
	level, ok := Level(line)
	if !ok {
		return line
	}
	switch {
	case level >= slog.LevelError:
		return errorStyle.Render(line)
	case level >= slog.LevelWarn:
		return warnStyle.Render(line)
	case level >= slog.LevelInfo:
		return infoStyle.Render(line)
	default:
		return debugStyle.Render(line)
	}
}

// ColorizeLines applies Colorize to each line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Colorize(line)
	}
	return out
}
