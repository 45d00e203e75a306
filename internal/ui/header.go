package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/scrivener/internal/guard"
)

// renderHeader renders the top bar: app name, current route and connection
// state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	sep := styles.Surface.Render("  ")

	parts := []string{
		styles.Logo.Render("scrivener"),
		styles.AccentText.Render(m.routeLabel()),
	}

	switch {
	case m.route == guard.RouteLogin:
		parts = append(parts, styles.MutedText.Render("signed out"))
	case m.snapshot.IsOffline():
		parts = append(parts,
			styles.DangerText.Render(classifyConnectionError(m.snapshot.LastError)),
			styles.WarningText.Render("Retrying..."),
		)
	case m.snapshot.HasSummaries:
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d summaries", len(m.snapshot.Summaries))))
	}

	if !m.lastUpdated.IsZero() && m.route != guard.RouteLogin {
		parts = append(parts, styles.FaintText.Render("updated "+m.lastUpdated.Format("15:04:05")))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func (m Model) routeLabel() string {
	if m.route == guard.RouteSummary {
		return "Summary " + m.summaryID
	}
	return m.route.Name()
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints for the current route.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.route {
	case guard.RouteLogin:
		commands = []cmd{
			{"enter", "Sign in"},
			{"esc", "Clear"},
			{"ctrl+c", "Quit"},
		}
	case guard.RouteSummary:
		commands = []cmd{
			{"esc", "Back"},
			{"j/k", "Scroll"},
			{"r", "Rename"},
			{"d", "Remove"},
			{"R", "Reload"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"enter", "Open"},
			{"j/k", "Navigate"},
			{"u", "Upload"},
			{"r", "Rename"},
			{"d", "Remove"},
			{"R", "Refresh"},
			{"L", "Logout"},
			{"?", "More"},
		}
	}

	colon := styles.Surface.Render(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, styles.AccentText.Render(c.key)+colon+styles.MutedText.Render(c.desc))
	}
	segments = append(segments, styles.AccentText.Render("T")+colon+styles.FaintText.Render(m.theme.Name))

	return styles.Header.Width(m.width).Render(strings.Join(segments, styles.Surface.Render("  ")))
}

// renderStatusLine shows the current toast, if any.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	if m.toast.text == "" {
		return styles.Footer.Width(m.width).Render("")
	}
	text := truncate(m.toast.text, max(m.width-4, 1))
	if m.toast.level == toastError {
		return styles.Footer.Width(m.width).Render(styles.DangerText.Background(lipgloss.Color(m.theme.Surface)).Render(text))
	}
	return styles.Footer.Width(m.width).Render(styles.SuccessText.Background(lipgloss.Color(m.theme.Surface)).Render(text))
}
