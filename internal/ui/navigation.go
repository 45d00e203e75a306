package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/scrivener/internal/credential"
	"github.com/five82/scrivener/internal/guard"
	"github.com/five82/scrivener/internal/summaries"
)

// start resolves the initial route. A token carried on startPath is handed
// to the credential store before the guard runs, the same way a login
// redirect lands on "/?token=...".
func (m *Model) start(startPath string) tea.Cmd {
	to, id := guard.ParseRoute(startPath)
	if to == guard.RouteUnknown {
		to = guard.RouteHome
	}

	if startPath != "" && m.tokens != nil {
		loc, err := credential.URLLocation(startPath)
		if err != nil {
			m.logger.Warn("ignoring start path", slog.String("path", startPath), slog.Any("error", err))
		} else {
			m.tokens.SetLocation(loc)
		}
	}
	return m.navigate(to, id)
}

// navigate moves to destination to, subject to the guard. Every route change
// goes through here.
func (m *Model) navigate(to guard.Route, id string) tea.Cmd {
	decision := m.guard.Evaluate(to)
	target := decision.Target(to)

	// Leaving the current location drops any handoff query string.
	if m.tokens != nil {
		m.tokens.SetLocation(credential.NoLocation)
	}

	m.logger.Debug("navigate",
		slog.String("to", to.Name()),
		slog.String("decision", decision.String()),
	)

	m.route = target
	if target != guard.RouteSummary {
		m.summaryID = ""
		m.detailLoaded = false
	}

	switch target {
	case guard.RouteLogin:
		m.loginInput.SetValue("")
		return m.loginInput.Focus()

	case guard.RouteHome:
		m.loginInput.Blur()
		return m.loadListCmd()

	case guard.RouteSummary:
		m.loginInput.Blur()
		m.summaryID = id
		m.detail = summaries.Summary{}
		m.detailLoaded = false
		if cached, ok := m.snapshot.Find(id); ok {
			m.detail = cached
		}
		m.refreshDetailContent()
		m.detailViewport.GotoTop()
		return m.loadSummaryCmd(id)
	}
	return nil
}
