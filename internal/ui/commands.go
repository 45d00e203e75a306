package ui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/scrivener/internal/config"
	"github.com/five82/scrivener/internal/guard"
	"github.com/five82/scrivener/internal/summaries"
)

type listMsg struct {
	items []summaries.Summary
	err   error
}

type summaryMsg struct {
	id      string
	summary summaries.Summary
	err     error
}

// actionMsg reports the outcome of a mutating call.
type actionMsg struct {
	done    string // toast on success
	err     error
	removed string // audio file name dropped from the list
	leave   bool   // return home on success
}

func (m Model) loadListCmd() tea.Cmd {
	client, store, ctx := m.client, m.store, m.ctx
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		raw, err := client.ListSummaries(ctx)
		if err != nil {
			if store != nil {
				store.Update(nil, err)
			}
			return listMsg{err: err}
		}
		items, err := summaries.DecodeSummaries(raw)
		if store != nil {
			store.Update(items, err)
		}
		return listMsg{items: items, err: err}
	}
}

func (m Model) loadSummaryCmd(id string) tea.Cmd {
	client, ctx := m.client, m.ctx
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		raw, err := client.GetSummary(ctx, id)
		if err != nil {
			return summaryMsg{id: id, err: err}
		}
		s, err := summaries.DecodeSummary(raw)
		return summaryMsg{id: id, summary: s, err: err}
	}
}

func (m Model) removeCmd(s summaries.Summary, leave bool) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		if _, err := client.RemoveSummary(ctx, s.AudioFileName); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{done: fmt.Sprintf("Removed %s", s.Title()), removed: s.AudioFileName, leave: leave}
	}
}

func (m Model) renameCmd(s summaries.Summary, name string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		if _, err := client.RenameSummary(ctx, s.AudioFileName, name); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{done: fmt.Sprintf("Renamed to %s", name)}
	}
}

func (m Model) uploadCmd(path string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		resolved, err := config.ExpandPath(path)
		if err != nil {
			return actionMsg{err: err}
		}
		file, err := os.Open(resolved)
		if err != nil {
			return actionMsg{err: fmt.Errorf("open %s: %w", path, err)}
		}
		defer func() { _ = file.Close() }()

		name := summaries.UploadFileName(resolved, "", time.Now())
		if _, err := client.UploadFile(ctx, summaries.Upload{FileName: name, Content: file}); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{done: fmt.Sprintf("Uploaded %s", name)}
	}
}

func (m Model) handleSummaryLoaded(msg summaryMsg) (tea.Model, tea.Cmd) {
	if m.route != guard.RouteSummary || msg.id != m.summaryID {
		return m, nil
	}
	if msg.err != nil {
		m.notifyError(msg.err)
		if summaries.IsNotFound(msg.err) {
			return m, m.navigate(guard.RouteHome, "")
		}
		return m, nil
	}
	m.detail = msg.summary
	if m.detail.ID == "" {
		m.detail.ID = msg.id
	}
	m.detailLoaded = true
	m.refreshDetailContent()
	return m, nil
}

func (m Model) handleAction(msg actionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notifyError(msg.err)
		return m, nil
	}
	m.notify(msg.done)
	if msg.removed != "" && m.store != nil {
		m.store.Forget(msg.removed)
	}
	if msg.leave && m.route == guard.RouteSummary {
		return m, m.navigate(guard.RouteHome, "")
	}
	if m.route == guard.RouteSummary {
		return m, tea.Batch(m.loadSummaryCmd(m.summaryID), m.loadListCmd())
	}
	return m, m.loadListCmd()
}
