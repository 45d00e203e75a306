package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/scrivener/internal/guard"
	"github.com/five82/scrivener/internal/summaries"
)

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Refresh):
		return m, m.loadListCmd()
	case keyMatches(msg, m.keys.Upload):
		modal, cmd := newInputModal("Upload recording", "path to audio file", "", func(path string) tea.Cmd {
			return m.uploadCmd(path)
		})
		m.modal = modal
		return m, cmd
	}

	items := m.snapshot.Summaries
	itemCount := len(items)
	if itemCount == 0 {
		return m, nil
	}

	half := max(m.listHeight()/2, 1)
	switch {
	case keyMatches(msg, m.keys.Down):
		if m.selectedRow < itemCount-1 {
			m.selectedRow++
		}
	case keyMatches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case keyMatches(msg, m.keys.Top):
		m.selectedRow = 0
	case keyMatches(msg, m.keys.Bottom):
		m.selectedRow = itemCount - 1
	case keyMatches(msg, m.keys.HalfPageDown):
		m.selectedRow = min(m.selectedRow+half, itemCount-1)
	case keyMatches(msg, m.keys.HalfPageUp):
		m.selectedRow = max(m.selectedRow-half, 0)
	case keyMatches(msg, m.keys.Open):
		return m, m.navigate(guard.RouteSummary, items[m.selectedRow].ID)
	case keyMatches(msg, m.keys.Rename):
		return m.promptRename(items[m.selectedRow])
	case keyMatches(msg, m.keys.Remove):
		return m.confirmRemove(items[m.selectedRow], false)
	}
	return m, nil
}

func (m Model) promptRename(s summaries.Summary) (tea.Model, tea.Cmd) {
	modal, cmd := newInputModal("Rename recording", "new name", s.Title(), func(name string) tea.Cmd {
		return m.renameCmd(s, name)
	})
	m.modal = modal
	return m, cmd
}

// confirmRemove asks before removing. leave returns to the list afterwards.
func (m Model) confirmRemove(s summaries.Summary, leave bool) (tea.Model, tea.Cmd) {
	prompt := fmt.Sprintf("Remove %q and its transcript? This cannot be undone.", s.Title())
	m.modal = newConfirmModal("Remove recording", prompt, func() tea.Cmd {
		return m.removeCmd(s, leave)
	})
	return m, nil
}

func (m Model) selectedSummary() (summaries.Summary, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.Summaries) {
		return summaries.Summary{}, false
	}
	return m.snapshot.Summaries[m.selectedRow], true
}

// listHeight is the number of rows available below the column header.
func (m Model) listHeight() int {
	return max(m.contentHeight()-1, 1)
}

func (m Model) renderHome() string {
	styles := m.theme.Styles()

	if len(m.snapshot.Summaries) == 0 {
		msg := "No summaries yet. Press u to upload a recording."
		if !m.snapshot.HasSummaries {
			msg = "Loading summaries..."
			if m.snapshot.LastError != nil {
				msg = "Could not load summaries: " + firstLine(m.snapshot.LastError.Error())
			}
		}
		return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	cols := listColumns(m.width)
	var b strings.Builder
	b.WriteString(styles.FaintText.Bold(true).Render(cols.header()))

	start, end := visibleWindow(m.selectedRow, len(m.snapshot.Summaries), m.listHeight())
	for i := start; i < end; i++ {
		s := m.snapshot.Summaries[i]
		b.WriteString("\n")
		if i == m.selectedRow {
			b.WriteString(styles.Selected.Width(m.width).Render(cols.row(s) + " " + truncate(s.Status, cols.status)))
			continue
		}
		b.WriteString(styles.Text.Render(cols.row(s)))
		if status := strings.TrimSpace(s.Status); status != "" {
			b.WriteString(" " + styles.StatusStyle(status).Render(truncate(status, cols.status-2)))
		}
	}
	return b.String()
}

// visibleWindow returns the [start, end) slice of rows to draw so that the
// selection stays on screen.
func visibleWindow(selected, total, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start := selected - height/2
	start = max(start, 0)
	start = min(start, total-height)
	return start, start + height
}

// compactWidth is the terminal width below which the audio column is hidden.
const compactWidth = 100

type columns struct {
	title, audio, created, status int
}

// listColumns sizes the list for the terminal width, dropping the audio
// file column on narrow terminals.
func listColumns(width int) columns {
	c := columns{created: 16, status: 12}
	rest := max(width-c.created-c.status-4, 20)
	if width < compactWidth {
		c.title = rest
		return c
	}
	c.audio = rest * 2 / 5
	c.title = rest - c.audio - 1
	return c
}

func (c columns) header() string {
	return c.format("TITLE", "AUDIO FILE", "CREATED") + " STATUS"
}

// row renders every column but status, which callers style separately.
func (c columns) row(s summaries.Summary) string {
	return c.format(s.Title(), s.AudioFileName, formatCreated(s))
}

func (c columns) format(title, audio, created string) string {
	parts := []string{padRight(truncate(title, c.title), c.title)}
	if c.audio > 0 {
		parts = append(parts, padRight(truncateMiddle(audio, c.audio), c.audio))
	}
	parts = append(parts, padRight(truncate(created, c.created), c.created))
	return " " + strings.Join(parts, " ")
}
