package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/scrivener/internal/guard"
)

func (m Model) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Back):
		return m, m.navigate(guard.RouteHome, "")
	case keyMatches(msg, m.keys.Refresh):
		return m, m.loadSummaryCmd(m.summaryID)
	case keyMatches(msg, m.keys.Rename):
		if m.detail.AudioFileName == "" {
			return m, nil
		}
		return m.promptRename(m.detail)
	case keyMatches(msg, m.keys.Remove):
		if m.detail.AudioFileName == "" {
			return m, nil
		}
		return m.confirmRemove(m.detail, true)
	case keyMatches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case keyMatches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) resizeDetailViewport() {
	m.detailViewport.Width = max(m.width, 1)
	m.detailViewport.Height = max(m.contentHeight()-2, 1)
	m.refreshDetailContent()
}

// refreshDetailContent re-renders the summary body into the viewport.
func (m *Model) refreshDetailContent() {
	m.detailViewport.SetContent(m.detailBody())
}

func (m Model) detailBody() string {
	styles := m.theme.Styles()
	width := max(m.detailViewport.Width-2, 20)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	if m.detail.AudioFileName != "" {
		b.WriteString(styles.FaintText.Render("audio  ") + styles.MutedText.Render(m.detail.AudioFileName) + "\n")
	}
	if created := formatCreated(m.detail); created != "" {
		b.WriteString(styles.FaintText.Render("created  ") + styles.MutedText.Render(created) + "\n")
	}
	if status := strings.TrimSpace(m.detail.Status); status != "" {
		b.WriteString(styles.FaintText.Render("status  ") + styles.StatusStyle(status).Render(status) + "\n")
	}
	b.WriteString("\n")

	summary := strings.TrimSpace(m.detail.Summary)
	switch {
	case summary != "":
		b.WriteString(wrap.Inherit(styles.Text).Render(summary))
	case !m.detailLoaded:
		b.WriteString(styles.MutedText.Render("Loading summary..."))
	default:
		b.WriteString(styles.MutedText.Render("No summary yet. It may still be processing."))
	}
	b.WriteString("\n")

	if transcript := strings.TrimSpace(m.detail.Transcript); transcript != "" {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render("Transcript"))
		b.WriteString("\n")
		b.WriteString(wrap.Inherit(styles.MutedText).Render(transcript))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSummary() string {
	styles := m.theme.Styles()

	title := m.detail.Title()
	if title == "" {
		title = m.summaryID
	}
	heading := styles.AccentText.Bold(true).Render(" " + truncate(title, max(m.width-2, 1)))

	scroll := ""
	if !m.detailViewport.AtTop() || !m.detailViewport.AtBottom() {
		scroll = styles.FaintText.Render(" " + formatPercent(m.detailViewport.ScrollPercent()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, heading+scroll, "", m.detailViewport.View())
}
