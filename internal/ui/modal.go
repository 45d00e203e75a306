package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question. onYes runs only on confirmation.
type confirmModal struct {
	title  string
	prompt string
	onYes  func() tea.Cmd
}

func newConfirmModal(title, prompt string, onYes func() tea.Cmd) *confirmModal {
	return &confirmModal{title: title, prompt: prompt, onYes: onYes}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case keyMatches(k, keys.Yes):
		var cmd tea.Cmd
		if c.onYes != nil {
			cmd = c.onYes()
		}
		return c, cmd, true
	case keyMatches(k, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, _ int) string {
	styles := theme.Styles()
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.DangerText.Render(c.title),
		"",
		styles.Text.Render(c.prompt),
		"",
		styles.FaintText.Render("y: yes   n/esc: no"),
	)
	return modalFrame(theme, width).Render(body)
}

// inputModal collects one line of text. Empty submissions close it without
// running onSubmit.
type inputModal struct {
	title    string
	input    textinput.Model
	onSubmit func(value string) tea.Cmd
}

func newInputModal(title, placeholder, value string, onSubmit func(string) tea.Cmd) (*inputModal, tea.Cmd) {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "› "
	in.CharLimit = 512
	in.SetValue(value)
	in.CursorEnd()
	cmd := in.Focus()
	return &inputModal{title: title, input: in, onSubmit: onSubmit}, cmd
}

func (i *inputModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMatches(k, keys.Confirm):
			value := strings.TrimSpace(i.input.Value())
			if value == "" || i.onSubmit == nil {
				return i, nil, true
			}
			return i, i.onSubmit(value), true
		case k.String() == "esc":
			return i, nil, true
		}
	}
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return i, cmd, false
}

func (i *inputModal) View(theme Theme, width, _ int) string {
	styles := theme.Styles()
	i.input.Width = max(min(width-16, 60), 10)
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.AccentText.Bold(true).Render(i.title),
		"",
		i.input.View(),
		"",
		styles.FaintText.Render("enter: save   esc: cancel"),
	)
	return modalFrame(theme, width).Render(body)
}

func modalFrame(theme Theme, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(max(min(width-8, 70), 24))
}
