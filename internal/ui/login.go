package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/scrivener/internal/credential"
	"github.com/five82/scrivener/internal/guard"
	"github.com/five82/scrivener/internal/state"
)

// loginInput is either a handoff location or a raw token.
type loginInput struct {
	location credential.Location
	token    string
}

func parseLoginInput(value string) (loginInput, error) {
	loc, token, err := credential.ParseLogin(value)
	if err != nil {
		return loginInput{}, err
	}
	return loginInput{location: loc, token: token}, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Confirm):
		return m.submitLogin()
	case msg.String() == "esc":
		m.loginInput.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.loginInput, cmd = m.loginInput.Update(msg)
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if m.tokens == nil {
		return m, nil
	}
	in, err := parseLoginInput(m.loginInput.Value())
	if err != nil {
		m.notifyError(err)
		return m, nil
	}

	if in.location != nil {
		// The guard reads the token off the location and persists it.
		m.tokens.SetLocation(in.location)
	} else if err := m.tokens.Set(in.token); err != nil {
		m.notifyError(err)
		return m, nil
	}

	cmd := m.navigate(guard.RouteLogin, "")
	if m.route == guard.RouteLogin {
		m.notifyError(errors.New("login failed"))
		return m, cmd
	}
	m.notify("Logged in")
	return m, cmd
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if m.client != nil {
		if err := m.client.Logout(); err != nil {
			m.notifyError(err)
			return m, nil
		}
	}
	if m.store != nil {
		m.store.Reset()
	}
	m.snapshot = state.Snapshot{}
	m.selectedRow = 0
	cmd := m.navigate(guard.RouteHome, "")
	m.notify("Logged out")
	return m, cmd
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	title := styles.AccentText.Bold(true).Render("Sign in to scrivener")
	hint := styles.MutedText.Render("Open the login page in a browser, then paste the URL you are sent back to.")
	hint2 := styles.FaintText.Render("A bare token works too. enter: sign in  esc: clear  ctrl+c: quit")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(min(max(m.width-4, 20), 72)).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", hint, "", m.loginInput.View(), "", hint2))

	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, box)
}
