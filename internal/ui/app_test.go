package ui

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/scrivener/internal/credential"
	"github.com/five82/scrivener/internal/guard"
	"github.com/five82/scrivener/internal/logging"
	"github.com/five82/scrivener/internal/state"
	"github.com/five82/scrivener/internal/summaries"
)

type fakeAPI struct {
	tokens  *credential.Store
	listRaw json.RawMessage
	getRaw  json.RawMessage
	getErr  error
	removed []string
	renamed [][2]string
	uploads []string
	logouts int
}

var _ summaries.API = (*fakeAPI)(nil)

func (f *fakeAPI) ListSummaries(context.Context) (json.RawMessage, error) {
	if f.listRaw == nil {
		return json.RawMessage(`[]`), nil
	}
	return f.listRaw, nil
}

func (f *fakeAPI) GetSummary(context.Context, string) (json.RawMessage, error) {
	return f.getRaw, f.getErr
}

func (f *fakeAPI) RemoveSummary(_ context.Context, audioFileName string) (json.RawMessage, error) {
	f.removed = append(f.removed, audioFileName)
	return json.RawMessage(`{}`), nil
}

func (f *fakeAPI) RenameSummary(_ context.Context, audioFileName, recordingName string) (json.RawMessage, error) {
	f.renamed = append(f.renamed, [2]string{audioFileName, recordingName})
	return json.RawMessage(`{}`), nil
}

func (f *fakeAPI) CheckSummarizationStatus(context.Context, any) (json.RawMessage, error) {
	return json.RawMessage(`{"completed":true}`), nil
}

func (f *fakeAPI) UploadFile(_ context.Context, upload summaries.Upload) (json.RawMessage, error) {
	f.uploads = append(f.uploads, upload.FileName)
	return json.RawMessage(`{"message":"File uploaded successfully"}`), nil
}

func (f *fakeAPI) Logout() error {
	f.logouts++
	return f.tokens.Clear()
}

func newTestModel(t *testing.T, token string, startPath string) (Model, *fakeAPI, *credential.Store) {
	t.Helper()
	tokens := credential.NewStore(credential.NewMemoryStorage(), nil, logging.Discard())
	if token != "" {
		if err := tokens.Set(token); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	api := &fakeAPI{tokens: tokens}
	m := New(Options{
		Client:    api,
		Tokens:    tokens,
		Store:     &state.Store{},
		PrefsPath: t.TempDir() + "/prefs.toml",
		StartPath: startPath,
	})
	return m, api, tokens
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestNew_WithoutCredentialStartsAtLogin(t *testing.T) {
	m, _, _ := newTestModel(t, "", "")
	if m.route != guard.RouteLogin {
		t.Fatalf("route = %v, want Login", m.route)
	}
}

func TestNew_WithCredentialRedirectsHome(t *testing.T) {
	m, _, _ := newTestModel(t, "abc", "")
	if m.route != guard.RouteHome {
		t.Fatalf("route = %v, want Home", m.route)
	}
}

func TestNew_HandoffTokenPersistsAndLandsHome(t *testing.T) {
	m, _, tokens := newTestModel(t, "", "/?token=abc123")
	if m.route != guard.RouteHome {
		t.Fatalf("route = %v, want Home", m.route)
	}
	if token, ok := tokens.Token(); !ok || token != "abc123" {
		t.Fatalf("Token = %q, %v, want abc123 after the query string is gone", token, ok)
	}
}

func TestNew_DeepLinkToSummary(t *testing.T) {
	m, _, _ := newTestModel(t, "abc", "/summary/42")
	if m.route != guard.RouteSummary || m.summaryID != "42" {
		t.Fatalf("route = %v id = %q, want Summary 42", m.route, m.summaryID)
	}

	anon, _, _ := newTestModel(t, "", "/summary/42")
	if anon.route != guard.RouteLogin {
		t.Fatalf("anonymous deep link route = %v, want Login", anon.route)
	}
}

func TestLogin_RawTokenNavigatesHome(t *testing.T) {
	m, _, tokens := newTestModel(t, "", "")
	m.loginInput.SetValue("  tok-1  ")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.route != guard.RouteHome {
		t.Fatalf("route = %v, want Home", m.route)
	}
	if token, _ := tokens.Token(); token != "tok-1" {
		t.Fatalf("Token = %q, want tok-1", token)
	}
}

func TestLogin_HandoffURL(t *testing.T) {
	m, _, tokens := newTestModel(t, "", "")
	m.loginInput.SetValue("http://localhost:5173/?token=from-url")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.route != guard.RouteHome {
		t.Fatalf("route = %v, want Home", m.route)
	}
	if token, _ := tokens.Token(); token != "from-url" {
		t.Fatalf("Token = %q, want from-url", token)
	}
}

func TestLogin_EmptyInputStaysOnLogin(t *testing.T) {
	m, _, _ := newTestModel(t, "", "")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.route != guard.RouteLogin {
		t.Fatalf("route = %v, want Login", m.route)
	}
	if m.toast.level != toastError || m.toast.text == "" {
		t.Fatalf("toast = %+v, want error", m.toast)
	}
}

func TestLogout_RedirectsToLogin(t *testing.T) {
	m, api, tokens := newTestModel(t, "abc", "")
	m.store.Update([]summaries.Summary{{ID: "1"}}, nil)

	m, _ = update(t, m, runeKey("L"))
	if m.route != guard.RouteLogin {
		t.Fatalf("route = %v, want Login", m.route)
	}
	if api.logouts != 1 {
		t.Fatalf("Logout calls = %d, want 1", api.logouts)
	}
	if _, ok := tokens.Token(); ok {
		t.Fatalf("credential still present after logout")
	}
	if len(m.store.Snapshot().Summaries) != 0 {
		t.Fatalf("store not reset on logout")
	}
}

func homeWithItems(t *testing.T) (Model, *fakeAPI) {
	t.Helper()
	m, api, _ := newTestModel(t, "abc", "")
	m.applySnapshot(state.Snapshot{
		HasSummaries: true,
		Summaries: []summaries.Summary{
			{ID: "1", AudioFileName: "a.webm", RecordingName: "First"},
			{ID: "2", AudioFileName: "b.webm", RecordingName: "Second"},
		},
	})
	return m, api
}

func TestHome_RemoveRequiresConfirmation(t *testing.T) {
	m, api := homeWithItems(t)

	m, _ = update(t, m, runeKey("d"))
	if m.modal == nil {
		t.Fatalf("remove did not open a confirmation")
	}
	m, cmd := update(t, m, runeKey("n"))
	if m.modal != nil || cmd != nil {
		t.Fatalf("declining left modal=%v cmd=%v", m.modal, cmd)
	}
	if len(api.removed) != 0 {
		t.Fatalf("removed without confirmation: %v", api.removed)
	}

	m, _ = update(t, m, runeKey("j"))
	m, _ = update(t, m, runeKey("d"))
	m, cmd = update(t, m, runeKey("y"))
	if m.modal != nil || cmd == nil {
		t.Fatalf("confirming left modal=%v cmd=%v", m.modal, cmd)
	}
	msg := cmd()
	if len(api.removed) != 1 || api.removed[0] != "b.webm" {
		t.Fatalf("removed = %v, want [b.webm]", api.removed)
	}
	action, ok := msg.(actionMsg)
	if !ok || action.err != nil || action.removed != "b.webm" {
		t.Fatalf("msg = %#v", msg)
	}
}

func TestHome_RenameSubmitsNewName(t *testing.T) {
	m, api := homeWithItems(t)

	m, _ = update(t, m, runeKey("r"))
	modal, ok := m.modal.(*inputModal)
	if !ok {
		t.Fatalf("modal = %T, want *inputModal", m.modal)
	}
	if modal.input.Value() != "First" {
		t.Fatalf("rename prefill = %q, want First", modal.input.Value())
	}
	modal.input.SetValue("Renamed")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != nil || cmd == nil {
		t.Fatalf("submit left modal=%v cmd=%v", m.modal, cmd)
	}
	cmd()
	if len(api.renamed) != 1 || api.renamed[0] != [2]string{"a.webm", "Renamed"} {
		t.Fatalf("renamed = %v", api.renamed)
	}
}

func TestHome_EnterOpensSummary(t *testing.T) {
	m, _ := homeWithItems(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.route != guard.RouteSummary || m.summaryID != "1" {
		t.Fatalf("route = %v id = %q, want Summary 1", m.route, m.summaryID)
	}
	if m.detail.Title() != "First" {
		t.Fatalf("detail not seeded from list: %+v", m.detail)
	}
}

func TestSummary_NotFoundReturnsHome(t *testing.T) {
	m, _, _ := newTestModel(t, "abc", "/summary/42")

	err := &summaries.APIError{Endpoint: summaries.EndpointGetSummary, StatusCode: 404, Message: "Summary not found"}
	m, _ = update(t, m, summaryMsg{id: "42", err: err})
	if m.route != guard.RouteHome {
		t.Fatalf("route = %v, want Home", m.route)
	}
	if m.toast.text != "Summary not found" {
		t.Fatalf("toast = %q, want Summary not found", m.toast.text)
	}
}

func TestSummary_LoadedShowsContent(t *testing.T) {
	m, _, _ := newTestModel(t, "abc", "/summary/42")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, summaryMsg{id: "42", summary: summaries.Summary{RecordingName: "Standup", Summary: "We shipped."}})

	if !m.detailLoaded || m.detail.ID != "42" {
		t.Fatalf("detail = %+v loaded=%v", m.detail, m.detailLoaded)
	}
	view := m.View()
	if !strings.Contains(view, "Standup") || !strings.Contains(view, "We shipped.") {
		t.Fatalf("view missing summary content:\n%s", view)
	}
}

func TestSummary_StaleResultIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, "abc", "/summary/42")
	m, _ = update(t, m, summaryMsg{id: "7", summary: summaries.Summary{RecordingName: "Other"}})
	if m.detailLoaded {
		t.Fatalf("result for another id was applied")
	}
}

func TestView_RendersEveryRoute(t *testing.T) {
	for _, start := range []string{"", "/home", "/summary/1"} {
		for _, token := range []string{"", "abc"} {
			m, _, _ := newTestModel(t, token, start)
			m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
			if view := m.View(); !strings.Contains(view, "scrivener") {
				t.Fatalf("start=%q token=%q view missing header:\n%s", start, token, view)
			}
		}
	}
}
