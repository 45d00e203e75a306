package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/scrivener/internal/credential"
	"github.com/five82/scrivener/internal/guard"
	"github.com/five82/scrivener/internal/logging"
	"github.com/five82/scrivener/internal/prefs"
	"github.com/five82/scrivener/internal/state"
	"github.com/five82/scrivener/internal/summaries"
)

// defaultPollTick is how often the model re-reads the state store.
const defaultPollTick = time.Second

// Credentials is the credential surface the UI drives. *credential.Store
// implements it.
type Credentials interface {
	Token() (string, bool)
	Set(token string) error
	SetLocation(loc credential.Location)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    summaries.API
	Tokens    Credentials
	Guard     *guard.Guard // nil builds one over Tokens
	Store     *state.Store
	Logger    *slog.Logger
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	StartPath string // e.g. "/?token=abc" or "/summary/42"
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    summaries.API
	tokens    Credentials
	guard     *guard.Guard
	store     *state.Store
	logger    *slog.Logger
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme  Theme
	route  guard.Route
	width  int
	height int
	ready  bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	selectedRow int

	// Summary state
	summaryID      string
	detail         summaries.Summary
	detailLoaded   bool
	detailViewport viewport.Model

	// Login state
	loginInput textinput.Model

	// Overlays
	modal    Modal
	showHelp bool
	toast    toast

	initCmd tea.Cmd
}

// New creates a new Bubble Tea model and resolves the start route through
// the guard.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultPollTick
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	g := opts.Guard
	if g == nil {
		var presence guard.Presence
		if opts.Tokens != nil {
			presence = opts.Tokens
		}
		g = guard.New(presence)
	}

	input := textinput.New()
	input.Placeholder = "paste login URL or token"
	input.Prompt = "› "
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = 4096

	m := Model{
		ctx:            ctx,
		client:         opts.Client,
		tokens:         opts.Tokens,
		guard:          g,
		store:          opts.Store,
		logger:         logger,
		prefsPath:      prefsPath,
		pollTick:       pollTick,
		keys:           DefaultKeyMap(),
		theme:          GetTheme(themeName),
		route:          guard.RouteLogin,
		loginInput:     input,
		detailViewport: viewport.New(0, 0),
	}
	m.initCmd = m.start(opts.StartPath)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		textinput.Blink,
	}
	if m.initCmd != nil {
		cmds = append(cmds, m.initCmd)
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeDetailViewport()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case listMsg:
		if msg.err != nil {
			m.notifyError(msg.err)
			return m, nil
		}
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		m.applySnapshot(state.Snapshot{Summaries: msg.items, HasSummaries: true, LastUpdated: time.Now()})
		return m, nil

	case summaryMsg:
		return m.handleSummaryLoaded(msg)

	case actionMsg:
		return m.handleAction(msg)
	}

	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}
	if m.route == guard.RouteLogin {
		var cmd tea.Cmd
		m.loginInput, cmd = m.loginInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			m.modal.View(m.theme, m.width, m.height),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
		)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The login input owns every other key while it is shown.
	if m.route == guard.RouteLogin {
		return m.handleLoginKey(msg)
	}

	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit
	case keyMatches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case keyMatches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.saveTheme()
		m.refreshDetailContent()
		return m, nil
	case keyMatches(msg, m.keys.Logout):
		return m.logout()
	}

	switch m.route {
	case guard.RouteHome:
		return m.handleHomeKey(msg)
	case guard.RouteSummary:
		return m.handleSummaryKey(msg)
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.toast.expire(now)

	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.lastUpdated = snap.LastUpdated
	if n := len(snap.Summaries); m.selectedRow >= n {
		m.selectedRow = max(n-1, 0)
	}
}

func (m *Model) saveTheme() {
	if m.prefsPath == "" {
		return
	}
	name := m.theme.Name
	if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
		m.logger.Warn("save prefs failed", slog.Any("error", err))
	}
}

// renderMain renders the header, command bar, content and status line.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	content := m.renderContent()
	b.WriteString(lipgloss.NewStyle().Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content))
	b.WriteString("\n")

	b.WriteString(m.renderStatusLine())

	return b.String()
}

// renderContent renders the main content area for the current route.
func (m Model) renderContent() string {
	switch m.route {
	case guard.RouteLogin:
		return m.renderLogin()
	case guard.RouteHome:
		return m.renderHome()
	case guard.RouteSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

// contentHeight is the space left below the header and command bar and above
// the status line.
func (m Model) contentHeight() int {
	return max(m.height-3, 1)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
