package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	pderrors "github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/export"
	"github.com/rileyhilliard/pingdeck/internal/stats"
	"github.com/rileyhilliard/pingdeck/internal/supervisor"
)

// DefaultRefresh is how often the dashboard re-reads the stats store.
const DefaultRefresh = 250 * time.Millisecond

// Session is what the dashboard drives. *supervisor.Supervisor satisfies it.
type Session interface {
	Hosts() []supervisor.Host
	Toggle(addr string) bool
	TogglePause() bool
	SelectAll()
	DeselectAll()
	Paused() bool
	Store() *stats.Store
}

// Exporter writes a stats export. *export.Exporter satisfies it.
type Exporter interface {
	Export(hosts []string, snapshot map[string]stats.Stats) (export.Result, error)
}

// Options configures the dashboard.
type Options struct {
	Refresh  time.Duration
	Exporter Exporter
	// Port is shown next to the mode in HTTP mode.
	Port int
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	session  Session
	exporter Exporter
	keys     keyMap
	help     help.Model
	refresh  time.Duration
	port     int

	hosts    []supervisor.Host
	snapshot map[string]stats.Stats
	cursor   int
	width    int
	height   int
	showHelp bool
	quitting bool

	// Footer message from the last export.
	message    string
	messageErr bool
	exporting  bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// exportMsg carries the result of an export started with s.
type exportMsg struct {
	result export.Result
	err    error
}

// NewModel creates a dashboard over session.
func NewModel(session Session, opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = DefaultRefresh
	}
	m := Model{
		session:  session,
		exporter: opts.Exporter,
		keys:     keys,
		help:     help.New(),
		refresh:  opts.Refresh,
		port:     opts.Port,
	}
	m.sync()
	return m
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.sync()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.sync()
		return m, m.tickCmd()

	case exportMsg:
		m.exporting = false
		if msg.err != nil {
			m.message = pderrors.Short(msg.err)
			m.messageErr = true
		} else {
			m.message = msg.result.Message()
			m.messageErr = false
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// handleKey dispatches a key press to the supervisor.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Help toggle takes priority; Esc closes the overlay instead of quitting.
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return nil
	}
	if m.showHelp && msg.String() == "esc" {
		m.showHelp = false
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		if n := len(m.hosts); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}

	case key.Matches(msg, m.keys.Down):
		if n := len(m.hosts); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}

	case key.Matches(msg, m.keys.Toggle):
		if addr := m.CursorHost(); addr != "" {
			m.session.Toggle(addr)
		}

	case key.Matches(msg, m.keys.Pause):
		m.session.TogglePause()

	case key.Matches(msg, m.keys.SelectAll):
		m.session.SelectAll()

	case key.Matches(msg, m.keys.DeselectAll):
		m.session.DeselectAll()

	case key.Matches(msg, m.keys.Export):
		return m.exportCmd()
	}
	return nil
}

// sync re-reads the host list and a stats snapshot.
func (m *Model) sync() {
	m.hosts = m.session.Hosts()
	m.snapshot = m.session.Store().Snapshot()
	if m.cursor >= len(m.hosts) {
		m.cursor = 0
	}
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// exportCmd snapshots the store now and writes the files off the update loop.
func (m *Model) exportCmd() tea.Cmd {
	if m.exporter == nil {
		m.message = "Export is not configured"
		m.messageErr = true
		return nil
	}
	if m.exporting {
		return nil
	}
	m.exporting = true
	m.message = "Exporting..."
	m.messageErr = false

	store := m.session.Store()
	hosts := store.Hosts()
	snapshot := store.Snapshot()
	exporter := m.exporter
	return func() tea.Msg {
		res, err := exporter.Export(hosts, snapshot)
		return exportMsg{result: res, err: err}
	}
}

// CursorHost returns the address under the cursor.
func (m Model) CursorHost() string {
	if m.cursor >= 0 && m.cursor < len(m.hosts) {
		return m.hosts[m.cursor].Addr
	}
	return ""
}

// SelectedCount returns how many hosts are selected.
func (m Model) SelectedCount() int {
	n := 0
	for _, h := range m.hosts {
		if h.Selected {
			n++
		}
	}
	return n
}

// Message returns the footer message and whether it reports an error.
func (m Model) Message() (string, bool) {
	return m.message, m.messageErr
}
