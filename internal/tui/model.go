package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/pingwatch/internal/rpc"
)

// Model is the root Bubbletea model for the dashboard.
type Model struct {
	client    DaemonClient
	status    *rpc.DaemonStatus
	connected bool

	width  int
	height int

	showHelp     bool
	confirmReset bool

	err   error
	flash string
}

// NewModel creates the dashboard model.
func NewModel(client DaemonClient) Model {
	return Model{client: client}
}

// Init fetches the first status and starts polling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchStatusCmd(m.client), tickCmd())
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, tea.Batch(fetchStatusCmd(m.client), tickCmd())

	case StatusMsg:
		m.status = msg.Status
		m.connected = true
		m.err = nil
		return m, nil

	case SoundToggledMsg:
		if m.status != nil {
			m.status.Monitor.SoundEnabled = msg.Enabled
		}
		if msg.Enabled {
			m.flash = "Sound on"
		} else {
			m.flash = "Sound off"
		}
		return m, clearFlashCmd()

	case DismissedMsg:
		if msg.Queued {
			m.flash = "Dismiss requested"
		} else {
			m.flash = "Daemon busy, dismiss dropped"
		}
		return m, tea.Batch(fetchStatusCmd(m.client), clearFlashCmd())

	case ErrorMsg:
		m.err = msg.Err
		m.connected = false
		return m, nil

	case ClearFlashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmReset {
		switch {
		case key.Matches(msg, keys.Confirm):
			m.confirmReset = false
			m.flash = "Counters reset"
			return m, tea.Batch(resetCmd(m.client), clearFlashCmd())
		case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Quit):
			m.confirmReset = false
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, keys.Help) || msg.String() == "esc" {
			m.showHelp = false
			return m, nil
		}
		if !key.Matches(msg, keys.Quit) {
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = true
	case key.Matches(msg, keys.Sound):
		return m, toggleSoundCmd(m.client)
	case key.Matches(msg, keys.Ack):
		m.flash = "Acknowledged"
		return m, tea.Batch(acknowledgeCmd(m.client), clearFlashCmd())
	case key.Matches(msg, keys.Dismiss):
		return m, dismissCmd(m.client)
	case key.Matches(msg, keys.Reset):
		m.confirmReset = true
	case key.Matches(msg, keys.Refresh):
		return m, fetchStatusCmd(m.client)
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	layout := computeLayout(m.width, m.height)
	header := renderHeader(m.status, m.width)
	body := renderPanels(renderCounters(m.status, layout.leftWidth-2), renderSources(m.status), layout)
	bar := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, bar)
	if m.showHelp {
		view = placeModal(view, renderHelp(m.width), m.width, m.height)
	}
	return view
}
