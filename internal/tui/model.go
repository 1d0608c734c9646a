// Package tui provides the Bubble Tea authentication and dashboard interface.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarkovs/codetutor/internal/api"
	"github.com/dmarkovs/codetutor/internal/session"
)

const probeTimeout = 3 * time.Second

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	onlineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	offlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type (
	restoreDoneMsg struct{}
	authDoneMsg    struct{ err error }
	logoutDoneMsg  struct{}
	healthTickMsg  struct{}
	healthMsg      struct{ online bool }
)

// Model implements the Bubble Tea client UI. All session mutations go
// through the controller; the model owns only presentation state and the
// transient form inputs.
type Model struct {
	ctrl        *session.Controller
	client      api.Client
	healthEvery time.Duration

	login loginForm
	reg   registerForm
	spin  spinner.Model

	online   bool
	restored bool

	width  int
	height int
}

// NewModel constructs the client UI model.
func NewModel(ctrl *session.Controller, client api.Client, healthEvery time.Duration) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Model{
		ctrl:        ctrl,
		client:      client,
		healthEvery: healthEvery,
		login:       newLoginForm(),
		reg:         newRegisterForm(),
		spin:        sp,
	}
}

// Init implements tea.Model. Session restoration runs exactly once, before
// any user interaction.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.restoreCmd(), m.probeHealth())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case restoreDoneMsg:
		m.restored = true
		return m, nil

	case authDoneMsg:
		if msg.err == nil && m.ctrl.Authenticated() {
			// Never leak credentials into a stale dashboard render.
			m.login.reset()
			m.reg.reset()
		}
		return m, nil

	case logoutDoneMsg:
		return m, nil

	case healthTickMsg:
		return m, m.probeHealth()

	case healthMsg:
		m.online = msg.online
		return m, m.scheduleHealth()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.ctrl.View() {
	case session.ViewLogin:
		return m.handleLoginKey(msg)
	case session.ViewRegister:
		return m.handleRegisterKey(msg)
	case session.ViewDashboard:
		return m.handleDashboardKey(msg)
	}
	return m, nil
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		m.ctrl.ShowRegister()
		return m, nil
	case "tab", "down":
		m.login.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.login.focusPrev()
		return m, nil
	case "enter":
		// The loading flag gates re-entrancy: submit is a no-op while an
		// authentication attempt is outstanding.
		if m.ctrl.Loading() {
			return m, nil
		}
		return m, m.submitLogin()
	}
	return m, m.login.update(msg)
}

func (m *Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+l":
		m.ctrl.ShowLogin()
		return m, nil
	case "tab", "down":
		m.reg.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.reg.focusPrev()
		return m, nil
	case "enter":
		if m.ctrl.Loading() {
			return m, nil
		}
		return m, m.submitRegister()
	}
	return m, m.reg.update(msg)
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+d":
		return m, m.logoutCmd()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if !m.restored {
		body = m.spin.View() + " restoring session..."
		if m.width == 0 || m.height == 0 {
			return body
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	switch m.ctrl.View() {
	case session.ViewLogin:
		body = m.viewLogin()
	case session.ViewRegister:
		body = m.viewRegister()
	case session.ViewDashboard:
		body = m.viewDashboard()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) statusLine() string {
	if m.ctrl.Loading() {
		return m.spin.View() + " working..."
	}
	if err := m.ctrl.ErrorText(); err != "" {
		return errorStyle.Render(err)
	}
	return ""
}

func (m *Model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.ctrl.RestoreSession(context.Background())
		return restoreDoneMsg{}
	}
}

func (m *Model) submitLogin() tea.Cmd {
	email, password := m.login.values()
	return func() tea.Msg {
		return authDoneMsg{err: m.ctrl.Login(context.Background(), email, password)}
	}
}

func (m *Model) submitRegister() tea.Cmd {
	email, username, password, confirm := m.reg.values()
	return func() tea.Msg {
		return authDoneMsg{err: m.ctrl.Register(context.Background(), email, username, password, confirm)}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Logout(context.Background())
		return logoutDoneMsg{}
	}
}

func (m *Model) probeHealth() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		return healthMsg{online: m.client.Health(ctx) == nil}
	}
}

func (m *Model) scheduleHealth() tea.Cmd {
	return tea.Tick(m.healthEvery, func(time.Time) tea.Msg { return healthTickMsg{} })
}
