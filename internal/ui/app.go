package ui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/mamba/internal/dashboard"
	"github.com/five82/mamba/internal/model"
	"github.com/five82/mamba/internal/prefs"
	"github.com/five82/mamba/internal/view"
)

// View represents the current screen.
type View int

const (
	ViewHome View = iota
	ViewDashboard
	ViewPasswords
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *dashboard.Controller
	ThemeName  string
	HideLinks  bool
	PrefsPath  string
	Logger     *log.Logger
}

type noticeState struct {
	text     string
	severity dashboard.Severity
	seq      int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *dashboard.Controller
	keys      keyMap
	prefsPath string
	logger    *log.Logger

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	hideLinks   bool

	// Home state
	users      []string
	userCursor int

	// leaving is set until the controller has finished going home; a user
	// picked meanwhile waits in pendingUser.
	leaving     bool
	pendingUser string

	// Dashboard state
	session     dashboard.Session
	sections    []view.Section
	labels      [3]string
	selectedRow int
	offline     bool

	// Passwords state
	passwords   []model.PasswordEntry
	passwordRow int

	// Feedback
	notice  noticeState
	busy    bool
	spinner spinner.Model

	// Overlays
	showHelp bool
	modal    Modal
	addDraft *addModal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		ctrl:        opts.Controller,
		keys:        DefaultKeyMap(),
		prefsPath:   opts.PrefsPath,
		logger:      logger,
		theme:       GetTheme(themeName),
		currentView: ViewHome,
		hideLinks:   opts.HideLinks,
		session:     dashboard.Session{Platform: model.Instagram},
		labels:      [3]string{string(model.Slot1), string(model.Slot2), string(model.Slot3)},
		spinner:     sp,
	}
	if m.ctrl != nil {
		m.users = m.ctrl.Users()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("mamba")
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
		return m, nil

	case renderMsg:
		m.sections = []view.Section(msg)
		m.syncFromController()
		m.clampSelection()
		return m, nil

	case noticeMsg:
		m.notice = noticeState{text: msg.text, severity: msg.severity, seq: m.notice.seq + 1}
		m.syncOffline()
		return m, expireNoticeCmd(m.notice.seq)

	case noticeExpiredMsg:
		if int(msg) == m.notice.seq {
			m.notice.text = ""
		}
		return m, nil

	case busyMsg:
		m.busy = bool(msg)
		if m.busy {
			return m, m.spinner.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submitVideoMsg:
		return m, addVideoCmd(m.ctx, m.ctrl, msg)

	case videoAddedMsg:
		if msg.err != nil {
			m.logger.Debug("add video failed", "err", msg.err)
			return m, nil
		}
		// The form is cleared only once the create is confirmed.
		m.addDraft = nil
		if _, ok := m.modal.(*addModal); ok {
			m.modal = nil
		}
		return m, nil

	case submitNamesMsg:
		return m, saveNamesCmd(m.ctx, m.ctrl, msg)

	case namesSavedMsg:
		if msg.err != nil {
			m.logger.Debug("save profile names failed", "err", msg.err)
			return m, nil
		}
		if _, ok := m.modal.(*namesModal); ok {
			m.modal = nil
		}
		return m, nil

	case confirmDeleteMsg:
		return m, deleteCmd(m.ctx, m.ctrl, msg.id)

	case homeReachedMsg:
		m.leaving = false
		if m.pendingUser == "" {
			return m, nil
		}
		user := m.pendingUser
		m.pendingUser = ""
		return m, selectUserCmd(m.ctx, m.ctrl, user)

	case actionDoneMsg:
		if msg.err != nil {
			m.logger.Debug("action failed", "action", msg.action, "err", msg.err)
		}
		return m, nil
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
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil
	}

	switch m.currentView {
	case ViewHome:
		return m.handleHomeKey(msg)
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewPasswords:
		return m.handlePasswordsKey(msg)
	}
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		if draft, ok := next.(*addModal); ok {
			m.addDraft = draft
		}
		m.modal = nil
		return m, cmd
	}
	m.modal = next
	return m, cmd
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, HideLinks: m.hideLinks}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "err", err)
	}
}

// syncFromController copies the read-only projections the views need.
func (m *Model) syncFromController() {
	if m.ctrl == nil {
		return
	}
	m.session = m.ctrl.Session()
	m.labels = m.ctrl.SlotLabels()
	m.passwords = m.ctrl.Passwords()
	m.syncOffline()
}

func (m *Model) syncOffline() {
	if m.ctrl == nil {
		return
	}
	m.offline = m.ctrl.Mirror().IsOffline()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	header := m.renderHeader()
	commands := m.renderCommandBar()
	footer := m.renderFooter()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(commands) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch m.currentView {
	case ViewDashboard:
		body = m.renderDashboard(bodyHeight)
	case ViewPasswords:
		body = m.renderPasswords(bodyHeight)
	default:
		body = m.renderHome(bodyHeight)
	}
	body = lipgloss.NewStyle().Width(m.width).Height(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, commands, body, footer)
}

// Messages

type renderMsg []view.Section

type noticeMsg struct {
	text     string
	severity dashboard.Severity
}

type busyMsg bool

type noticeExpiredMsg int

type submitVideoMsg struct {
	slot  model.Slot
	title string
	link  string
}

type videoAddedMsg struct {
	video model.Video
	err   error
}

type submitNamesMsg struct {
	names [3]string
}

type namesSavedMsg struct {
	err error
}

type confirmDeleteMsg struct {
	id model.ID
}

type homeReachedMsg struct{}

type actionDoneMsg struct {
	action string
	err    error
}

// Commands
//
// Controller calls run inside commands. The controller reports back through
// the program shell, which must never be driven from the update goroutine.

func expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg(seq)
	})
}

func controllerCmd(ctrl *dashboard.Controller, action string, fn func(*dashboard.Controller) error) tea.Cmd {
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctrl)}
	}
}

func selectUserCmd(ctx context.Context, ctrl *dashboard.Controller, user string) tea.Cmd {
	return controllerCmd(ctrl, "select user", func(c *dashboard.Controller) error {
		return c.SelectUser(ctx, user)
	})
}

func refreshCmd(ctx context.Context, ctrl *dashboard.Controller) tea.Cmd {
	return controllerCmd(ctrl, "refresh", func(c *dashboard.Controller) error {
		return c.Refresh(ctx)
	})
}

func selectPlatformCmd(ctrl *dashboard.Controller, platform model.Platform) tea.Cmd {
	return controllerCmd(ctrl, "select platform", func(c *dashboard.Controller) error {
		return c.SelectPlatform(platform)
	})
}

func goHomeCmd(ctrl *dashboard.Controller) tea.Cmd {
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		ctrl.GoHome()
		return homeReachedMsg{}
	}
}

func toggleCmd(ctrl *dashboard.Controller, id model.ID) tea.Cmd {
	return controllerCmd(ctrl, "toggle", func(c *dashboard.Controller) error {
		return c.ToggleStatus(id)
	})
}

func deleteCmd(ctx context.Context, ctrl *dashboard.Controller, id model.ID) tea.Cmd {
	return controllerCmd(ctrl, "delete", func(c *dashboard.Controller) error {
		return c.Delete(ctx, id)
	})
}

func copyCmd(ctrl *dashboard.Controller, text, what string) tea.Cmd {
	return controllerCmd(ctrl, "copy", func(c *dashboard.Controller) error {
		return c.Copy(text, what)
	})
}

func addVideoCmd(ctx context.Context, ctrl *dashboard.Controller, msg submitVideoMsg) tea.Cmd {
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		v, err := ctrl.SubmitNew(ctx, msg.slot, msg.title, msg.link)
		return videoAddedMsg{video: v, err: err}
	}
}

func saveNamesCmd(ctx context.Context, ctrl *dashboard.Controller, msg submitNamesMsg) tea.Cmd {
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		return namesSavedMsg{err: ctrl.SaveProfileNames(ctx, msg.names[0], msg.names[1], msg.names[2])}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Controller != nil {
		opts.Controller.SetShell(programShell{program: p})
		defer opts.Controller.SetShell(nil)
	}

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
