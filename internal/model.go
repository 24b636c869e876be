package internal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"project_timer/internal/applog"
	"project_timer/internal/config"
	"project_timer/internal/project"
	"project_timer/internal/timelog"
	"project_timer/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
)

type MsgTick struct{}

type Model struct {
	// Current project and its timer. The countdown timer is separate and
	// never touches the totals store.
	Project       string
	Timer         *timer.Timer
	Countdown     bool
	CountdownFrom time.Duration
	CD            *timer.Timer
	Alarm         bool

	Projects []string
	Recent   []timelog.Session
	Warning  string

	// Overlay state
	ShowSwitcher   bool
	SelectedIndex  int
	ShowAddForm    bool
	NewProjectName string
	ConfirmReset   bool
	ConfirmDelete  bool
	DeleteTarget   string
	ShowLogView    bool
	LogViewScroll  int
	AllSessions    []timelog.Session

	cfg      *config.Config
	store    *project.Store
	sessions *timelog.Repository // nil when session history is unavailable
	logger   applog.Logger

	now func() time.Time
}

// NewModel builds the model from whatever the store holds. Storage problems
// degrade to an empty state with a visible warning; they are never fatal.
func NewModel(cfg *config.Config, store *project.Store, sessions *timelog.Repository, logger applog.Logger) *Model {
	if logger == nil {
		logger = applog.NoopLogger{}
	}

	m := &Model{
		Timer:         timer.New(),
		CD:            timer.New(),
		CountdownFrom: cfg.CountdownDefault,
		cfg:           cfg,
		store:         store,
		sessions:      sessions,
		logger:        logger,
		now:           time.Now,
	}

	records, err := store.Load()
	if err != nil {
		m.Warning = fmt.Sprintf("starting from zero: %v", err)
		logger.Log(applog.Event{Kind: applog.KindLoadFailed, Detail: err.Error()})
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	m.Projects = names

	current := store.MostRecent()
	if current == "" && len(names) > 0 {
		current = names[0]
	}
	if current != "" {
		m.Project = current
		m.Timer.SetAccumulated(records[current].Duration())
	} else {
		m.ShowAddForm = true
	}

	m.loadRecent()
	logger.Log(applog.Event{Kind: applog.KindOpened, Project: m.Project})
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		// The tick only triggers a re-render; it never advances the timer.
		// The one exception is the countdown hitting zero.
		if m.Countdown && m.CD.Running() && m.Remaining(m.now()) <= 0 {
			m.CD.Stop(m.now())
			m.Alarm = true
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

// Remaining is the countdown time left at now, possibly negative.
func (m *Model) Remaining(now time.Time) time.Duration {
	return m.CountdownFrom - m.CD.Total(now)
}

// Toggle starts the active timer if stopped, stops it if running.
func (m *Model) Toggle() {
	now := m.now()
	if m.Countdown {
		if m.CD.Running() {
			m.CD.Stop(now)
			return
		}
		if m.Remaining(now) <= 0 {
			m.CD.Reset(now)
		}
		m.Alarm = false
		m.CD.Start(now)
		return
	}
	if m.Timer.Running() {
		m.stopCurrent(now)
		return
	}
	if m.Project == "" {
		return
	}
	m.Timer.Start(now)
	m.logger.Log(applog.Event{Kind: applog.KindStarted, Project: m.Project})
}

// stopCurrent folds and saves the project timer's running session. The
// countdown timer is handled inline by Toggle; it has nothing to persist.
// Every stop saves and logs, even a zero-length one; only the session
// record is skipped for empty intervals. The save runs before the session
// record so a session-log warning is not wiped by the successful save.
func (m *Model) stopCurrent(now time.Time) {
	startedAt, _ := m.Timer.StartedAt()
	session := m.Timer.Stop(now)
	m.saveCurrent()
	m.recordSession(startedAt, now, session)
	m.logger.Log(applog.Event{
		Kind:           applog.KindStopped,
		Project:        m.Project,
		SessionSeconds: session.Seconds(),
		TotalSeconds:   m.Timer.Accumulated().Seconds(),
	})
}

// saveCurrent writes the banked total back to the store. A running interval
// is deliberately not included: only folded time is ever persisted.
func (m *Model) saveCurrent() {
	if m.Project == "" {
		return
	}
	if err := m.store.Save(m.Project, m.Timer.Accumulated()); err != nil {
		m.Warning = fmt.Sprintf("save failed: %v", err)
		m.logger.Log(applog.Event{Kind: applog.KindSaveFailed, Project: m.Project, Detail: err.Error()})
		return
	}
	m.Warning = ""
}

// ResetCurrent clears the active timer's accumulation. Callers are
// responsible for confirming first; the key handler only reaches this
// through the confirmation overlay.
func (m *Model) ResetCurrent() {
	now := m.now()
	if m.Countdown {
		m.CD.Reset(now)
		m.Alarm = false
		return
	}
	m.Timer.Reset(now)
	m.saveCurrent()
	m.logger.Log(applog.Event{Kind: applog.KindReset, Project: m.Project})
}

// Adjust shifts the active total. In countdown mode it moves the remaining
// time instead.
func (m *Model) Adjust(delta time.Duration) {
	now := m.now()
	if m.Countdown {
		m.CountdownFrom += delta
		if m.CountdownFrom < 0 {
			m.CountdownFrom = 0
		}
		if m.Remaining(now) > 0 {
			m.Alarm = false
		}
		return
	}
	m.Timer.Adjust(delta, now)
}

// SwitchTo makes name the current project, saving the one being left first.
func (m *Model) SwitchTo(name string) {
	if name == "" || name == m.Project {
		return
	}
	now := m.now()
	if m.Timer.Running() {
		m.stopCurrent(now)
	} else {
		m.saveCurrent()
	}

	m.Project = name
	m.Timer = timer.New()
	m.Timer.SetAccumulated(m.store.Seconds(name))
	m.loadRecent()
	m.logger.Log(applog.Event{Kind: applog.KindSwitched, Project: name})
}

// AddProject creates name in the store (if new) and switches to it.
func (m *Model) AddProject(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if !m.hasProject(name) {
		if err := m.store.Save(name, 0); err != nil {
			m.Warning = fmt.Sprintf("save failed: %v", err)
			return
		}
		m.Projects = m.store.Projects()
	}
	m.SwitchTo(name)
}

// DeleteProject removes name's entry and its session history. Deleting the
// current project discards any interval in progress and falls back to the
// most recently used remaining project, or the empty state.
func (m *Model) DeleteProject(name string) {
	if name == "" {
		return
	}
	if name == m.Project && m.Timer.Running() {
		m.Timer.Stop(m.now())
	}
	if err := m.store.Delete(name); err != nil {
		m.Warning = fmt.Sprintf("delete failed: %v", err)
		return
	}
	if m.sessions != nil {
		if err := m.sessions.DeleteByProject(name); err != nil {
			m.Warning = fmt.Sprintf("session log failed: %v", err)
		}
	}
	m.Projects = m.store.Projects()
	if m.SelectedIndex >= len(m.Projects) {
		m.SelectedIndex = len(m.Projects) - 1
	}
	if m.SelectedIndex < 0 {
		m.SelectedIndex = 0
	}

	if name != m.Project {
		return
	}
	m.Project = ""
	m.Timer = timer.New()
	m.Recent = nil
	if next := m.store.MostRecent(); next != "" {
		m.SwitchTo(next)
	}
}

func (m *Model) hasProject(name string) bool {
	for _, p := range m.Projects {
		if p == name {
			return true
		}
	}
	return false
}

// ToggleCountdown flips between project tracking and countdown mode.
// Leaving project mode behaves like a project switch: the session is folded
// and saved.
func (m *Model) ToggleCountdown() {
	now := m.now()
	if m.Countdown {
		m.CD.Stop(now)
		m.CD.Reset(now)
		m.Countdown = false
		m.Alarm = false
		return
	}
	if m.Timer.Running() {
		m.stopCurrent(now)
	}
	m.CD = timer.New()
	m.CountdownFrom = m.cfg.CountdownDefault
	m.Countdown = true
	m.Alarm = false
}

// Close stops and saves everything for shutdown.
func (m *Model) Close() error {
	now := m.now()
	m.CD.Stop(now)
	if m.Timer.Running() {
		m.stopCurrent(now)
	} else {
		m.saveCurrent()
	}
	m.logger.Log(applog.Event{Kind: applog.KindClosed, Project: m.Project})

	if m.sessions != nil {
		return m.sessions.Close()
	}
	return nil
}

func (m *Model) loadRecent() {
	m.Recent = nil
	if m.sessions == nil || m.Project == "" {
		return
	}
	if logs, err := m.sessions.ByProject(m.Project, m.cfg.RecentSessions); err == nil {
		m.Recent = logs
	}
}

func (m *Model) recordSession(startedAt, stoppedAt time.Time, d time.Duration) {
	if m.sessions == nil || d <= 0 {
		return
	}
	s := &timelog.Session{
		Project:   m.Project,
		StartedAt: startedAt,
		StoppedAt: stoppedAt,
		Duration:  d,
	}
	if err := m.sessions.Create(s); err != nil {
		m.Warning = fmt.Sprintf("session log failed: %v", err)
		return
	}
	m.Recent = append([]timelog.Session{*s}, m.Recent...)
	if len(m.Recent) > m.cfg.RecentSessions {
		m.Recent = m.Recent[:m.cfg.RecentSessions]
	}
}

func (m *Model) View() string {
	if m.ConfirmReset {
		return m.confirmResetView()
	}
	if m.ConfirmDelete {
		return m.confirmDeleteView()
	}
	if m.ShowAddForm {
		return m.addFormView()
	}
	if m.ShowSwitcher {
		return m.switcherView()
	}
	if m.ShowLogView {
		return m.logView()
	}
	if m.Countdown {
		return m.countdownView()
	}
	if m.Project == "" {
		return m.emptyStateView()
	}
	return m.mainView()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ConfirmReset {
		return m.handleConfirmInput(msg)
	}
	if m.ConfirmDelete {
		return m.handleDeleteConfirmInput(msg)
	}
	if m.ShowAddForm {
		return m.handleFormInput(msg)
	}
	if m.ShowSwitcher {
		return m.handleSwitcherInput(msg)
	}
	if m.ShowLogView {
		return m.handleLogViewInput(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter", " ":
		m.Toggle()
	case "r":
		m.ConfirmReset = true
	case "+", "=":
		m.Adjust(time.Minute)
	case "-", "_":
		m.Adjust(-time.Minute)
	case "p", "tab":
		if !m.Countdown && len(m.Projects) > 0 {
			m.ShowSwitcher = true
			m.SelectedIndex = m.currentIndex()
		}
	case "n":
		if !m.Countdown {
			m.ShowAddForm = true
			m.NewProjectName = ""
		}
	case "l":
		if m.sessions != nil {
			if all, err := m.sessions.All(); err == nil {
				m.AllSessions = all
			} else {
				m.AllSessions = nil
			}
			m.ShowLogView = true
			m.LogViewScroll = 0
		}
	case "c":
		m.ToggleCountdown()
	}
	return m, nil
}

func (m *Model) currentIndex() int {
	for i, p := range m.Projects {
		if p == m.Project {
			return i
		}
	}
	return 0
}

func (m *Model) handleConfirmInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.ResetCurrent()
	}
	m.ConfirmReset = false
	return m, nil
}

func (m *Model) handleDeleteConfirmInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.DeleteProject(m.DeleteTarget)
		if len(m.Projects) == 0 {
			m.ShowSwitcher = false
		}
	}
	m.ConfirmDelete = false
	m.DeleteTarget = ""
	return m, nil
}

func (m *Model) handleSwitcherInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc", "p":
		m.ShowSwitcher = false
	case "up", "k":
		if m.SelectedIndex > 0 {
			m.SelectedIndex--
		}
	case "down", "j":
		if m.SelectedIndex < len(m.Projects)-1 {
			m.SelectedIndex++
		}
	case "enter":
		if m.SelectedIndex >= 0 && m.SelectedIndex < len(m.Projects) {
			m.SwitchTo(m.Projects[m.SelectedIndex])
		}
		m.ShowSwitcher = false
	case "d":
		if m.SelectedIndex >= 0 && m.SelectedIndex < len(m.Projects) {
			m.DeleteTarget = m.Projects[m.SelectedIndex]
			m.ConfirmDelete = true
		}
	}
	return m, nil
}

func (m *Model) handleLogViewInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc", "l":
		m.ShowLogView = false
		m.AllSessions = nil
	case "up", "k":
		if m.LogViewScroll > 0 {
			m.LogViewScroll--
		}
	case "down", "j":
		maxScroll := len(m.AllSessions) - 1
		if maxScroll < 0 {
			maxScroll = 0
		}
		if m.LogViewScroll < maxScroll {
			m.LogViewScroll++
		}
	}
	return m, nil
}

func (m *Model) handleFormInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		// Cancelling the very first prompt leaves the empty state showing.
		m.ShowAddForm = false
	case "enter":
		name := strings.TrimSpace(m.NewProjectName)
		if name != "" {
			m.AddProject(name)
			m.ShowAddForm = false
			m.NewProjectName = ""
		}
	case "backspace":
		if len(m.NewProjectName) > 0 {
			runes := []rune(m.NewProjectName)
			m.NewProjectName = string(runes[:len(runes)-1])
		}
	default:
		runes := []rune(msg.String())
		if len(runes) == 1 {
			m.NewProjectName += string(runes[0])
		}
	}
	return m, nil
}
