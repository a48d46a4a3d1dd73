package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/backnav/pkg/backpress"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

const swipeStep = 0.25

func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles all state updates for the TUI model.
//
// Uses a pointer receiver so the manager's callbacks, which capture the
// model, mutate the same value Bubble Tea renders.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
	}

	if m.quitting {
		return m, tea.Quit
	}
	return m, cmd
}

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.progress.Width = max(10, msg.Width/3)

	logHeight := max(3, msg.Height/3)
	if !m.ready {
		m.ready = true
	}
	m.viewport.Width = msg.Width - 2
	m.viewport.Height = logHeight
	m.viewport.GotoBottom()
}

//nolint:gocyclo
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""

	if ev, ok := m.keys.escapeEvent(msg); ok {
		m.handleEscape(ev, msg.String())
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit("quit")

	case key.Matches(msg, m.keys.Back):
		m.handleBack()

	case key.Matches(msg, m.keys.GestureStart):
		m.swipeActive, m.swipe = true, 0
		m.callback.Started(backpress.GestureEvent{Edge: m.edge, Progress: m.swipe})
		m.logGesturePin()
	case key.Matches(msg, m.keys.GestureProgress):
		if m.swipeActive {
			m.swipe = min(1, m.swipe+swipeStep)
			m.callback.Progressed(backpress.GestureEvent{Edge: m.edge, Progress: m.swipe})
		}
	case key.Matches(msg, m.keys.GestureCommit):
		m.handleCommit()
	case key.Matches(msg, m.keys.GestureCancel):
		m.swipeActive, m.swipe = false, 0
		m.callback.Cancelled()

	case key.Matches(msg, m.keys.Bubble):
		m.openFeature(m.browser.bubble)
	case key.Matches(msg, m.keys.Sheet):
		m.openFeature(m.browser.sheet)
	case key.Matches(msg, m.keys.Fullscreen):
		m.openFeature(m.browser.fullscreen)
	case key.Matches(msg, m.keys.Find):
		m.openFeature(m.browser.find)
	case key.Matches(msg, m.keys.Navigate):
		m.logEvent("navigated to %s", m.browser.navigate())
	case key.Matches(msg, m.keys.LockSheet):
		m.browser.sheetLock = !m.browser.sheetLock
		m.logEvent("bottom sheet lock: %t", m.browser.sheetLock)
	case key.Matches(msg, m.keys.Minimize):
		m.logEvent("minimize enabled: %s", m.browser.toggleMinimize())
	case key.Matches(msg, m.keys.SystemNav):
		m.logEvent("system navigation")
		m.manager.NotifySystemNavigation()
	case key.Matches(msg, m.keys.Edge):
		if m.edge == backpress.EdgeLeft {
			m.edge = backpress.EdgeRight
		} else {
			m.edge = backpress.EdgeLeft
		}
		m.status = "swipe edge: " + m.edge.String()

	case key.Matches(msg, m.keys.Panel):
		m.panel = (m.panel + 1) % panelCount
	case key.Matches(msg, m.keys.Copy):
		m.copyLog()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *model) openFeature(f *feature) {
	if f.open() {
		m.status = f.name + " already open"
		return
	}
	f.setOpen(true)
	m.logEvent("%s opened", f.name)
}

func (m *model) handleBack() {
	before := m.tally.Len()
	handled := m.manager.HandleBackPress()
	m.logDispatch("back", handled, before)
}

func (m *model) handleCommit() {
	before := m.tally.Len()
	m.swipeActive, m.swipe = false, 0
	handled := m.callback.Invoked()
	m.logDispatch("release", handled, before)
}

func (m *model) handleEscape(ev backpress.KeyEvent, name string) {
	res := m.manager.HandleEscape(ev)
	if !res.IsTrue() {
		m.logEvent("%s: not consumed", name)
		return
	}
	m.logEvent("%s: consumed", name)
}

func (m *model) logDispatch(what string, handled bool, before int) {
	var recs []string
	for _, r := range m.tally.Since(before) {
		recs = append(recs, r.String())
	}
	if len(recs) == 0 {
		m.logEvent("%s: handled=%t", what, handled)
		return
	}
	m.logEvent("%s: handled=%t [%s]", what, handled, strings.Join(recs, " "))
}

func (m *model) logGesturePin() {
	if t, ok := m.manager.ActiveType(); ok {
		m.logEvent("swipe pinned %s", t)
		return
	}
	if m.callback.Predictive() {
		m.logEvent("swipe started with nothing to pin")
	}
}

func (m *model) copyLog() {
	if err := clipboardWriteAll(strings.Join(m.events, "\n")); err != nil {
		m.status = "failed to copy log: " + err.Error()
		return
	}
	m.status = "copied event log to clipboard"
}
