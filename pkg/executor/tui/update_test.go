package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/backnav/pkg/backpress"
	"github.com/entrhq/backnav/pkg/config"
	"github.com/entrhq/backnav/pkg/metrics"
)

// press builds the KeyMsg bubbletea would deliver for name.
func press(name string) tea.KeyMsg {
	switch name {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "alt+esc":
		return tea.KeyMsg{Type: tea.KeyEsc, Alt: true}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func send(m *model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(press(k))
	}
	return cmd
}

func recordsOf(m *model) []string {
	var out []string
	for _, r := range m.tally.Records() {
		out = append(out, r.String())
	}
	return out
}

func TestUpdate_BackClosesInPriorityOrder(t *testing.T) {
	m := newModel(Options{})
	send(m, "2", "1")
	require.True(t, m.browser.bubble.open())
	require.True(t, m.browser.sheet.open())

	send(m, "backspace")
	assert.False(t, m.browser.bubble.open(), "text bubble outranks the sheet")
	assert.True(t, m.browser.sheet.open())

	send(m, "b")
	assert.False(t, m.browser.sheet.open())
	assert.Equal(t, []string{"success:text_bubble", "success:bottom_sheet"}, recordsOf(m))
}

func TestUpdate_LockedSheetFailsThrough(t *testing.T) {
	m := newModel(Options{})
	send(m, "n", "2", "l")
	require.Equal(t, "page 2", m.browser.currentPage())

	send(m, "b")
	assert.True(t, m.browser.sheet.open(), "locked sheet stays open")
	assert.Equal(t, "start page", m.browser.currentPage())
	assert.Equal(t, []string{"failure:bottom_sheet", "success:tab_history"}, recordsOf(m))
	assert.False(t, m.browser.tabs.open(), "history is back at its root")
}

func TestUpdate_FallbackQuits(t *testing.T) {
	m := newModel(Options{})
	assert.False(t, m.manager.IsArmed())

	cmd := send(m, "b")
	assert.True(t, m.quitting)
	assert.Equal(t, "fallback", m.quitReason)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_MinimizeQuits(t *testing.T) {
	m := newModel(Options{})
	send(m, "m")
	assert.Equal(t, backpress.True, m.browser.minimize.enabled.Get())
	assert.True(t, m.manager.IsArmed())

	send(m, "b")
	assert.Equal(t, "minimized", m.quitReason)
	assert.Equal(t, []string{"success:minimize_app_and_close_tab"}, recordsOf(m))
}

func TestUpdate_LastResortAlwaysArmed(t *testing.T) {
	arbiter := config.NewArbiterSection()
	arbiter.SetLastResortAlwaysArmed(true)
	m := newModel(Options{Arbiter: arbiter})
	assert.True(t, m.manager.IsArmed(), "unknown minimize still arms the manager")
}

func TestUpdate_Escape(t *testing.T) {
	m := newModel(Options{})
	send(m, "2", "4", "l")

	send(m, "esc")
	assert.True(t, m.browser.sheet.open(), "locked sheet declines escape")
	assert.False(t, m.browser.find.open(), "find toolbar consumes escape")

	send(m, "1", "alt+esc")
	assert.True(t, m.browser.bubble.open(), "modified escape is dropped")

	send(m, "esc")
	assert.False(t, m.browser.bubble.open(), "bubble closes through its back action")
	assert.Empty(t, recordsOf(m), "escape records nothing")
}

func TestUpdate_PredictiveGesture(t *testing.T) {
	arbiter := config.NewArbiterSection()
	arbiter.SetGestureNavigation(true)
	m := newModel(Options{Arbiter: arbiter})
	send(m, "2", "e", "[")

	active, ok := m.manager.ActiveType()
	require.True(t, ok)
	assert.Equal(t, backpress.TypeBottomSheet, active)
	assert.True(t, m.browser.sheet.previewing)
	assert.Equal(t, backpress.EdgeRight, m.browser.sheet.edge)

	send(m, "]", "]")
	assert.InDelta(t, 0.5, m.browser.sheet.preview, 1e-9)
	assert.Equal(t, backpress.PhaseProgressing, m.manager.GesturePhase())

	send(m, "enter")
	assert.False(t, m.browser.sheet.open())
	assert.Equal(t, backpress.PhaseIdle, m.manager.GesturePhase())
	assert.Equal(t, []string{"edge:bottom_sheet:right", "success:bottom_sheet"}, recordsOf(m))
}

func TestUpdate_GestureCancel(t *testing.T) {
	m := newModel(Options{})
	send(m, "2", "[", "]", "x")

	assert.True(t, m.browser.sheet.open())
	assert.False(t, m.browser.sheet.previewing)
	_, ok := m.manager.ActiveType()
	assert.False(t, ok)
	assert.Empty(t, recordsOf(m))
}

func TestUpdate_LegacyCallback(t *testing.T) {
	arbiter := config.NewArbiterSection()
	arbiter.SetPredictiveBack(false)
	m := newModel(Options{Arbiter: arbiter})
	send(m, "1", "[")

	_, ok := m.manager.ActiveType()
	assert.False(t, ok, "legacy callback does not pin")
	assert.False(t, m.browser.bubble.previewing)

	send(m, "enter")
	assert.False(t, m.browser.bubble.open())
}

func TestUpdate_SystemNavigationDismissesSheet(t *testing.T) {
	m := newModel(Options{})
	send(m, "2", "s")
	assert.False(t, m.browser.sheet.open())
}

func TestUpdate_CustomBindings(t *testing.T) {
	keys := config.NewKeysSection()
	keys.SetKeys(config.BindingBack, "z")
	m := newModel(Options{Keys: keys})
	send(m, "1", "b")
	assert.True(t, m.browser.bubble.open(), "b is no longer bound")

	send(m, "z")
	assert.False(t, m.browser.bubble.open())
}

func TestUpdate_ExtraRecorder(t *testing.T) {
	extra := metrics.NewTally()
	m := newModel(Options{Recorder: extra})
	send(m, "1", "b")
	assert.Equal(t, 1, extra.Successes(backpress.TypeTextBubble))
}

func TestUpdate_CopyLog(t *testing.T) {
	orig := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = orig })

	var copied string
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}

	m := newModel(Options{})
	send(m, "1", "c")
	assert.Contains(t, copied, "text bubble opened")
	assert.Equal(t, "copied event log to clipboard", m.status)

	clipboardWriteAll = func(string) error { return errors.New("no display") }
	send(m, "c")
	assert.Contains(t, m.status, "no display")
}

func TestView_Panels(t *testing.T) {
	m := newModel(Options{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	send(m, "2")

	view := m.View()
	assert.Contains(t, view, "backnav")
	assert.Contains(t, view, "registry")
	assert.Contains(t, view, "bottom sheet")

	send(m, "tab")
	assert.Equal(t, panelRecords, m.panel)
	assert.Contains(t, m.View(), "successes")

	send(m, "tab")
	assert.Equal(t, panelConfig, m.panel)
	assert.NotEmpty(t, m.View())

	send(m, "tab")
	assert.Equal(t, panelRegistry, m.panel)
}

func TestConfigYAML(t *testing.T) {
	out := configYAML(config.NewArbiterSection(), nil)
	assert.Contains(t, out, "arbiter:")
	assert.Contains(t, out, "predictive_back: true")
	assert.Contains(t, out, "keys:")
	assert.NotEmpty(t, highlightYAML(out))
}
