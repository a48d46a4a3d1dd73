package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/backnav/pkg/backpress"
	"github.com/entrhq/backnav/pkg/config"
)

// keyMap holds every binding the demo responds to. The navigation bindings
// come from the keys config section; the rest are fixed.
type keyMap struct {
	Back            key.Binding
	Escape          key.Binding
	GestureStart    key.Binding
	GestureProgress key.Binding
	GestureCommit   key.Binding
	GestureCancel   key.Binding

	Bubble     key.Binding
	Sheet      key.Binding
	Fullscreen key.Binding
	Find       key.Binding
	Navigate   key.Binding
	LockSheet  key.Binding
	Minimize   key.Binding
	SystemNav  key.Binding
	Edge       key.Binding
	Panel      key.Binding
	Copy       key.Binding
	Quit       key.Binding
}

func binding(keys []string, help string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), help))
}

func newKeyMap(section *config.KeysSection) keyMap {
	if section == nil {
		section = config.NewKeysSection()
	}
	return keyMap{
		Back:            binding(section.Keys(config.BindingBack), "back"),
		Escape:          binding(section.Keys(config.BindingEscape), "escape"),
		GestureStart:    binding(section.Keys(config.BindingGestureStart), "swipe start"),
		GestureProgress: binding(section.Keys(config.BindingGestureProgress), "swipe more"),
		GestureCommit:   binding(section.Keys(config.BindingGestureCommit), "release"),
		GestureCancel:   binding(section.Keys(config.BindingGestureCancel), "abort swipe"),

		Bubble:     binding([]string{"1"}, "text bubble"),
		Sheet:      binding([]string{"2"}, "sheet"),
		Fullscreen: binding([]string{"3"}, "fullscreen"),
		Find:       binding([]string{"4"}, "find"),
		Navigate:   binding([]string{"n"}, "new page"),
		LockSheet:  binding([]string{"l"}, "lock sheet"),
		Minimize:   binding([]string{"m"}, "toggle minimize"),
		SystemNav:  binding([]string{"s"}, "os back"),
		Edge:       binding([]string{"e"}, "swap edge"),
		Panel:      binding([]string{"tab"}, "panel"),
		Copy:       binding([]string{"c"}, "copy log"),
		Quit:       binding([]string{"q", "ctrl+c"}, "quit"),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Escape, k.GestureStart, k.GestureCommit, k.Panel, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Escape, k.GestureStart, k.GestureProgress, k.GestureCommit, k.GestureCancel},
		{k.Bubble, k.Sheet, k.Fullscreen, k.Find, k.Navigate},
		{k.LockSheet, k.Minimize, k.SystemNav, k.Edge, k.Panel, k.Copy, k.Quit},
	}
}

// escapeEvent converts msg into an escape key event when its base key is
// bound to escape. Modifiers reported by the terminal are carried over so
// the manager can drop modified presses.
func (k keyMap) escapeEvent(msg tea.KeyMsg) (backpress.KeyEvent, bool) {
	base := strings.TrimPrefix(msg.String(), "alt+")
	for _, bound := range k.Escape.Keys() {
		if bound == base {
			ev := backpress.KeyEvent{Key: backpress.KeyEscape}
			if msg.Alt {
				ev.Mods |= backpress.ModAlt
			}
			return ev, true
		}
	}
	return backpress.KeyEvent{}, false
}
