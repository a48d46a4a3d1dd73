package backpress

import "strings"

// Key identifies a physical key. Only KeyEscape is arbitrated.
type Key int

const (
	// KeyOther is any key the manager does not arbitrate.
	KeyOther Key = iota
	// KeyEscape is the escape key.
	KeyEscape
)

// Modifier is a bitset of held modifier keys.
type Modifier uint8

const (
	// ModNone means no modifier is held.
	ModNone Modifier = 0
	// ModShift is the shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl is the control key.
	ModCtrl
	// ModAlt is the alt/option key.
	ModAlt
	// ModMeta is the meta/command key.
	ModMeta
)

// Has reports whether m includes mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns a "+"-joined list such as "Shift+Alt", or "None".
func (m Modifier) String() string {
	if m == ModNone {
		return "None"
	}
	var parts []string
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// ParseModifier accepts names like "shift", "ctrl", "alt", "meta".
func ParseModifier(name string) (Modifier, bool) {
	switch strings.ToLower(name) {
	case "shift":
		return ModShift, true
	case "ctrl", "control":
		return ModCtrl, true
	case "alt", "option":
		return ModAlt, true
	case "meta", "cmd", "super":
		return ModMeta, true
	}
	return ModNone, false
}

// KeyEvent is a key-down event.
type KeyEvent struct {
	Key    Key
	Repeat int // number of auto-repeats; 0 for the first press
	Mods   Modifier
}

// isCleanEscape reports whether ev is a single unmodified escape press.
func (ev KeyEvent) isCleanEscape() bool {
	return ev.Key == KeyEscape && ev.Repeat == 0 && ev.Mods == ModNone
}
