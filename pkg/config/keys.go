package config

import (
	"fmt"
	"strings"
	"sync"
)

// KeysSectionID is the storage key of the key binding section.
const KeysSectionID = "keys"

// Binding names.
const (
	BindingBack            = "back"
	BindingEscape          = "escape"
	BindingGestureStart    = "gesture_start"
	BindingGestureProgress = "gesture_progress"
	BindingGestureCommit   = "gesture_commit"
	BindingGestureCancel   = "gesture_cancel"
)

var bindingOrder = []string{
	BindingBack,
	BindingEscape,
	BindingGestureStart,
	BindingGestureProgress,
	BindingGestureCommit,
	BindingGestureCancel,
}

func defaultBindings() map[string][]string {
	return map[string][]string{
		BindingBack:            {"backspace", "b"},
		BindingEscape:          {"esc"},
		BindingGestureStart:    {"["},
		BindingGestureProgress: {"]"},
		BindingGestureCommit:   {"enter"},
		BindingGestureCancel:   {"x"},
	}
}

// KeysSection maps the demo's input actions to key strings as reported by
// bubbletea's KeyMsg.String.
type KeysSection struct {
	bindings map[string][]string
	mu       sync.RWMutex
}

// NewKeysSection creates a key section with the default bindings.
func NewKeysSection() *KeysSection {
	return &KeysSection{bindings: defaultBindings()}
}

func (s *KeysSection) ID() string          { return KeysSectionID }
func (s *KeysSection) Title() string       { return "Key Bindings" }
func (s *KeysSection) Description() string { return "Keys that drive back presses and gestures." }

// Data returns the current configuration data.
func (s *KeysSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := make(map[string]interface{}, len(s.bindings))
	for _, name := range bindingOrder {
		keys := make([]interface{}, len(s.bindings[name]))
		for i, k := range s.bindings[name] {
			keys[i] = k
		}
		data[name] = keys
	}
	return data
}

// SetData updates bindings from data. A binding may be a single string or
// a list of strings. Unknown bindings are ignored.
func (s *KeysSection) SetData(data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range bindingOrder {
		raw, ok := data[name]
		if !ok {
			continue
		}
		keys, err := toKeyList(raw)
		if err != nil {
			return fmt.Errorf("invalid binding %s: %w", name, err)
		}
		s.bindings[name] = keys
	}
	return nil
}

func toKeyList(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return append([]string(nil), v...), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string key, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", raw)
	}
}

// Validate rejects empty bindings and keys bound to more than one action.
func (s *KeysSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner := make(map[string]string)
	for _, name := range bindingOrder {
		keys := s.bindings[name]
		if len(keys) == 0 {
			return fmt.Errorf("binding %s has no keys", name)
		}
		for _, k := range keys {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("binding %s has an empty key", name)
			}
			if prev, dup := owner[k]; dup {
				return fmt.Errorf("key %q bound to both %s and %s", k, prev, name)
			}
			owner[k] = name
		}
	}
	return nil
}

// Reset resets the configuration to defaults.
func (s *KeysSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings = defaultBindings()
}

// Keys returns the keys bound to name.
func (s *KeysSection) Keys(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.bindings[name]...)
}

// SetKeys replaces the keys bound to name.
func (s *KeysSection) SetKeys(name string, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[name] = append([]string(nil), keys...)
}
