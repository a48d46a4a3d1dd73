package headless

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/backnav/pkg/backpress"
)

// Action names a step operation.
type Action string

const (
	ActionBack             Action = "back"
	ActionGestureStart     Action = "gesture_start"
	ActionGestureProgress  Action = "gesture_progress"
	ActionGestureCancel    Action = "gesture_cancel"
	ActionGestureCommit    Action = "gesture_commit"
	ActionEscape           Action = "escape"
	ActionSetEnabled       Action = "set_enabled"
	ActionRegister         Action = "register"
	ActionUnregister       Action = "unregister"
	ActionSystemNavigation Action = "system_navigation"
	ActionDestroy          Action = "destroy"
)

// reportsHandled lists the actions that produce a handled outcome.
var reportsHandled = map[Action]bool{
	ActionBack:          true,
	ActionGestureCommit: true,
	ActionEscape:        true,
}

var knownActions = map[Action]bool{
	ActionBack:             true,
	ActionGestureStart:     true,
	ActionGestureProgress:  true,
	ActionGestureCancel:    true,
	ActionGestureCommit:    true,
	ActionEscape:           true,
	ActionSetEnabled:       true,
	ActionRegister:         true,
	ActionUnregister:       true,
	ActionSystemNavigation: true,
	ActionDestroy:          true,
}

// Script is a replayable back navigation scenario.
type Script struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Arbiter     map[string]interface{} `yaml:"arbiter"`
	Handlers    []HandlerSpec          `yaml:"handlers"`
	Steps       []Step                 `yaml:"steps"`

	// Timeout bounds the whole run; zero means no limit
	Timeout time.Duration `yaml:"timeout"`
}

// HandlerSpec declares one scripted handler.
type HandlerSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Enabled is true, false or null; omitted means true
	Enabled yaml.Node `yaml:"enabled"`

	// Results is the queue of back press outcomes. The last entry repeats;
	// an empty queue always succeeds.
	Results []string `yaml:"results"`

	Escape *EscapeSpec `yaml:"escape"`

	// Gesture makes the handler observe gesture phases
	Gesture bool `yaml:"gesture"`

	// DismissOnNavigation disables the handler when system navigation is
	// observed
	DismissOnNavigation bool `yaml:"dismiss_on_navigation"`

	// Registered controls whether the handler is registered before the
	// first step; omitted means true
	Registered *bool `yaml:"registered"`
}

// EscapeSpec declares a handler's escape behaviour.
type EscapeSpec struct {
	InvokeBackAction bool `yaml:"invoke_back_action"`

	// Results is the queue of escape outcomes (true, false or null). The
	// last entry repeats; an empty queue answers true.
	Results []yaml.Node `yaml:"results"`
}

// Step is one action applied to the manager.
type Step struct {
	Name   string `yaml:"name"`
	Action Action `yaml:"action"`

	Edge     string  `yaml:"edge"`
	Progress float64 `yaml:"progress"`

	Mods []string `yaml:"mods"`

	// Repeat is the key auto-repeat count; 0 for the first press
	Repeat int `yaml:"repeat"`

	Handler string    `yaml:"handler"`
	Value   yaml.Node `yaml:"value"`

	Expect Expect `yaml:"expect"`
}

// Expect holds the optional assertions checked after a step.
type Expect struct {
	Handled  *bool `yaml:"handled"`
	Fallback *bool `yaml:"fallback"`
	Armed    *bool `yaml:"armed"`

	// Calls is the exact ordered list of handler calls made by the step
	Calls []string `yaml:"calls"`

	// Records is the exact ordered list of instrumentation records, in
	// the "kind:type" form
	Records []string `yaml:"records"`

	// HandledBy is a glob matched against the consuming handler's name
	HandledBy string `yaml:"handled_by"`

	// Error is a glob matched against the step error; when empty the step
	// must not fail
	Error string `yaml:"error"`
}

// Errors returned while loading scripts.
var (
	ErrEmptyScript   = errors.New("script has no steps")
	ErrUnknownAction = errors.New("unknown action")
)

// LoadScript reads and validates a script file.
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(raw)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(raw []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks handler declarations and step parameters.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScript
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	names := make(map[string]bool, len(s.Handlers))
	for i, h := range s.Handlers {
		if h.Name == "" {
			return fmt.Errorf("handler %d: name is required", i)
		}
		if names[h.Name] {
			return fmt.Errorf("handler %s: duplicate name", h.Name)
		}
		names[h.Name] = true

		if _, err := backpress.ParseType(h.Type); err != nil {
			return fmt.Errorf("handler %s: %w", h.Name, err)
		}
		if _, err := nodeTristate(h.Enabled, backpress.True); err != nil {
			return fmt.Errorf("handler %s: enabled: %w", h.Name, err)
		}
		for _, r := range h.Results {
			if _, err := backpress.ParseResult(r); err != nil {
				return fmt.Errorf("handler %s: %w", h.Name, err)
			}
		}
		if h.Escape != nil {
			for _, n := range h.Escape.Results {
				if _, err := nodeTristate(n, backpress.True); err != nil {
					return fmt.Errorf("handler %s: escape result: %w", h.Name, err)
				}
			}
		}
	}

	for i, st := range s.Steps {
		if err := st.validate(names); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.label(), err)
		}
	}
	return nil
}

func (st Step) validate(handlers map[string]bool) error {
	if !knownActions[st.Action] {
		return fmt.Errorf("%w %q", ErrUnknownAction, st.Action)
	}

	switch st.Action {
	case ActionGestureStart, ActionGestureProgress:
		if st.Edge != "" {
			if _, err := backpress.ParseEdge(st.Edge); err != nil {
				return err
			}
		}
		if st.Progress < 0 || st.Progress > 1 {
			return fmt.Errorf("progress %.2f out of range [0,1]", st.Progress)
		}
	case ActionEscape:
		if st.Repeat < 0 {
			return fmt.Errorf("repeat cannot be negative")
		}
		for _, mod := range st.Mods {
			if _, ok := backpress.ParseModifier(mod); !ok {
				return fmt.Errorf("unknown modifier %q", mod)
			}
		}
	case ActionSetEnabled:
		if _, err := nodeTristate(st.Value, backpress.Unknown); err != nil {
			return fmt.Errorf("value: %w", err)
		}
		fallthrough
	case ActionRegister, ActionUnregister:
		if !handlers[st.Handler] {
			return fmt.Errorf("unknown handler %q", st.Handler)
		}
	}

	if st.Expect.Handled != nil && !reportsHandled[st.Action] {
		return fmt.Errorf("action %s has no handled outcome", st.Action)
	}
	for _, pattern := range []string{st.Expect.HandledBy, st.Expect.Error} {
		if pattern == "" {
			continue
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (st Step) label() string {
	if st.Name != "" {
		return st.Name
	}
	return string(st.Action)
}

// nodeTristate decodes a YAML scalar into a Tristate. An absent node yields
// def; null, "~" and "unknown" yield Unknown.
func nodeTristate(n yaml.Node, def backpress.Tristate) (backpress.Tristate, error) {
	if n.Kind == 0 {
		return def, nil
	}
	if n.Kind != yaml.ScalarNode {
		return backpress.Unknown, fmt.Errorf("expected scalar, got %s", n.ShortTag())
	}
	switch n.ShortTag() {
	case "!!null":
		return backpress.Unknown, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return backpress.Unknown, err
		}
		return backpress.FromBool(b), nil
	}
	if n.Value == "unknown" {
		return backpress.Unknown, nil
	}
	return backpress.Unknown, fmt.Errorf("expected true, false or null, got %q", n.Value)
}
