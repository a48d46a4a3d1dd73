package config

import (
	"fmt"
	"sync"
)

// ArbiterSectionID is the storage key of the arbiter section.
const ArbiterSectionID = "arbiter"

const (
	keyLastResortAlwaysArmed = "last_resort_always_armed"
	keyDebugAssertions       = "debug_assertions"
	keyPredictiveBack        = "predictive_back"
	keyGestureNavigation     = "gesture_navigation"
)

// ArbiterSection holds the back press manager policy knobs.
type ArbiterSection struct {
	lastResortAlwaysArmed bool
	debugAssertions       bool
	predictiveBack        bool
	gestureNavigation     bool
	mu                    sync.RWMutex
}

// NewArbiterSection creates an arbiter section with defaults: predictive
// back on, everything else off.
func NewArbiterSection() *ArbiterSection {
	return &ArbiterSection{predictiveBack: true}
}

func (s *ArbiterSection) ID() string    { return ArbiterSectionID }
func (s *ArbiterSection) Title() string { return "Back Press Arbiter" }

func (s *ArbiterSection) Description() string {
	return "Policy for routing back presses, gestures and escape to registered handlers."
}

// Data returns the current configuration data.
func (s *ArbiterSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		keyLastResortAlwaysArmed: s.lastResortAlwaysArmed,
		keyDebugAssertions:       s.debugAssertions,
		keyPredictiveBack:        s.predictiveBack,
		keyGestureNavigation:     s.gestureNavigation,
	}
}

// SetData updates the configuration from data. Unknown keys are ignored.
func (s *ArbiterSection) SetData(data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]*bool{
		keyLastResortAlwaysArmed: &s.lastResortAlwaysArmed,
		keyDebugAssertions:       &s.debugAssertions,
		keyPredictiveBack:        &s.predictiveBack,
		keyGestureNavigation:     &s.gestureNavigation,
	}

	for key, dst := range fields {
		raw, ok := data[key]
		if !ok {
			continue
		}
		v, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("invalid type for %s: expected bool, got %T", key, raw)
		}
		*dst = v
	}
	return nil
}

// Validate validates the current configuration. Every combination of flags
// is accepted.
func (s *ArbiterSection) Validate() error {
	return nil
}

// Reset resets the configuration to defaults.
func (s *ArbiterSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastResortAlwaysArmed = false
	s.debugAssertions = false
	s.predictiveBack = true
	s.gestureNavigation = false
}

// LastResortAlwaysArmed reports whether a registered last-resort handler
// keeps the manager armed regardless of its enabled state.
func (s *ArbiterSection) LastResortAlwaysArmed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResortAlwaysArmed
}

// SetLastResortAlwaysArmed sets the last-resort policy.
func (s *ArbiterSection) SetLastResortAlwaysArmed(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResortAlwaysArmed = v
}

// DebugAssertions reports whether invariant violations panic.
func (s *ArbiterSection) DebugAssertions() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debugAssertions
}

// SetDebugAssertions sets the debug assertion flag.
func (s *ArbiterSection) SetDebugAssertions(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugAssertions = v
}

// PredictiveBack reports whether the predictive gesture callback is used.
func (s *ArbiterSection) PredictiveBack() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predictiveBack
}

// SetPredictiveBack sets the predictive back flag.
func (s *ArbiterSection) SetPredictiveBack(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictiveBack = v
}

// GestureNavigation reports whether swipe navigation mode is active.
func (s *ArbiterSection) GestureNavigation() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gestureNavigation
}

// SetGestureNavigation sets the swipe navigation flag.
func (s *ArbiterSection) SetGestureNavigation(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gestureNavigation = v
}
