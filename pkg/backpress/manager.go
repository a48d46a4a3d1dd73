package backpress

import "fmt"

// slot is one occupied entry of the handler table. A slot is never reused:
// unregistering marks it dead so in-flight scans holding it skip it.
type slot struct {
	typ     Type
	handler Handler
	sub     *Subscription
	dead    bool
}

// Manager arbitrates back navigation between registered handlers.
type Manager struct {
	slots [typeCount]*slot

	fallback              func()
	recorder              Recorder
	logger                Logger
	lastResortAlwaysArmed bool
	debugAssertions       bool
	gestureNavigation     func() bool

	armed     *Supplier
	systemNav observerList[func()]

	// Gesture state. active is non-nil while a gesture is in flight.
	active      *slot
	phase       GesturePhase
	gestureEdge Edge

	destroyed bool
}

// NewManager creates an empty, disarmed manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		recorder: NopRecorder{},
		logger:   nopLogger{},
		armed:    NewSupplier(False),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register places h in the slot for t and starts observing its enabled state.
func (m *Manager) Register(h Handler, t Type) error {
	if m.destroyed {
		return ErrDestroyed
	}
	if !t.Valid() {
		return fmt.Errorf("register %d: %w", int(t), ErrInvalidType)
	}
	if h == nil {
		return fmt.Errorf("register %s: %w", t, ErrNilHandler)
	}
	if m.slots[t] != nil {
		return fmt.Errorf("register %s: %w", t, ErrAlreadyRegistered)
	}

	s := &slot{typ: t, handler: h}
	if enabled := h.EnabledState(); enabled != nil {
		s.sub = enabled.AddObserver(func(Tristate) {
			m.recomputeArmed()
		})
	}
	m.slots[t] = s
	m.logger.Debugf("registered back press handler %s (enabled=%s)", t, enabledOf(h))
	m.recomputeArmed()
	return nil
}

// Unregister removes the handler at t. If it is pinned by an in-flight
// gesture, it first receives OnBackCancelled.
func (m *Manager) Unregister(t Type) error {
	if m.destroyed {
		return ErrDestroyed
	}
	if !t.Valid() {
		return fmt.Errorf("unregister %d: %w", int(t), ErrInvalidType)
	}
	s := m.slots[t]
	if s == nil {
		return fmt.Errorf("unregister %s: %w", t, ErrNotRegistered)
	}

	if m.active == s {
		m.clearGesture()
		if gh, ok := s.handler.(GestureHandler); ok {
			gh.OnBackCancelled()
		}
	}

	// The handler may have re-registered or unregistered itself from
	// OnBackCancelled; only detach the slot we looked up.
	if m.slots[t] == s {
		m.slots[t] = nil
	}
	m.detach(s)
	m.logger.Debugf("unregistered back press handler %s", t)
	m.recomputeArmed()
	return nil
}

// IsRegistered reports whether a handler occupies t.
func (m *Manager) IsRegistered(t Type) bool {
	return t.Valid() && m.slots[t] != nil
}

// Handler returns the handler registered at t.
func (m *Manager) Handler(t Type) (Handler, bool) {
	if !t.Valid() || m.slots[t] == nil {
		return nil, false
	}
	return m.slots[t].handler, true
}

// IsArmed reports whether the platform should deliver back events at all.
func (m *Manager) IsArmed() bool {
	return m.armed.Get().IsTrue()
}

// ArmedState exposes the armed flag as an observable for the platform layer.
func (m *Manager) ArmedState() *Supplier {
	return m.armed
}

// Destroy detaches every handler subscription and clears gesture state
// without cancelling the pinned handler. Later calls are no-ops.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.clearGesture()
	for i, s := range m.slots {
		if s != nil {
			m.detach(s)
			m.slots[i] = nil
		}
	}
	m.systemNav.clear()
	m.armed.Set(False)
	m.logger.Debugf("back press manager destroyed")
}

// Destroyed reports whether Destroy has been called.
func (m *Manager) Destroyed() bool {
	return m.destroyed
}

func (m *Manager) detach(s *slot) {
	s.dead = true
	s.sub.Remove()
	s.sub = nil
}

func (m *Manager) recomputeArmed() {
	if m.destroyed {
		return
	}
	armed := false
	for _, s := range m.slots {
		if s == nil {
			continue
		}
		if enabledOf(s.handler).IsTrue() {
			armed = true
			break
		}
		if m.lastResortAlwaysArmed && s.typ == TypeMinimizeAppAndCloseTab {
			armed = true
			break
		}
	}
	m.armed.SetBool(armed)
}

// snapshot returns the occupied slots in priority order. Scans iterate the
// snapshot and re-check liveness so handlers may unregister mid-scan.
func (m *Manager) snapshot() []*slot {
	out := make([]*slot, 0, len(m.slots))
	for _, s := range m.slots {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// candidate reports whether s may be offered an event right now.
func candidate(s *slot) bool {
	return !s.dead && enabledOf(s.handler).IsTrue()
}

// invariant reports a broken invariant. In debug mode it panics.
func (m *Manager) invariant(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	m.logger.Warnf("back press invariant violated: %s", msg)
	if m.debugAssertions {
		panic("backpress: " + msg)
	}
}
