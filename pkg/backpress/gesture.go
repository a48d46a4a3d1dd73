package backpress

// OnBackStarted begins a predictive gesture. The first enabled handler in
// priority order is pinned and receives this and every later phase.
func (m *Manager) OnBackStarted(ev GestureEvent) {
	if m.destroyed {
		return
	}
	if prev := m.active; prev != nil {
		m.invariant("gesture started while %s is still pinned", prev.typ)
		m.clearGesture()
		if gh, ok := prev.handler.(GestureHandler); ok {
			gh.OnBackCancelled()
		}
	}

	for _, s := range m.snapshot() {
		if !candidate(s) {
			continue
		}
		m.active = s
		m.phase = PhaseStarted
		m.gestureEdge = ev.Edge
		m.logger.Debugf("gesture started from %s edge, pinned %s", ev.Edge, s.typ)
		if gh, ok := s.handler.(GestureHandler); ok {
			gh.OnBackStarted(ev)
		}
		return
	}
	m.invariant("gesture started with no enabled handler")
}

// OnBackProgressed forwards gesture progress to the pinned handler. Progress
// without a pinned handler is ignored.
func (m *Manager) OnBackProgressed(ev GestureEvent) {
	s := m.active
	if s == nil {
		return
	}
	m.phase = PhaseProgressing
	if gh, ok := s.handler.(GestureHandler); ok {
		gh.OnBackProgressed(ev)
	}
}

// OnBackCancelled forwards the cancel to the pinned handler and returns to
// idle. A cancel without a pinned handler is ignored.
func (m *Manager) OnBackCancelled() {
	s := m.active
	if s == nil {
		return
	}
	m.clearGesture()
	m.logger.Debugf("gesture cancelled, unpinned %s", s.typ)
	if gh, ok := s.handler.(GestureHandler); ok {
		gh.OnBackCancelled()
	}
}

// OnBackInvoked commits the gesture as a back press. A still enabled pinned
// handler is called directly; if it has been disabled, or no gesture was
// started, the discrete scan runs instead. It reports whether the event was
// consumed.
func (m *Manager) OnBackInvoked() bool {
	if m.destroyed {
		return false
	}
	s, edge := m.active, m.gestureEdge
	m.clearGesture()

	if s == nil || !candidate(s) {
		if s != nil {
			m.logger.Debugf("pinned handler %s disabled mid-gesture, falling back to scan", s.typ)
		}
		return m.dispatch(nil, nil)
	}

	if m.gestureNavigation != nil && m.gestureNavigation() {
		m.recorder.RecordEdge(s.typ, edge)
	}
	switch res := s.handler.HandleBackPress(); res {
	case ResultSuccess:
		m.logger.Debugf("gesture committed by %s", s.typ)
		m.recorder.RecordSuccess(s.typ)
		return true
	case ResultFailure:
		m.logger.Debugf("pinned handler %s failed on commit, falling back to scan", s.typ)
		m.recorder.RecordFailure(s.typ)
		return m.dispatch(s, []Type{s.typ})
	default:
		m.logger.Debugf("pinned handler %s returned %s on commit, falling back to scan", s.typ, res)
		return m.dispatch(s, nil)
	}
}

// ActiveType returns the pinned handler type while a gesture is in flight.
func (m *Manager) ActiveType() (Type, bool) {
	if m.active == nil {
		return 0, false
	}
	return m.active.typ, true
}

// GesturePhase returns the current gesture phase.
func (m *Manager) GesturePhase() GesturePhase {
	return m.phase
}

func (m *Manager) clearGesture() {
	m.active = nil
	m.phase = PhaseIdle
}
