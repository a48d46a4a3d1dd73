package backpress

// Option configures a Manager.
type Option func(*Manager)

// WithFallback sets the action run when no handler consumes a discrete back
// press. It is never run for escape.
func WithFallback(fn func()) Option {
	return func(m *Manager) {
		m.fallback = fn
	}
}

// WithRecorder sets the instrumentation sink.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) {
		if r != nil {
			m.recorder = r
		}
	}
}

// WithLogger sets the logger used for debug output and invariant reports.
func WithLogger(l Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithLastResortAlwaysArmed keeps the manager armed whenever a handler is
// registered at TypeMinimizeAppAndCloseTab, whatever its enabled state.
func WithLastResortAlwaysArmed(enabled bool) Option {
	return func(m *Manager) {
		m.lastResortAlwaysArmed = enabled
	}
}

// WithDebugAssertions makes invariant violations panic instead of only being
// logged.
func WithDebugAssertions(enabled bool) Option {
	return func(m *Manager) {
		m.debugAssertions = enabled
	}
}

// WithGestureNavigation sets the query telling whether a swipe navigation mode
// is active. When it reports true, committed gestures record their edge.
func WithGestureNavigation(fn func() bool) Option {
	return func(m *Manager) {
		m.gestureNavigation = fn
	}
}
