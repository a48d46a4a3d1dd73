package backpress

// HandleBackPress dispatches a discrete back press. Handlers are tried in
// priority order; the first Success stops the scan. Failure is recorded and
// the scan continues. If nobody succeeds the fallback runs. It reports
// whether a handler consumed the event.
func (m *Manager) HandleBackPress() bool {
	if m.destroyed {
		return false
	}
	return m.dispatch(nil, nil)
}

// dispatch runs the discrete scan, skipping exclude if set. failed carries
// failures recorded before the scan began.
func (m *Manager) dispatch(exclude *slot, failed []Type) bool {
	for _, s := range m.snapshot() {
		if s == exclude || !candidate(s) {
			continue
		}
		switch res := s.handler.HandleBackPress(); res {
		case ResultSuccess:
			m.logger.Debugf("back press handled by %s", s.typ)
			m.recorder.RecordSuccess(s.typ)
			return true
		case ResultFailure:
			m.logger.Debugf("back press handler %s failed, trying next", s.typ)
			m.recorder.RecordFailure(s.typ)
			failed = append(failed, s.typ)
		default:
			m.logger.Debugf("back press handler %s returned %s", s.typ, res)
		}
	}

	m.logger.Debugf("no handler consumed back press, running fallback")
	if m.fallback != nil {
		m.fallback()
	}
	if len(failed) > 0 {
		m.invariant("handlers %v failed and no lower priority handler consumed back press", failed)
	}
	return false
}
