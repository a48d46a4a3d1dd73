package backpress

// HandleEscape arbitrates an escape key-down. It returns True when a handler
// consumed the key and Unknown otherwise; it never returns False. Repeats and
// presses with any modifier held are ignored. The fallback action is never
// run here.
func (m *Manager) HandleEscape(ev KeyEvent) Tristate {
	if m.destroyed || !ev.isCleanEscape() {
		return Unknown
	}

	for _, s := range m.snapshot() {
		if !candidate(s) {
			continue
		}
		eh, toBack := routesEscapeToBack(s.handler)
		if toBack {
			switch res := s.handler.HandleBackPress(); res {
			case ResultSuccess:
				m.logger.Debugf("escape handled by %s back action", s.typ)
				return True
			case ResultFailure:
				m.logger.Debugf("escape back action of %s failed, trying next", s.typ)
				continue
			default:
				// The back action declined without saying why; the
				// outcome is ambiguous so stop here.
				m.logger.Debugf("escape back action of %s returned %s, stopping", s.typ, res)
				return Unknown
			}
		}

		if eh.HandleEscPress().IsTrue() {
			m.logger.Debugf("escape handled by %s", s.typ)
			return True
		}
	}
	return Unknown
}
