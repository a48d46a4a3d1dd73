package backpress

// Subscription is the handle returned when attaching an observer. Remove
// detaches it.
type Subscription struct {
	detach func()
}

// Remove detaches the observer. Safe to call more than once.
func (sub *Subscription) Remove() {
	if sub == nil || sub.detach == nil {
		return
	}
	detach := sub.detach
	sub.detach = nil
	detach()
}

// Active reports whether the observer is still attached.
func (sub *Subscription) Active() bool {
	return sub != nil && sub.detach != nil
}

type observerEntry[F any] struct {
	fn   F
	live bool
}

// observerList holds callbacks in registration order. Iteration works on a
// snapshot so callbacks may add or remove observers while being notified.
type observerList[F any] struct {
	entries []*observerEntry[F]
}

func (l *observerList[F]) add(fn F) *Subscription {
	e := &observerEntry[F]{fn: fn, live: true}
	l.entries = append(l.entries, e)
	return &Subscription{detach: func() { l.remove(e) }}
}

func (l *observerList[F]) remove(e *observerEntry[F]) {
	e.live = false
	for i, existing := range l.entries {
		if existing == e {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *observerList[F]) each(visit func(F)) {
	snapshot := l.entries
	for _, e := range snapshot {
		if e.live {
			visit(e.fn)
		}
	}
}

func (l *observerList[F]) len() int {
	return len(l.entries)
}

func (l *observerList[F]) clear() {
	for _, e := range l.entries {
		e.live = false
	}
	l.entries = nil
}

// AddSystemNavigationObserver registers fn to run whenever the platform
// reports that it consumed a back navigation on its own. Every registered
// observer runs; order is unspecified.
func (m *Manager) AddSystemNavigationObserver(fn func()) *Subscription {
	return m.systemNav.add(fn)
}

// NotifySystemNavigation is called by the platform layer when the OS handled
// a back navigation that the manager was not armed for.
func (m *Manager) NotifySystemNavigation() {
	if m.destroyed {
		return
	}
	m.logger.Debugf("system navigation consumed back, notifying %d observers", m.systemNav.len())
	m.systemNav.each(func(fn func()) {
		fn()
	})
}
