package backpress

// Callback is the platform-facing back entry point. Implementations are
// chosen once, at construction, from the platform's capabilities.
type Callback interface {
	// Predictive reports whether phase callbacks are honoured.
	Predictive() bool
	// Enabled reports whether the platform should route back here.
	Enabled() bool
	Started(ev GestureEvent)
	Progressed(ev GestureEvent)
	Cancelled()
	// Invoked delivers the back press, or commits a started gesture.
	Invoked() bool
}

// NewCallback returns a PredictiveCallback when predictive is set and a
// LegacyCallback otherwise.
func NewCallback(m *Manager, predictive bool) Callback {
	if predictive {
		return &PredictiveCallback{m: m}
	}
	return &LegacyCallback{m: m}
}

// LegacyCallback supports only the discrete back press. Phase calls are
// dropped.
type LegacyCallback struct {
	m *Manager
}

func (c *LegacyCallback) Predictive() bool        { return false }
func (c *LegacyCallback) Enabled() bool           { return c.m.IsArmed() }
func (c *LegacyCallback) Started(GestureEvent)    {}
func (c *LegacyCallback) Progressed(GestureEvent) {}
func (c *LegacyCallback) Cancelled()              {}
func (c *LegacyCallback) Invoked() bool           { return c.m.HandleBackPress() }

// PredictiveCallback forwards every gesture phase to the manager.
type PredictiveCallback struct {
	m *Manager
}

func (c *PredictiveCallback) Predictive() bool           { return true }
func (c *PredictiveCallback) Enabled() bool              { return c.m.IsArmed() }
func (c *PredictiveCallback) Started(ev GestureEvent)    { c.m.OnBackStarted(ev) }
func (c *PredictiveCallback) Progressed(ev GestureEvent) { c.m.OnBackProgressed(ev) }
func (c *PredictiveCallback) Cancelled()                 { c.m.OnBackCancelled() }
func (c *PredictiveCallback) Invoked() bool              { return c.m.OnBackInvoked() }
