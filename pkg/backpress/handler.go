package backpress

// Handler is implemented by every feature that competes for back.
//
// The manager only calls these methods; it never inspects the handler
// otherwise. EnabledState must return the same Supplier for the lifetime of
// the registration.
type Handler interface {
	// EnabledState reports whether the handler currently wants back events.
	// Only True makes the handler a candidate.
	EnabledState() *Supplier

	// HandleBackPress consumes a back event now.
	HandleBackPress() Result
}

// GestureHandler is implemented by handlers that animate predictive back.
// Phase callbacks only ever reach the single handler pinned at gesture start.
type GestureHandler interface {
	Handler
	OnBackStarted(ev GestureEvent)
	OnBackProgressed(ev GestureEvent)
	OnBackCancelled()
}

// EscapeHandler is implemented by handlers with dedicated escape key
// behaviour. Handlers that do not implement it have escape routed to
// HandleBackPress.
type EscapeHandler interface {
	Handler

	// InvokeBackActionOnEscape reports whether escape should call
	// HandleBackPress instead of HandleEscPress.
	InvokeBackActionOnEscape() bool

	// HandleEscPress returns True when consumed, False when explicitly
	// declined and Unknown to abstain. The scan continues on False and
	// Unknown.
	HandleEscPress() Tristate
}

// HandlerFunc adapts a supplier and a function into a Handler.
type HandlerFunc struct {
	Enabled *Supplier
	Fn      func() Result
}

// EnabledState implements Handler.
func (h *HandlerFunc) EnabledState() *Supplier {
	return h.Enabled
}

// HandleBackPress implements Handler.
func (h *HandlerFunc) HandleBackPress() Result {
	if h.Fn == nil {
		return ResultIgnored
	}
	return h.Fn()
}

func enabledOf(h Handler) Tristate {
	s := h.EnabledState()
	if s == nil {
		return Unknown
	}
	return s.Get()
}

func routesEscapeToBack(h Handler) (EscapeHandler, bool) {
	eh, ok := h.(EscapeHandler)
	if !ok || eh.InvokeBackActionOnEscape() {
		return nil, true
	}
	return eh, false
}
