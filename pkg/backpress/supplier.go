package backpress

// Supplier is an observable Tristate value.
//
// Observers are notified synchronously, in registration order, whenever Set
// changes the value. An observer added during a notification first hears the
// next change; one removed during a notification is not called again.
type Supplier struct {
	value     Tristate
	observers observerList[func(Tristate)]
}

// NewSupplier creates a supplier holding the given initial value.
func NewSupplier(initial Tristate) *Supplier {
	return &Supplier{value: initial}
}

// Get returns the current value.
func (s *Supplier) Get() Tristate {
	return s.value
}

// Set updates the value and notifies observers if it changed.
func (s *Supplier) Set(v Tristate) {
	if s.value == v {
		return
	}
	s.value = v
	s.observers.each(func(fn func(Tristate)) {
		fn(v)
	})
}

// SetBool is shorthand for Set(FromBool(b)).
func (s *Supplier) SetBool(b bool) {
	s.Set(FromBool(b))
}

// AddObserver registers fn to be called on every value change.
func (s *Supplier) AddObserver(fn func(Tristate)) *Subscription {
	return s.observers.add(fn)
}

// ObserverCount returns the number of attached observers.
func (s *Supplier) ObserverCount() int {
	return s.observers.len()
}
