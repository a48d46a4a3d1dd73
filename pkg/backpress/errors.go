package backpress

import "errors"

var (
	// ErrInvalidType is returned for a Type outside the declared range.
	ErrInvalidType = errors.New("invalid handler type")
	// ErrAlreadyRegistered is returned when a slot is already occupied.
	ErrAlreadyRegistered = errors.New("handler type already registered")
	// ErrNotRegistered is returned when unregistering an empty slot.
	ErrNotRegistered = errors.New("handler type not registered")
	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("handler is nil")
	// ErrDestroyed is returned by registry calls after Destroy.
	ErrDestroyed = errors.New("back press manager destroyed")
)
