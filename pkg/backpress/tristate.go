package backpress

// Tristate is a boolean that may also be unknown.
type Tristate int8

const (
	// Unknown means the value is absent or undecided.
	Unknown Tristate = iota
	// False is an explicit false.
	False
	// True is an explicit true.
	True
)

// FromBool converts a plain bool into a Tristate.
func FromBool(b bool) Tristate {
	if b {
		return True
	}
	return False
}

// IsTrue reports whether t is exactly True.
func (t Tristate) IsTrue() bool {
	return t == True
}

// String returns "true", "false" or "unknown".
func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
