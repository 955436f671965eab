package checkout

type SessionStatus string

const (
	StatusOpen       SessionStatus = "OPEN"
	StatusSubmitting SessionStatus = "SUBMITTING"
)

// String representation (for logging)
func (s SessionStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether a session may move between the two states.
// A finished submission resets the session back to OPEN for the next
// customer, so SUBMITTING is the only state it ever passes through.
func CanTransitionTo(from, to SessionStatus) bool {
	switch from {
	case StatusOpen:
		return to == StatusSubmitting
	case StatusSubmitting:
		return to == StatusOpen
	default:
		return false
	}
}
