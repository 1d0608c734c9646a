package session

// View identifies which of the three mutually exclusive screens is active.
// Modeling the screen as a single enum keeps illegal combinations, such as
// a dashboard without an authenticated session, unrepresentable.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewDashboard
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Session pairs the credential token with its validation status.
// Authenticated implies the token was accepted by the API at least once
// since the last restoration.
type Session struct {
	Token         string
	Authenticated bool
}
