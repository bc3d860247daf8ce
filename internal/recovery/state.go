// Package recovery implements the forward-only password recovery wizard.
package recovery

// State is a step of the recovery flow.
type State int

const (
	// AwaitingEmail collects the account email and requests a code.
	AwaitingEmail State = iota
	// AwaitingOTP collects the emailed code and verifies it.
	AwaitingOTP
	// AwaitingNewPassword collects the replacement password.
	AwaitingNewPassword
	// Complete hands control back to login.
	Complete
)

func (s State) String() string {
	switch s {
	case AwaitingEmail:
		return "awaiting_email"
	case AwaitingOTP:
		return "awaiting_otp"
	case AwaitingNewPassword:
		return "awaiting_new_password"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event is the outcome of a step's remote call.
type Event int

const (
	// Succeeded means the step's remote call was acknowledged.
	Succeeded Event = iota
	// Failed means the remote call was rejected or never answered.
	Failed
)

// Transition returns the state that follows s after e. Failures keep the
// current step and Complete is terminal; no event moves backwards.
func Transition(s State, e Event) State {
	if e != Succeeded {
		return s
	}
	switch s {
	case AwaitingEmail:
		return AwaitingOTP
	case AwaitingOTP:
		return AwaitingNewPassword
	case AwaitingNewPassword:
		return Complete
	default:
		return s
	}
}
