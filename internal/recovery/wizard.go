package recovery

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/Veraticus/coinpurse/internal/form"
	"github.com/Veraticus/coinpurse/internal/validation"
)

// SuccessNotice is shown on the login screen after a completed reset.
const SuccessNotice = "Password reset successful. Please log in with your new password."

// Recoverer performs the remote calls of each recovery step.
type Recoverer interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// Wizard drives the recovery flow. Each step owns its own form; the email and
// code captured by earlier steps are carried forward and never change.
type Wizard struct {
	remote Recoverer
	forms  map[State]*form.Controller[validation.Field]
	email  string
	otp    string
	notice string
	state  State
	mu     sync.Mutex
}

// NewWizard creates a wizard at AwaitingEmail.
func NewWizard(remote Recoverer) *Wizard {
	return &Wizard{
		remote: remote,
		state:  AwaitingEmail,
		forms: map[State]*form.Controller[validation.Field]{
			AwaitingEmail:       form.NewFieldForm(validation.Email),
			AwaitingOTP:         form.NewFieldForm(validation.OTP),
			AwaitingNewPassword: form.NewFieldForm(validation.NewPassword, validation.ConfirmPassword),
		},
	}
}

// State returns the current step.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Email returns the email captured by the first step.
func (w *Wizard) Email() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.email
}

// OTP returns the code captured by the second step.
func (w *Wizard) OTP() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.otp
}

// Notice returns the last message surfaced to the user.
func (w *Wizard) Notice() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.notice
}

// Done reports whether the flow has completed.
func (w *Wizard) Done() bool {
	return w.State() == Complete
}

// Form returns the form of the current step, or nil once complete.
func (w *Wizard) Form() *form.Controller[validation.Field] {
	return w.forms[w.State()]
}

// Submit validates the current step's form and, if valid, performs its remote
// call. On success the wizard advances; on failure it stays and records the
// notice. The returned error is the step's failure, if any.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	state, email, otp := w.state, w.email, w.otp
	w.mu.Unlock()

	f, ok := w.forms[state]
	if !ok {
		return nil
	}

	var captured string
	err := f.Submit(ctx, func(ctx context.Context, v form.Values[validation.Field]) error {
		switch state {
		case AwaitingEmail:
			captured = strings.TrimSpace(v[validation.Email])
			return w.remote.RequestOTP(ctx, captured)
		case AwaitingOTP:
			captured = strings.TrimSpace(v[validation.OTP])
			return w.remote.VerifyOTP(ctx, email, captured)
		default:
			return w.remote.ResetPassword(ctx, email, otp, v[validation.NewPassword])
		}
	})

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		var validationErr *common.ValidationError
		if !errors.As(err, &validationErr) && !errors.Is(err, form.ErrBusy) {
			w.notice = common.Notice(err)
			slog.Debug("Recovery step failed", "state", state.String(), "error", err)
		}
		return err
	}

	if w.state != state {
		return nil
	}
	switch state {
	case AwaitingEmail:
		w.email = captured
		w.notice = "We sent a verification code to " + captured
	case AwaitingOTP:
		w.otp = captured
		w.notice = ""
	case AwaitingNewPassword:
		w.notice = SuccessNotice
	}
	w.state = Transition(state, Succeeded)
	slog.Debug("Recovery step completed", "from", state.String(), "to", w.state.String())
	return nil
}
