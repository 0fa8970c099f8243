// Package login is the credential login view. It redirects as soon as the
// observed session becomes authenticated and otherwise shows the login form.
package login

import (
	"context"
	"sync"

	"github.com/nfrund/userdesk/internal/auth"
	"github.com/nfrund/userdesk/internal/routes"
	"github.com/nfrund/userdesk/internal/validation"
	"github.com/nfrund/userdesk/internal/view"
)

// WelcomeMessage is shown after a successful login.
const WelcomeMessage = "Welcome back!"

// Form is the submitted credential input.
type Form struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Phase is where the form is in its submit cycle.
type Phase int

const (
	Idle Phase = iota
	Submitting
	Succeeded
	Errored
)

// Capabilities are the collaborators injected by the host.
type Capabilities struct {
	Notifier  view.Notifier
	Navigator view.Navigator
	Params    view.Params
}

// View is the state of one login page instance.
type View struct {
	session   auth.Session
	caps      Capabilities
	validator *validation.Validator

	mu          sync.Mutex
	mounted     bool
	// lastTarget is where the view last navigated while authenticated.
	lastTarget  string
	focused     bool
	phase       Phase
	email       string
	fieldErrors map[string]string
	unsubscribe func()
}

// New creates an unmounted View. A nil validator uses validation.New().
func New(session auth.Session, caps Capabilities, v *validation.Validator) *View {
	if v == nil {
		v = validation.New()
	}
	return &View{session: session, caps: caps, validator: v}
}

// Mount starts observing the session and applies the redirect rule to the
// current state immediately.
func (v *View) Mount() {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.lastTarget = ""
	v.mu.Unlock()

	unsubscribe := v.session.Subscribe(v.onState)

	v.mu.Lock()
	v.unsubscribe = unsubscribe
	v.mu.Unlock()

	v.onState(v.session.State())
}

// Unmount stops observing the session. Later results are ignored.
func (v *View) Unmount() {
	v.mu.Lock()
	v.mounted = false
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (v *View) onState(s auth.State) {
	if s.IsAuthenticated {
		v.redirect()
		return
	}
	if s.Loading {
		return
	}
	v.mu.Lock()
	v.lastTarget = ""
	v.mu.Unlock()
}

// ParamsChanged re-applies the redirect rule after the incoming parameters
// changed, so a new redirectTo is followed.
func (v *View) ParamsChanged() {
	v.onState(v.session.State())
}

// target is redirectTo when one was supplied, else home. It is read on every
// evaluation so a changed parameter is honored.
func (v *View) target() string {
	if v.caps.Params != nil {
		if t := v.caps.Params.RedirectTo(); t != "" {
			return t
		}
	}
	return routes.Home()
}

// redirect navigates to the current target unless the view already went
// there during this authenticated stretch.
func (v *View) redirect() {
	target := v.target()

	v.mu.Lock()
	if !v.mounted || v.lastTarget == target {
		v.mu.Unlock()
		return
	}
	v.lastTarget = target
	v.mu.Unlock()

	v.caps.Navigator.Navigate(target)
}

// FocusEmail reports whether the email input should take focus. It is true
// only for the first call after mounting.
func (v *View) FocusEmail() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted || v.focused {
		return false
	}
	v.focused = true
	return true
}

// Phase returns the current submit phase.
func (v *View) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// FieldErrors returns the inline messages from the last validation.
func (v *View) FieldErrors() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]string, len(v.fieldErrors))
	for k, msg := range v.fieldErrors {
		out[k] = msg
	}
	return out
}

// Submit validates the form and logs in. Validation failures stay inline and
// never reach the session. The login response is handled in this order:
// message, error, success.
func (v *View) Submit(ctx context.Context, form Form) Phase {
	if fields := validation.FieldErrors(v.validator.Validate(form)); fields != nil {
		v.mu.Lock()
		v.fieldErrors = fields
		v.email = form.Email
		v.phase = Idle
		v.mu.Unlock()
		return Idle
	}

	v.mu.Lock()
	v.fieldErrors = nil
	v.email = ""
	v.phase = Submitting
	v.mu.Unlock()

	resp := v.session.LogIn(ctx, auth.Credentials{Username: form.Email, Password: form.Password})

	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return Submitting
	}
	switch {
	case resp.Message != "":
		// Informational: neither success nor failure, the form is usable again.
		v.phase = Idle
	case resp.Error != "":
		v.phase = Errored
	default:
		v.phase = Succeeded
	}
	phase := v.phase
	v.mu.Unlock()

	switch {
	case resp.Message != "":
		v.caps.Notifier.Notify(resp.Message)
	case resp.Error != "":
		v.caps.Notifier.Error(resp.Error)
	default:
		v.caps.Notifier.Success(WelcomeMessage)
		v.redirect()
	}
	return phase
}
