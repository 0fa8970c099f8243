package login

import (
	"context"
	"strings"
	"testing"

	"github.com/nfrund/userdesk/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession is an auth.Session whose LogIn returns a canned response and,
// on success, flips the observable to authenticated like the real one.
type fakeSession struct {
	*auth.Observable
	resp   auth.LoginResponse
	calls  []auth.Credentials
	during func()
}

func newFakeSession(s auth.State) *fakeSession {
	return &fakeSession{Observable: auth.NewObservable(s)}
}

func (f *fakeSession) LogIn(ctx context.Context, creds auth.Credentials) auth.LoginResponse {
	f.calls = append(f.calls, creds)
	if f.during != nil {
		f.during()
	}
	if f.resp == (auth.LoginResponse{}) {
		f.Set(auth.State{IsAuthenticated: true})
	}
	return f.resp
}

type notice struct{ kind, text string }

type fakeNotifier struct{ notices []notice }

func (n *fakeNotifier) Success(text string) { n.notices = append(n.notices, notice{"success", text}) }
func (n *fakeNotifier) Error(text string)   { n.notices = append(n.notices, notice{"error", text}) }
func (n *fakeNotifier) Notify(text string)  { n.notices = append(n.notices, notice{"info", text}) }

type fakeNavigator struct{ routes []string }

func (n *fakeNavigator) Navigate(route string) { n.routes = append(n.routes, route) }

type fakeParams struct{ redirectTo string }

func (p *fakeParams) RedirectTo() string { return p.redirectTo }

type harness struct {
	session  *fakeSession
	notifier *fakeNotifier
	nav      *fakeNavigator
	params   *fakeParams
	view     *View
}

func newHarness(state auth.State, redirectTo string) *harness {
	h := &harness{
		session:  newFakeSession(state),
		notifier: &fakeNotifier{},
		nav:      &fakeNavigator{},
		params:   &fakeParams{redirectTo: redirectTo},
	}
	h.view = New(h.session, Capabilities{Notifier: h.notifier, Navigator: h.nav, Params: h.params}, nil)
	return h
}

func render(t *testing.T, v *View) string {
	t.Helper()
	node := v.Render()
	if node == nil {
		return ""
	}
	var b strings.Builder
	require.NoError(t, node.Render(&b))
	return b.String()
}

func TestMount_AlreadyAuthenticatedRedirects(t *testing.T) {
	t.Run("to home", func(t *testing.T) {
		h := newHarness(auth.State{IsAuthenticated: true}, "")
		h.view.Mount()

		assert.Equal(t, []string{"/"}, h.nav.routes)
		assert.Empty(t, render(t, h.view), "form must not render")
	})

	t.Run("to redirectTo", func(t *testing.T) {
		h := newHarness(auth.State{IsAuthenticated: true}, "/users/u1")
		h.view.Mount()

		assert.Equal(t, []string{"/users/u1"}, h.nav.routes)
	})
}

func TestMount_RedirectsWhenSessionBecomesAuthenticated(t *testing.T) {
	h := newHarness(auth.State{Loading: true}, "")
	h.view.Mount()
	assert.Empty(t, h.nav.routes)
	assert.Contains(t, render(t, h.view), "Loading...")
	assert.NotContains(t, render(t, h.view), "<form")

	h.params.redirectTo = "/users"
	h.session.Set(auth.State{IsAuthenticated: true})

	assert.Equal(t, []string{"/users"}, h.nav.routes)
}

func TestUnmount_StopsObserving(t *testing.T) {
	h := newHarness(auth.State{}, "")
	h.view.Mount()
	h.view.Unmount()

	h.session.Set(auth.State{IsAuthenticated: true})
	assert.Empty(t, h.nav.routes)
}

func TestRender_Form(t *testing.T) {
	h := newHarness(auth.State{}, "/users")
	h.view.Mount()

	html := render(t, h.view)
	assert.Contains(t, html, `<form method="post" action="/login"`)
	assert.Contains(t, html, `name="redirectTo" value="/users"`)
	assert.Contains(t, html, `autofocus`)
	assert.Contains(t, html, `autocomplete="current-password"`)
	assert.Contains(t, html, `href="/signup">Sign Up!</a>`)
	assert.Contains(t, html, `href="/forgot-password">Forgot Password?</a>`)

	assert.NotContains(t, render(t, h.view), "autofocus", "email is focused once per mount")
}

func TestFocusEmail_OncePerMount(t *testing.T) {
	h := newHarness(auth.State{}, "")
	assert.False(t, h.view.FocusEmail(), "not mounted yet")

	h.view.Mount()
	assert.True(t, h.view.FocusEmail())
	assert.False(t, h.view.FocusEmail())
}

func TestSubmit_Validation(t *testing.T) {
	h := newHarness(auth.State{}, "")
	h.view.Mount()

	phase := h.view.Submit(t.Context(), Form{Email: "", Password: "secret"})

	assert.Equal(t, Idle, phase)
	assert.Empty(t, h.session.calls, "login must not be attempted")
	assert.Equal(t, map[string]string{"email": "Email is required"}, h.view.FieldErrors())
	assert.Contains(t, render(t, h.view), "Email is required")
	assert.Empty(t, h.notifier.notices)

	h.view.Submit(t.Context(), Form{Email: "ada@example.com"})
	assert.Empty(t, h.session.calls)
	assert.Equal(t, "Password is required", h.view.FieldErrors()["password"])
	assert.Contains(t, render(t, h.view), `value="ada@example.com"`)
}

func TestSubmit_ResponsePrecedence(t *testing.T) {
	cases := []struct {
		name    string
		resp    auth.LoginResponse
		notices []notice
		routes  []string
		phase   Phase
	}{
		{
			name:    "message wins over error",
			resp:    auth.LoginResponse{Message: "Check your inbox", Error: "ignored"},
			notices: []notice{{"info", "Check your inbox"}},
			phase:   Idle,
		},
		{
			name:    "error",
			resp:    auth.LoginResponse{Error: "Invalid credentials"},
			notices: []notice{{"error", "Invalid credentials"}},
			phase:   Errored,
		},
		{
			name:    "success",
			resp:    auth.LoginResponse{},
			notices: []notice{{"success", "Welcome back!"}},
			routes:  []string{"/"},
			phase:   Succeeded,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(auth.State{}, "")
			h.session.resp = tc.resp
			h.view.Mount()

			phase := h.view.Submit(t.Context(), Form{Email: "ada@example.com", Password: "pw"})

			assert.Equal(t, tc.phase, phase)
			assert.Equal(t, []auth.Credentials{{Username: "ada@example.com", Password: "pw"}}, h.session.calls)
			assert.Equal(t, tc.notices, h.notifier.notices)
			assert.Equal(t, tc.routes, h.nav.routes)
		})
	}
}

func TestSubmit_SuccessUsesRedirectTo(t *testing.T) {
	h := newHarness(auth.State{}, "/users/u1")
	h.view.Mount()

	h.view.Submit(t.Context(), Form{Email: "ada@example.com", Password: "pw"})

	assert.Equal(t, []string{"/users/u1"}, h.nav.routes)
	assert.Equal(t, []notice{{"success", "Welcome back!"}}, h.notifier.notices)
}

func TestSubmit_DiscardsInputAfterAttempt(t *testing.T) {
	h := newHarness(auth.State{}, "")
	h.session.resp = auth.LoginResponse{Error: "Invalid credentials"}
	h.view.Mount()

	h.view.Submit(t.Context(), Form{Email: "ada@example.com", Password: "pw"})
	assert.NotContains(t, render(t, h.view), "ada@example.com")
}

func TestSubmit_LateResultAfterUnmountIgnored(t *testing.T) {
	h := newHarness(auth.State{}, "")
	h.session.resp = auth.LoginResponse{Error: "Invalid credentials"}
	h.session.during = h.view.Unmount
	h.view.Mount()

	h.view.Submit(t.Context(), Form{Email: "ada@example.com", Password: "pw"})

	assert.Len(t, h.session.calls, 1)
	assert.Empty(t, h.notifier.notices)
	assert.Empty(t, h.nav.routes)
}

func TestRedirect_AgainAfterSessionEnds(t *testing.T) {
	h := newHarness(auth.State{IsAuthenticated: true}, "")
	h.view.Mount()
	require.Equal(t, []string{"/"}, h.nav.routes)

	h.session.Set(auth.State{IsAuthenticated: true})
	assert.Equal(t, []string{"/"}, h.nav.routes, "same target twice navigates once")

	h.session.Set(auth.State{})
	h.session.Set(auth.State{IsAuthenticated: true})
	assert.Equal(t, []string{"/", "/"}, h.nav.routes)
}

func TestRedirect_FollowsChangedRedirectTo(t *testing.T) {
	h := newHarness(auth.State{IsAuthenticated: true}, "/users/u1")
	h.view.Mount()

	h.params.redirectTo = "/users/u2"
	h.view.ParamsChanged()
	h.view.ParamsChanged()

	assert.Equal(t, []string{"/users/u1", "/users/u2"}, h.nav.routes)
}

func TestRedirect_ParamsChangedWhileLoggedOutDoesNothing(t *testing.T) {
	h := newHarness(auth.State{}, "/users/u1")
	h.view.Mount()

	h.params.redirectTo = "/users/u2"
	h.view.ParamsChanged()

	assert.Empty(t, h.nav.routes)
}
