package login

import (
	"github.com/nfrund/userdesk/internal/routes"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Render draws the view for the current session state: a placeholder while
// loading, nothing once authenticated (a redirect is pending) and the login
// form otherwise.
func (v *View) Render() cmp.Node {
	state := v.session.State()
	switch {
	case state.Loading:
		return g.Div(g.Class("card"), cmp.Attr("aria-busy", "true"), cmp.Text("Loading..."))
	case state.IsAuthenticated:
		return nil
	}

	v.mu.Lock()
	email := v.email
	errs := v.fieldErrors
	v.mu.Unlock()

	action := routes.Login()
	redirectTo := ""
	if v.caps.Params != nil {
		redirectTo = v.caps.Params.RedirectTo()
	}

	return g.Div(
		g.Class("card"),
		g.H1(cmp.Text("Login")),
		cmp.El("form",
			g.Method("post"),
			g.Action(action),
			cmp.Attr("novalidate"),
			cmp.If(redirectTo != "", g.Input(g.Type("hidden"), g.Name("redirectTo"), g.Value(redirectTo))),
			field("email", "Email", errs["email"],
				g.Input(
					g.ID("email"), g.Name("email"), g.Type("email"),
					g.Value(email),
					g.AutoComplete("username"),
					cmp.If(v.FocusEmail(), g.AutoFocus()),
				),
			),
			field("password", "Password", errs["password"],
				g.Input(
					g.ID("password"), g.Name("password"), g.Type("password"),
					g.AutoComplete("current-password"),
				),
			),
			g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Login")),
		),
		g.P(
			g.A(g.Href(routes.SignUp()), cmp.Text("Sign Up!")),
			cmp.Text(" "),
			g.A(g.Href(routes.ForgotPassword()), cmp.Text("Forgot Password?")),
		),
	)
}

func field(name, label, errText string, input cmp.Node) cmp.Node {
	return g.Div(
		g.Class("field"),
		cmp.El("label", g.For(name), cmp.Text(label)),
		input,
		cmp.If(errText != "", g.Span(g.Class("field-error"), g.ID(name+"-error"), cmp.Text(errText))),
	)
}
