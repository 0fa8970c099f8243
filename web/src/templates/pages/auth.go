package pages

import (
	"github.com/nfrund/userdesk/internal/routes"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// SignUpData backs the sign up form. Passwords are never echoed back.
type SignUpData struct {
	Email       string
	DisplayName string
	Errors      map[string]string
}

// SignUp renders the registration form.
func SignUp(data SignUpData) cmp.Node {
	return Card("Sign Up",
		PostForm(routes.SignUp(),
			Field("email", "Email", "email", data.Email, data.Errors["email"], g.AutoFocus(), g.AutoComplete("email")),
			Field("displayName", "Display name", "text", data.DisplayName, data.Errors["displayName"]),
			Field("password", "Password", "password", "", data.Errors["password"], g.AutoComplete("new-password")),
			Field("password_confirm", "Confirm password", "password", "", data.Errors["password_confirm"], g.AutoComplete("new-password")),
			Submit("Create account"),
		),
		g.P(cmp.Text("Already registered? "), g.A(g.Href(routes.Login()), cmp.Text("Log in"))),
	)
}

// ForgotPasswordData backs the reset request form.
type ForgotPasswordData struct {
	Email  string
	Errors map[string]string
}

// ForgotPassword renders the form that requests a reset link.
func ForgotPassword(data ForgotPasswordData) cmp.Node {
	return Card("Forgot Password",
		g.P(cmp.Text("Enter your email address and we will send you a link to set a new password.")),
		PostForm(routes.ForgotPassword(),
			Field("email", "Email", "email", data.Email, data.Errors["email"], g.AutoFocus()),
			Submit("Send reset link"),
		),
	)
}

// ResetPasswordData carries the token into the hidden form field.
type ResetPasswordData struct {
	Token  string
	Errors map[string]string
}

// ResetPassword renders the new password form.
func ResetPassword(data ResetPasswordData) cmp.Node {
	return Card("Reset Password",
		PostForm(routes.ResetPassword(""),
			g.Input(g.Type("hidden"), g.Name("token"), g.Value(data.Token)),
			Field("password", "New password", "password", "", data.Errors["password"], g.AutoFocus(), g.AutoComplete("new-password")),
			Field("password_confirm", "Confirm password", "password", "", data.Errors["password_confirm"], g.AutoComplete("new-password")),
			Submit("Set password"),
		),
	)
}
