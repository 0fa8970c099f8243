package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/auth"
	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/routes"
	"github.com/nfrund/userdesk/internal/ui/login"
	"github.com/nfrund/userdesk/internal/users"
	"github.com/nfrund/userdesk/internal/validation"
	"github.com/nfrund/userdesk/internal/view"
	"github.com/nfrund/userdesk/web/src/templates/layouts"
	"github.com/nfrund/userdesk/web/src/templates/pages"
	cmp "maragu.dev/gomponents"
)

// AuthHandler serves the login, logout, sign up and password reset pages.
type AuthHandler struct {
	auth      *auth.Manager
	users     *users.Service
	validator *validation.Validator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(manager *auth.Manager, svc *users.Service, v *validation.Validator) *AuthHandler {
	if v == nil {
		v = validation.New()
	}
	return &AuthHandler{auth: manager, users: svc, validator: v}
}

// loginView builds the login view of this request around a recording navigator.
func (h *AuthHandler) loginView(c echo.Context) (*login.View, *view.RecordingNavigator) {
	nav := &view.RecordingNavigator{}
	v := login.New(h.auth.Session(c), login.Capabilities{
		Notifier:  view.NewFlashNotifier(c),
		Navigator: nav,
		Params:    view.NewQueryParams(c),
	}, h.validator)
	return v, nav
}

// LoginGet renders the login page, or redirects when already logged in.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	v, nav := h.loginView(c)
	v.Mount()
	defer v.Unmount()

	if target, ok := nav.Target(); ok {
		return view.Redirect(c, target)
	}
	return render(c, http.StatusOK, layouts.Public("Login", view.GetFlashData(c), v.Render()))
}

// LoginPost handles the form submission for logging in a user.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	v, nav := h.loginView(c)
	v.Mount()
	defer v.Unmount()

	if target, ok := nav.Target(); ok {
		return view.Redirect(c, target)
	}

	var form login.Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed login form.")
	}
	v.Submit(c.Request().Context(), form)

	if target, ok := nav.Target(); ok {
		return view.Redirect(c, target)
	}
	if len(v.FieldErrors()) > 0 {
		return render(c, http.StatusUnprocessableEntity, layouts.Public("Login", view.GetFlashData(c), v.Render()))
	}
	// The outcome is in the flash; show it on a fresh form.
	return view.Redirect(c, routes.LoginWithRedirect(view.NewQueryParams(c).RedirectTo()))
}

// Logout ends the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.LogOut(c); err != nil {
		return err
	}
	view.SetFlashSuccess(c, "You have been logged out.")
	return view.Redirect(c, routes.Login())
}

// SignUpGet renders the registration form.
func (h *AuthHandler) SignUpGet(c echo.Context) error {
	return render(c, http.StatusOK, layouts.Public("Sign Up", view.GetFlashData(c), pages.SignUp(pages.SignUpData{})))
}

// SignUpPost creates the account and logs it in.
func (h *AuthHandler) SignUpPost(c echo.Context) error {
	var in users.SignUpInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed sign up form.")
	}

	user, err := h.users.SignUp(c.Request().Context(), in)
	var formErr *users.FormError
	switch {
	case errors.As(err, &formErr):
		page := pages.SignUp(pages.SignUpData{Email: in.Email, DisplayName: in.DisplayName, Errors: formErr.Fields})
		return render(c, http.StatusUnprocessableEntity, layouts.Public("Sign Up", view.GetFlashData(c), page))
	case err != nil:
		slog.Error("Error creating user", "error", err)
		view.SetFlashError(c, "Could not create your account.")
		return view.Redirect(c, routes.SignUp())
	}

	resp := h.auth.Session(c).LogIn(c.Request().Context(), auth.Credentials{Username: user.Email, Password: in.Password})
	if resp.Error != "" || resp.Message != "" {
		view.SetFlashSuccess(c, "Account created. Please log in.")
		return view.Redirect(c, routes.Login())
	}
	view.SetFlashSuccess(c, "Account created successfully!")
	return view.Redirect(c, routes.Home())
}

// ForgotPasswordGet renders the reset request form.
func (h *AuthHandler) ForgotPasswordGet(c echo.Context) error {
	page := pages.ForgotPassword(pages.ForgotPasswordData{})
	return render(c, http.StatusOK, layouts.Public("Forgot Password", view.GetFlashData(c), page))
}

// ForgotPasswordPost emails a reset link. The response is the same whether
// or not the address is known.
func (h *AuthHandler) ForgotPasswordPost(c echo.Context) error {
	email := c.FormValue("email")
	err := h.users.RequestPasswordReset(c.Request().Context(), email)
	var formErr *users.FormError
	switch {
	case errors.As(err, &formErr):
		page := pages.ForgotPassword(pages.ForgotPasswordData{Email: email, Errors: formErr.Fields})
		return render(c, http.StatusUnprocessableEntity, layouts.Public("Forgot Password", view.GetFlashData(c), page))
	case err != nil:
		return err
	}
	view.SetFlashSuccess(c, "If an account with that email exists, a password reset link has been sent.")
	return view.Redirect(c, routes.ForgotPassword())
}

// ResetPasswordGet renders the new password form for ?token=.
func (h *AuthHandler) ResetPasswordGet(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		view.SetFlashError(c, "A valid reset token is required to change your password.")
		return view.Redirect(c, routes.ForgotPassword())
	}
	page := pages.ResetPassword(pages.ResetPasswordData{Token: token})
	return render(c, http.StatusOK, layouts.Public("Reset Password", view.GetFlashData(c), page))
}

// ResetPasswordPost sets the new password and logs the user in.
func (h *AuthHandler) ResetPasswordPost(c echo.Context) error {
	var in users.ResetPasswordInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed reset form.")
	}

	user, err := h.users.ResetPassword(c.Request().Context(), in)
	var formErr *users.FormError
	switch {
	case errors.As(err, &formErr):
		if in.Token == "" {
			view.SetFlashError(c, "A valid reset token is required to change your password.")
			return view.Redirect(c, routes.ForgotPassword())
		}
		page := pages.ResetPassword(pages.ResetPasswordData{Token: in.Token, Errors: formErr.Fields})
		return render(c, http.StatusUnprocessableEntity, layouts.Public("Reset Password", view.GetFlashData(c), page))
	case errors.Is(err, domain.ErrInvalidResetToken):
		view.SetFlashError(c, "This reset link is invalid or has expired.")
		return view.Redirect(c, routes.ForgotPassword())
	case err != nil:
		slog.Warn("Password reset failed", "error", err)
		view.SetFlashError(c, "Could not reset your password. Please try again.")
		return view.Redirect(c, routes.ResetPassword(in.Token))
	}

	resp := h.auth.Session(c).LogIn(c.Request().Context(), auth.Credentials{Username: user.Email, Password: in.Password})
	if resp.Error != "" || resp.Message != "" {
		view.SetFlashError(c, "Password reset successful, but failed to log you in automatically. Please log in manually.")
		return view.Redirect(c, routes.Login())
	}
	view.SetFlashSuccess(c, "Your password has been reset successfully! You are now logged in.")
	return view.Redirect(c, routes.Home())
}

// render writes a full page through the echo renderer.
func render(c echo.Context, status int, page cmp.Node) error {
	return c.Render(status, "", page)
}
