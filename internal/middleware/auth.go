package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/auth"
	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/routes"
	"github.com/nfrund/userdesk/internal/users"
)

// UserContextKey is where RequireAuth stores the logged-in *domain.User.
const UserContextKey = "user"

// RequireAuth creates a middleware that protects routes that require authentication.
// Anonymous requests are sent to the login page with the requested path as
// redirectTo.
func RequireAuth(manager *auth.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			toLogin := func() error {
				target := c.Request().URL.RequestURI()
				if c.Request().Method != http.MethodGet {
					// A replayed POST would lose its form; come back to the page instead.
					target = sameHostReferer(c.Request())
				}
				return c.Redirect(http.StatusSeeOther, routes.LoginWithRedirect(target))
			}

			user, err := manager.CurrentUser(c)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				// The account behind the cookie is gone.
				if err := manager.LogOut(c); err != nil {
					slog.Warn("Failed to clear stale session", "error", err)
				}
				return toLogin()
			case err != nil:
				return err
			case user == nil:
				return toLogin()
			}

			c.Set(UserContextKey, user)
			ctx := users.WithActor(c.Request().Context(), user.Key())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func sameHostReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host != r.Host {
		return ""
	}
	return ref.RequestURI()
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}
