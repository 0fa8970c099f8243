package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/auth"
	"github.com/nfrund/userdesk/internal/testutils"
	"github.com/nfrund/userdesk/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func TestRequireAuth(t *testing.T) {
	repo := testutils.NewMemoryUserRepository(testutils.NewTestUser("u1", "ada@example.com"))
	repo.SetPassword("u1", "password123")
	manager := auth.NewManager(repo)

	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	e.GET("/users/:id", func(c echo.Context) error {
		user := CurrentUser(c)
		return c.String(http.StatusOK, "Welcome "+user.Email+" as "+users.ActorFrom(c.Request().Context()))
	}, RequireAuth(manager))
	e.POST("/users/:id/delete", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RequireAuth(manager))
	e.GET("/test-login", func(c echo.Context) error {
		resp := manager.Session(c).LogIn(c.Request().Context(), auth.Credentials{Username: "ada@example.com", Password: "password123"})
		require.Empty(t, resp.Error)
		return c.NoContent(http.StatusOK)
	})

	t.Run("unauthenticated user is redirected to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/u1?tab=x", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?redirectTo=%2Fusers%2Fu1%3Ftab%3Dx", rec.Header().Get("Location"))
	})

	t.Run("unauthenticated post goes back to the referring page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/users/u1/delete", nil)
		req.Header.Set("Referer", "https://attacker.example/")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"), "non-local referers are dropped")
	})

	t.Run("unauthenticated post from this site keeps the page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/users/u1/delete", nil)
		req.Header.Set("Referer", "http://example.com/users/u1")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, "/login?redirectTo=%2Fusers%2Fu1", rec.Header().Get("Location"))
	})

	t.Run("authenticated user can access protected route", func(t *testing.T) {
		login := httptest.NewRecorder()
		e.ServeHTTP(login, httptest.NewRequest(http.MethodGet, "/test-login", nil))
		require.Equal(t, http.StatusOK, login.Code)

		req := httptest.NewRequest(http.MethodGet, "/users/u1", nil)
		for _, c := range login.Result().Cookies() {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Welcome ada@example.com as u1", rec.Body.String())
	})

	t.Run("session of a deleted user is cleared", func(t *testing.T) {
		login := httptest.NewRecorder()
		e.ServeHTTP(login, httptest.NewRequest(http.MethodGet, "/test-login", nil))
		require.NoError(t, repo.Delete(t.Context(), "u1"))

		req := httptest.NewRequest(http.MethodGet, "/users/u1", nil)
		for _, c := range login.Result().Cookies() {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/login")
	})
}
