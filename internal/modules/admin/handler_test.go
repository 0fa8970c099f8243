package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/registry"
	"github.com/nfrund/userdesk/internal/rendering"
	"github.com/nfrund/userdesk/internal/testutils"
	"github.com/nfrund/userdesk/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	e      *echo.Echo
	repo   *testutils.MemoryUserRepository
	mailer *testutils.RecordingMailer
	pub    *testutils.RecordingPublisher
	store  *sessions.CookieStore
}

func setupAdminTest(t *testing.T, seed ...*domain.User) *adminFixture {
	t.Helper()
	if len(seed) == 0 {
		seed = []*domain.User{testutils.NewTestUser("u1", "ada@example.com"), testutils.NewTestUser("u2", "bob@example.com")}
	}
	f := &adminFixture{
		e:      echo.New(),
		repo:   testutils.NewMemoryUserRepository(seed...),
		mailer: &testutils.RecordingMailer{},
		pub:    &testutils.RecordingPublisher{},
		store:  sessions.NewCookieStore([]byte("a-very-secret-key-for-testing-!")),
	}
	svc := users.NewService(users.Dependencies{
		Repository: f.repo,
		Mailer:     f.mailer,
		Publisher:  f.pub,
		BaseURL:    "http://localhost:8080",
	})

	f.e.Renderer = rendering.NewUniversalRenderer()
	f.e.Use(session.Middleware(f.store))

	m := New(Dependencies{Service: svc})
	reg := registry.New(nil)
	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Boot(t.Context(), f.e.Group("/users"), reg))
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })
	return f
}

func (f *adminFixture) do(method, target string, form url.Values, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *adminFixture) flashes(t *testing.T, rec *httptest.ResponseRecorder, key string) []interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	sess, err := f.store.Get(req, "flash-session")
	require.NoError(t, err)
	return sess.Flashes(key)
}

func TestDetail(t *testing.T) {
	f := setupAdminTest(t)

	rec := f.do(http.MethodGet, "/users/u1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "User u1 Detail")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, `href="/users/u1/edit"`)
	assert.Contains(t, body, `hx-confirm="Are you sure you want to delete user u1?"`)
	assert.Contains(t, body, `hx-confirm="Are you sure you want to send an email to u1?"`)
}

func TestDetail_NotFound(t *testing.T) {
	f := setupAdminTest(t)

	rec := f.do(http.MethodGet, "/users/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete(t *testing.T) {
	t.Run("without confirmation asks first", func(t *testing.T) {
		f := setupAdminTest(t)

		rec := f.do(http.MethodPost, "/users/u1/delete", url.Values{})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Are you sure you want to delete user u1?")
		assert.Contains(t, rec.Body.String(), `action="/users/u1/delete"`)
		assert.Equal(t, 0, f.repo.DeleteCalls)
	})

	t.Run("confirmed deletes and lists users", func(t *testing.T) {
		f := setupAdminTest(t)

		rec := f.do(http.MethodPost, "/users/u1/delete", url.Values{"confirm": {"yes"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, []interface{}{"User deleted"}, f.flashes(t, rec, "success"))
		_, err := f.repo.FindByID(t.Context(), "u1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.Len(t, f.pub.Messages(), 1)
		assert.Equal(t, users.Deleted.Name(), f.pub.Messages()[0].Topic)
	})

	t.Run("htmx gets an HX-Redirect", func(t *testing.T) {
		f := setupAdminTest(t)

		rec := f.do(http.MethodPost, "/users/u1/delete", url.Values{"confirm": {"yes"}}, "HX-Request", "true")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/users", rec.Header().Get("HX-Redirect"))
	})

	t.Run("failure stays on the record", func(t *testing.T) {
		f := setupAdminTest(t)
		f.repo.Err = errors.New("db down")

		rec := f.do(http.MethodPost, "/users/u1/delete", url.Values{"confirm": {"yes"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users/u1", rec.Header().Get(echo.HeaderLocation))
		assert.Len(t, f.flashes(t, rec, "error"), 1)
		assert.Empty(t, f.pub.Messages())
	})
}

func TestEmail(t *testing.T) {
	t.Run("confirmed sends and stays", func(t *testing.T) {
		f := setupAdminTest(t)

		rec := f.do(http.MethodPost, "/users/u1/email", url.Values{"confirm": {"yes"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users/u1", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, []interface{}{"Email sent"}, f.flashes(t, rec, "success"))
		require.Len(t, f.mailer.Sent(), 1)
	})

	t.Run("without confirmation sends nothing", func(t *testing.T) {
		f := setupAdminTest(t)

		rec := f.do(http.MethodPost, "/users/u1/email", url.Values{})

		assert.Contains(t, rec.Body.String(), "Are you sure you want to send an email to u1?")
		assert.Empty(t, f.mailer.Sent())
	})

	t.Run("mailer failure is reported", func(t *testing.T) {
		f := setupAdminTest(t)
		f.mailer.Err = errors.New("smtp refused")

		rec := f.do(http.MethodPost, "/users/u1/email", url.Values{"confirm": {"yes"}})

		errs := f.flashes(t, rec, "error")
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "Could not send email to user u1")
	})
}

func TestEdit(t *testing.T) {
	f := setupAdminTest(t)

	form := f.do(http.MethodGet, "/users/u1/edit", nil)
	assert.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), `value="ada@example.com"`)

	bad := f.do(http.MethodPost, "/users/u1/edit", url.Values{"email": {"not-an-email"}})
	assert.Equal(t, http.StatusUnprocessableEntity, bad.Code)
	assert.Contains(t, bad.Body.String(), "must be a valid email address")

	taken := f.do(http.MethodPost, "/users/u1/edit", url.Values{"email": {"bob@example.com"}})
	assert.Equal(t, http.StatusUnprocessableEntity, taken.Code)
	assert.Contains(t, taken.Body.String(), "Email is already in use")

	ok := f.do(http.MethodPost, "/users/u1/edit", url.Values{"email": {"ada@new.example"}, "displayName": {"Ada"}})
	assert.Equal(t, http.StatusSeeOther, ok.Code)
	assert.Equal(t, "/users/u1", ok.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []interface{}{"User updated"}, f.flashes(t, ok, "success"))

	u, err := f.repo.FindByID(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ada@new.example", u.Email)
	assert.Equal(t, "Ada", u.DisplayName)
}

func TestList_Pages(t *testing.T) {
	seed := make([]*domain.User, 0, domain.DefaultPageSize+1)
	for i := 0; i <= domain.DefaultPageSize; i++ {
		seed = append(seed, testutils.NewTestUser(fmt.Sprintf("u%03d", i), fmt.Sprintf("user%03d@example.com", i)))
	}
	f := setupAdminTest(t, seed...)

	first := f.do(http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "user000@example.com")
	assert.NotContains(t, first.Body.String(), fmt.Sprintf("user%03d@example.com", domain.DefaultPageSize))
	assert.Contains(t, first.Body.String(), `href="/users?page=2"`)

	second := f.do(http.MethodGet, "/users?page=2", nil)
	assert.Contains(t, second.Body.String(), fmt.Sprintf("user%03d@example.com", domain.DefaultPageSize))
	assert.NotContains(t, second.Body.String(), `href="/users?page=3"`)
}
