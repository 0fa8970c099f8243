package view_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/view"
	"github.com/stretchr/testify/assert"
)

func newContext(method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestFormConfirmer(t *testing.T) {
	t.Run("confirmed by form field", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/users/1/delete", url.Values{"confirm": {"yes"}})
		confirmer := view.NewFormConfirmer(c)

		assert.True(t, confirmer.Confirm("Delete?"))
		_, pending := confirmer.Pending()
		assert.False(t, pending)
	})

	t.Run("unanswered keeps the prompt", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/users/1/delete", url.Values{})
		confirmer := view.NewFormConfirmer(c)

		assert.False(t, confirmer.Confirm("Delete?"))
		prompt, pending := confirmer.Pending()
		assert.True(t, pending)
		assert.Equal(t, "Delete?", prompt)
	})
}

func TestRecordingNavigator_KeepsLastTarget(t *testing.T) {
	var nav view.RecordingNavigator
	_, ok := nav.Target()
	assert.False(t, ok)

	nav.Navigate("/")
	nav.Navigate("/users/7")
	target, ok := nav.Target()
	assert.True(t, ok)
	assert.Equal(t, "/users/7", target)
}

func TestRedirect(t *testing.T) {
	t.Run("plain request gets see other", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/x", nil)
		assert.NoError(t, view.Redirect(c, "/users"))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("htmx request gets HX-Redirect", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/x", nil)
		c.Request().Header.Set("HX-Request", "true")
		assert.NoError(t, view.Redirect(c, "/users"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/users", rec.Header().Get("HX-Redirect"))
		assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
	})
}

func TestQueryParams_RedirectTo(t *testing.T) {
	cases := []struct {
		name   string
		target string
		form   url.Values
		want   string
	}{
		{"local path from query", "/login?redirectTo=%2Fusers%2F1", nil, "/users/1"},
		{"absolute url rejected", "/login?redirectTo=https%3A%2F%2Fevil.example", nil, ""},
		{"scheme relative rejected", "/login?redirectTo=%2F%2Fevil.example", nil, ""},
		{"missing", "/login", nil, ""},
		{"form fallback", "/login", url.Values{"redirectTo": {"/users"}}, "/users"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			method := http.MethodGet
			if tc.form != nil {
				method = http.MethodPost
			}
			c, _ := newContext(method, tc.target, tc.form)
			assert.Equal(t, tc.want, view.NewQueryParams(c).RedirectTo())
		})
	}
}
