package view

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/routes"
)

// FlashNotifier delivers notifications as session flash messages, shown on
// the next rendered page.
type FlashNotifier struct {
	c echo.Context
}

func NewFlashNotifier(c echo.Context) *FlashNotifier {
	return &FlashNotifier{c: c}
}

func (n *FlashNotifier) Success(text string) { SetFlashSuccess(n.c, text) }
func (n *FlashNotifier) Error(text string)   { SetFlashError(n.c, text) }
func (n *FlashNotifier) Notify(text string)  { SetFlashInfo(n.c, text) }

// RecordingNavigator remembers where a view asked to go. The handler turns
// the last recorded target into the HTTP response.
type RecordingNavigator struct {
	target string
}

func (n *RecordingNavigator) Navigate(route string) {
	n.target = route
}

// Target returns the last requested route and whether any navigation happened.
func (n *RecordingNavigator) Target() (string, bool) {
	return n.target, n.target != ""
}

// Redirect sends the client to target. htmx requests get an HX-Redirect
// header so the whole page changes instead of the swapped fragment.
func Redirect(c echo.Context, target string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// ConfirmField is the form field that carries an affirmative answer.
const ConfirmField = "confirm"

// FormConfirmer answers prompts from the submitted form. A request without
// confirm=yes counts as unanswered and the prompt is kept so the handler can
// ask the question on a confirmation page.
type FormConfirmer struct {
	c      echo.Context
	prompt string
}

func NewFormConfirmer(c echo.Context) *FormConfirmer {
	return &FormConfirmer{c: c}
}

func (f *FormConfirmer) Confirm(prompt string) bool {
	if f.c.FormValue(ConfirmField) == "yes" {
		return true
	}
	f.prompt = prompt
	return false
}

// Pending returns the prompt that went unanswered, if any.
func (f *FormConfirmer) Pending() (string, bool) {
	return f.prompt, f.prompt != ""
}

// QueryParams reads redirectTo from the query string, falling back to the
// submitted form. Only local paths are returned.
type QueryParams struct {
	c echo.Context
}

func NewQueryParams(c echo.Context) QueryParams {
	return QueryParams{c: c}
}

func (p QueryParams) RedirectTo() string {
	target := p.c.QueryParam("redirectTo")
	if target == "" {
		target = p.c.FormValue("redirectTo")
	}
	if !routes.IsLocal(target) {
		return ""
	}
	return target
}
