package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/auth"
	"github.com/nfrund/userdesk/internal/view"
	"github.com/nfrund/userdesk/web/src/templates/layouts"
	"github.com/nfrund/userdesk/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	auth *auth.Manager
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(manager *auth.Manager) *HomeHandler {
	return &HomeHandler{auth: manager}
}

// HomeGet handles the GET request for the home page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	user, err := h.auth.CurrentUser(c)
	if err != nil {
		// A stale or broken session still gets the anonymous page.
		slog.Warn("Could not load session user", "error", err)
		user = nil
	}
	flash := view.GetFlashData(c)
	if user == nil {
		return render(c, http.StatusOK, layouts.Public("Home", flash, pages.Home(nil)))
	}
	return render(c, http.StatusOK, layouts.Base("Home", flash, pages.Home(user)))
}
