package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/routes"
	"github.com/nfrund/userdesk/internal/ui/userdetail"
	"github.com/nfrund/userdesk/internal/users"
	"github.com/nfrund/userdesk/internal/view"
	"github.com/nfrund/userdesk/web/src/templates/layouts"
	"github.com/nfrund/userdesk/web/src/templates/pages"
	cmp "maragu.dev/gomponents"
)

// Handler serves the admin pages.
type Handler struct {
	users *users.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *users.Service) *Handler {
	return &Handler{users: svc}
}

// List renders one page of users (?page=, starting at 1).
func (h *Handler) List(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit := domain.DefaultPageSize

	// One extra row tells whether a next page exists.
	list, err := h.users.List(c.Request().Context(), limit+1, (page-1)*limit)
	if err != nil {
		return err
	}
	data := pages.UserListData{Page: page, Users: list}
	if len(list) > limit {
		data.Users = list[:limit]
		data.HasNext = true
	}
	return renderPage(c, "Users", pages.UserList(data))
}

// Detail renders the record detail view.
func (h *Handler) Detail(c echo.Context) error {
	user, err := h.load(c)
	if err != nil {
		return err
	}
	v := userdetail.New(h.users, userdetail.Capabilities{})
	defer v.Unmount()
	return renderPage(c, "User "+user.Key(), v.Render(user))
}

// Delete runs the delete action of the detail view.
func (h *Handler) Delete(c echo.Context) error {
	return h.action(c, func(v *userdetail.View, id string) userdetail.Outcome {
		return v.OnDeleteClick(c.Request().Context(), id)
	})
}

// Email runs the send-email action of the detail view.
func (h *Handler) Email(c echo.Context) error {
	return h.action(c, func(v *userdetail.View, id string) userdetail.Outcome {
		return v.OnEmailClick(c.Request().Context(), id)
	})
}

// action drives one detail view click. An unanswered confirmation renders
// the confirmation page; otherwise the client goes where the view navigated,
// or back to the detail page to see the notification.
func (h *Handler) action(c echo.Context, click func(v *userdetail.View, id string) userdetail.Outcome) error {
	id := c.Param("id")
	nav := &view.RecordingNavigator{}
	confirmer := view.NewFormConfirmer(c)
	v := userdetail.New(h.users, userdetail.Capabilities{
		Notifier:  view.NewFlashNotifier(c),
		Navigator: nav,
		Confirmer: confirmer,
	})
	defer v.Unmount()

	if click(v, id) == userdetail.Declined {
		prompt, _ := confirmer.Pending()
		return renderPage(c, "Please confirm", pages.Confirm(prompt, c.Request().URL.Path, routes.User(id)))
	}
	if target, ok := nav.Target(); ok {
		return view.Redirect(c, target)
	}
	return view.Redirect(c, routes.User(id))
}

// EditGet renders the edit form filled with the stored values.
func (h *Handler) EditGet(c echo.Context) error {
	user, err := h.load(c)
	if err != nil {
		return err
	}
	return renderPage(c, "Edit user", pages.EditUser(pages.EditUserData{
		ID: user.Key(),
		Input: domain.UserUpdate{
			DisplayName: user.DisplayName,
			Email:       user.Email,
			AvatarURL:   user.AvatarURL,
		},
	}))
}

// EditPost stores the edit form.
func (h *Handler) EditPost(c echo.Context) error {
	id := c.Param("id")
	var in domain.UserUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed edit form.")
	}

	_, err := h.users.Update(c.Request().Context(), id, in)
	var formErr *users.FormError
	switch {
	case errors.As(err, &formErr):
		page := pages.EditUser(pages.EditUserData{ID: id, Input: in, Errors: formErr.Fields})
		return c.Render(http.StatusUnprocessableEntity, "", layouts.Base("Edit user", view.GetFlashData(c), page))
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User "+id+" not found")
	case err != nil:
		return err
	}
	view.SetFlashSuccess(c, "User updated")
	return view.Redirect(c, routes.User(id))
}

func (h *Handler) load(c echo.Context) (*domain.User, error) {
	id := c.Param("id")
	user, err := h.users.Get(c.Request().Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "User "+id+" not found")
	}
	return user, err
}

func renderPage(c echo.Context, title string, content cmp.Node) error {
	return c.Render(http.StatusOK, "", layouts.Base(title, view.GetFlashData(c), content))
}
