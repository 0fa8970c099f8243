package pages

import (
	"strconv"

	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/routes"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// UserListData is one page of the user list.
type UserListData struct {
	Users   []*domain.User
	Page    int
	HasNext bool
}

// UserList renders a page of users linking to their detail pages.
func UserList(data UserListData) cmp.Node {
	if len(data.Users) == 0 {
		return Card("Users", g.P(cmp.Text("No users found.")))
	}
	return Card("Users",
		g.Table(
			g.Class("record"),
			g.THead(g.Tr(g.Th(cmp.Text("Email")), g.Th(cmp.Text("Display name")))),
			g.TBody(cmp.Map(data.Users, func(u *domain.User) cmp.Node {
				return g.Tr(
					g.Td(g.A(g.Href(routes.User(u.Key())), cmp.Text(u.Email))),
					g.Td(cmp.Text(u.DisplayName)),
				)
			})),
		),
		g.Div(
			g.Class("actions"),
			cmp.If(data.Page > 1, g.A(g.Class("btn"), g.Href(pageHref(data.Page-1)), cmp.Text("Previous"))),
			cmp.If(data.HasNext, g.A(g.Class("btn"), g.Href(pageHref(data.Page+1)), cmp.Text("Next"))),
		),
	)
}

func pageHref(page int) string {
	return routes.Users() + "?page=" + strconv.Itoa(page)
}

// EditUserData backs the edit form.
type EditUserData struct {
	ID     string
	Input  domain.UserUpdate
	Errors map[string]string
}

// EditUser renders the edit form of a user.
func EditUser(data EditUserData) cmp.Node {
	return Card("Edit user "+data.ID,
		PostForm(routes.EditUser(data.ID),
			Field("displayName", "Display name", "text", data.Input.DisplayName, data.Errors["displayName"]),
			Field("email", "Email", "email", data.Input.Email, data.Errors["email"], g.Required()),
			Field("avatarUrl", "Avatar url", "url", data.Input.AvatarURL, data.Errors["avatarUrl"]),
			g.Div(
				g.Class("actions"),
				Submit("Save"),
				g.A(g.Class("btn"), g.Href(routes.User(data.ID)), cmp.Text("Cancel")),
			),
		),
	)
}

// Confirm asks prompt without JavaScript. Yes re-posts to action with
// confirm=yes; Cancel goes back without doing anything.
func Confirm(prompt, action, cancelHref string) cmp.Node {
	return Card("Please confirm",
		g.P(g.ID("confirm-prompt"), cmp.Text(prompt)),
		g.Div(
			g.Class("actions"),
			PostForm(action,
				g.Input(g.Type("hidden"), g.Name("confirm"), g.Value("yes")),
				g.Button(g.Type("submit"), g.Class("btn btn-danger"), cmp.Text("Yes")),
			),
			g.A(g.Class("btn"), g.Href(cancelHref), cmp.Text("Cancel")),
		),
	)
}
