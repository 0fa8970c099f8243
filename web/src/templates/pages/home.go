package pages

import (
	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/routes"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Home greets the visitor. user is nil for anonymous visitors.
func Home(user *domain.User) cmp.Node {
	if user == nil {
		return Card("Welcome to userdesk",
			g.P(cmp.Text("Administer user accounts: review records, send notification emails and remove accounts.")),
			g.P(g.A(g.Class("btn btn-primary"), g.Href(routes.Login()), cmp.Text("Log in"))),
		)
	}
	name := user.DisplayName
	if name == "" {
		name = user.Email
	}
	return Card("Welcome to userdesk",
		g.P(cmp.Textf("Signed in as %s.", name)),
		g.P(g.A(g.Class("btn btn-primary"), g.Href(routes.Users()), cmp.Text("Browse users"))),
	)
}
