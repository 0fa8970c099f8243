package layouts

import (
	"github.com/nfrund/userdesk/internal/routes"
	"github.com/nfrund/userdesk/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps the content of a signed-in page: navigation, flash messages and
// the shared document head.
func Base(title string, flash view.FlashData, content cmp.Node) cmp.Node {
	return document(title, flash, content,
		g.A(g.Href(routes.Home()), g.Strong(cmp.Text("userdesk"))),
		g.A(g.Href(routes.Users()), cmp.Text("Users")),
		g.Span(g.Class("spacer")),
		g.A(g.Href(routes.Logout()), cmp.Text("Log out")),
	)
}

// Public wraps pages reachable without a session (login, sign up, password reset).
func Public(title string, flash view.FlashData, content cmp.Node) cmp.Node {
	return document(title, flash, content,
		g.A(g.Href(routes.Home()), g.Strong(cmp.Text("userdesk"))),
	)
}

func document(title string, flash view.FlashData, content cmp.Node, nav ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(CalculateTitle(title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
				g.Script(g.Src(htmxSrc), g.Defer()),
			),
			g.Body(
				g.Header(nav...),
				g.Main(
					Flashes(flash),
					content,
				),
			),
		),
	)
}

// Flashes renders the consumed flash messages, errors first.
func Flashes(flash view.FlashData) cmp.Node {
	if flash.Empty() {
		return nil
	}
	return g.Div(
		g.ID("flash"),
		flashList("flash flash-error", flash.Error),
		flashList("flash flash-info", flash.Info),
		flashList("flash flash-success", flash.Success),
	)
}

func flashList(class string, messages []string) cmp.Node {
	return cmp.Map(messages, func(m string) cmp.Node {
		return g.Div(g.Class(class), cmp.Attr("role", "status"), cmp.Text(m))
	})
}
