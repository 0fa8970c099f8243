package userdetail

import (
	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/routes"
	"github.com/nfrund/userdesk/internal/validation"
	"github.com/nfrund/userdesk/internal/view"
	"github.com/nfrund/userdesk/internal/view/format"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// Field is one displayed attribute of a user.
type Field struct {
	Key   string
	Label string
	// Text is the plain value; Node, when set, is its HTML form.
	Text string
	Node cmp.Node
}

// Fields lists every attribute of user in display order.
func Fields(user *domain.User) []Field {
	expiry := Field{Key: "resetTokenExpiresAt"}
	if t := user.ResetTokenExpiry(); t != nil {
		expiry.Text = format.TimeText(t)
		expiry.Node = format.TimeTag(t)
	} else if user.ResetTokenExpiresAt != nil {
		// Unparsable values are shown as stored.
		expiry.Text = *user.ResetTokenExpiresAt
	}

	fields := []Field{
		{Key: "id", Text: user.Key()},
		{Key: "displayName", Text: user.DisplayName},
		{Key: "email", Text: user.Email},
		{Key: "avatarUrl", Text: user.AvatarURL},
		{Key: "hashedPassword", Text: user.HashedPassword},
		{Key: "salt", Text: user.Salt},
		{Key: "resetToken", Text: user.ResetTokenValue()},
		expiry,
	}
	for i := range fields {
		fields[i].Label = validation.Label(fields[i].Key)
	}
	return fields
}

// Render draws the record and its actions.
func (v *View) Render(user *domain.User) cmp.Node {
	id := user.Key()
	return g.Div(
		g.Class("card"),
		g.H1(cmp.Textf("User %s Detail", id)),
		g.Table(
			g.Class("record"),
			g.TBody(cmp.Map(Fields(user), func(f Field) cmp.Node {
				value := f.Node
				if value == nil {
					value = cmp.Text(f.Text)
				}
				return g.Tr(g.Th(cmp.Text(f.Label)), g.Td(cmp.Attr("data-field", f.Key), value))
			})),
		),
		g.Div(
			g.Class("actions"),
			g.A(g.Class("btn btn-primary"), g.Href(routes.EditUser(id)), cmp.Text("Edit")),
			actionForm(routes.DeleteUser(id), DeletePrompt(id), "btn btn-danger", "Delete"),
			actionForm(routes.EmailUser(id), EmailPrompt(id), "btn", "Send email"),
		),
	)
}

// actionForm posts to action. With htmx the browser asks prompt first and
// sends confirm=yes; without it the server answers with a confirmation page.
func actionForm(action, prompt, class, label string) cmp.Node {
	return cmp.El("form",
		g.Method("post"),
		g.Action(action),
		g.Button(
			g.Type("submit"),
			g.Class(class),
			hx.Post(action),
			hx.Confirm(prompt),
			hx.Vals(`{"`+view.ConfirmField+`":"yes"}`),
			cmp.Text(label),
		),
	)
}
