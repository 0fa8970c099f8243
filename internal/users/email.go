package users

import (
	"bytes"
	"fmt"

	"github.com/nfrund/userdesk/internal/domain"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

func notificationBody(user *domain.User, baseURL string) cmp.Node {
	name := user.DisplayName
	if name == "" {
		name = user.Email
	}
	return cmp.Group([]cmp.Node{
		g.P(cmp.Textf("Hello %s,", name)),
		g.P(cmp.Text("An administrator sent you this message from userdesk.")),
		g.P(g.A(g.Href(baseURL+"/"), cmp.Text("Open userdesk"))),
	})
}

func resetBody(resetLink string) cmp.Node {
	return cmp.Group([]cmp.Node{
		g.P(cmp.Text("Click the link below to reset your password:")),
		g.A(g.Href(resetLink), cmp.Text("Reset Password")),
	})
}

func renderBody(n cmp.Node) (string, error) {
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		return "", fmt.Errorf("render email body: %w", err)
	}
	return buf.String(), nil
}
