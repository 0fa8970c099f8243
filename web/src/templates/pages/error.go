package pages

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/nfrund/userdesk/internal/routes"
)

// Error is the body of error pages.
func Error(status int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="card"><h1>%d %s</h1><p>%s</p><p><a href="%s">Back to start</a></p></div>`,
			status,
			templ.EscapeString(http.StatusText(status)),
			templ.EscapeString(message),
			routes.Home())
		return err
	})
}
