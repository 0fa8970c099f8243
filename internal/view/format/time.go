// Package format renders values for display in views.
package format

import (
	"net/http"
	"time"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// TimeTag renders t as a <time> element showing the UTC HTTP date, with the
// RFC 3339 value in the datetime and title attributes. A nil time renders
// nothing.
func TimeTag(t *time.Time) cmp.Node {
	if t == nil {
		return cmp.Group(nil)
	}
	machine := t.UTC().Format(time.RFC3339)
	return cmp.El("time",
		cmp.Attr("datetime", machine),
		g.Title(machine),
		cmp.Text(t.UTC().Format(http.TimeFormat)),
	)
}

// TimeText is the plain-text form of TimeTag, used outside HTML.
func TimeText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(http.TimeFormat)
}
