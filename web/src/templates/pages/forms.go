package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Field is a labelled input with its inline error.
func Field(name, label, inputType, value, errText string, attrs ...cmp.Node) cmp.Node {
	input := []cmp.Node{g.ID(name), g.Name(name), g.Type(inputType)}
	if inputType != "password" {
		input = append(input, g.Value(value))
	}
	input = append(input, attrs...)
	return g.Div(
		g.Class("field"),
		cmp.El("label", g.For(name), cmp.Text(label)),
		g.Input(input...),
		cmp.If(errText != "", g.Span(g.Class("field-error"), g.ID(name+"-error"), cmp.Text(errText))),
	)
}

// PostForm is a form posting to action.
func PostForm(action string, children ...cmp.Node) cmp.Node {
	return cmp.El("form", append([]cmp.Node{g.Method("post"), g.Action(action), cmp.Attr("novalidate")}, children...)...)
}

// Submit is the primary button of a form.
func Submit(label string) cmp.Node {
	return g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text(label))
}

// Card is the white panel every page body sits in.
func Card(title string, children ...cmp.Node) cmp.Node {
	return g.Div(append([]cmp.Node{g.Class("card"), g.H1(cmp.Text(title))}, children...)...)
}
