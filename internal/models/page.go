package models

// Page is the rendered view of a widget.
// It is exported so that the HTML template engine can render it.
type Page struct {
	Title     string
	Author    string
	AuthorURL string
	State     string
	Loading   bool
	Message   string
	Panels    []Panel
}

// Panel is a collapsible group of fields. Fields is empty
// when the panel is collapsed.
type Panel struct {
	ID     string
	Title  string
	Open   bool
	Fields []Field
}

type Field struct {
	Label string
	Value string
}
