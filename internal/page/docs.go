package page

import "html/template"

// doc is one built-in documentation entry.
type doc struct {
	Title       string
	Description string
	Body        template.HTML
}

// docs is the built-in content set served under /docs/{slug}.
var docs = map[string]doc{
	"getting-started": {
		Title:       "Getting started",
		Description: "Install the site and write a first page.",
		Body:        "<p>Create a page under <code>docs/</code> and run the dev server.</p>",
	},
	"css-layers": {
		Title:       "CSS cascade layers",
		Description: "How style precedence is fixed on every page.",
		Body: "<p>Every HTML page declares <code>starlight.base</code>, <code>starlight.reset</code>, " +
			"<code>starlight.core</code>, <code>starlight.content</code>, <code>starlight.components</code>, " +
			"and <code>starlight.utils</code> in that order.</p>",
	},
}

var notFoundDoc = doc{
	Title:       "Page not found",
	Description: "The requested page does not exist.",
	Body:        "<p>Check the URL or go back to the home page.</p>",
}

var homeDoc = doc{
	Title:       "",
	Description: "Project documentation.",
	Body:        `<ul><li><a href="/docs/getting-started">Getting started</a></li><li><a href="/docs/css-layers">CSS cascade layers</a></li></ul>`,
}
