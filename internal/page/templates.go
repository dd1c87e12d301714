// internal/page/templates.go
//
// Layout templates.  Component helpers are parsed with placeholder funcs
// and rebound per request in bind(), the same pattern the theme manager
// uses for its asset helper.
package page

import (
	"html/template"

	"github.com/yanizio/docsite/internal/route"
)

const layoutSrc = `<!doctype html>
<html lang="{{ .Locale }}"><head>{{ .Head.Render }}</head>
<body data-slug="{{ with route }}{{ .Slug }}{{ end }}">
<header>{{ template "site-title" . }}</header>
<main>
<h1>{{ .Heading }}</h1>
{{ .Body }}
</main>
</body>
</html>`

// standaloneSrc renders the site-title component without populating route
// data first.  It stands in for custom pages built outside the docs layout.
const standaloneSrc = `<!doctype html>
<html><head><title>Standalone</title></head>
<body>
<header>{{ template "site-title" . }}</header>
<p>This page is not part of the documentation layout.</p>
</body>
</html>`

const componentsSrc = `{{ define "site-title" }}<a class="site-title" href="/">{{ siteTitle }}</a>{{ end }}`

// placeholderFuncs lets templates parse before a request exists.
var placeholderFuncs = template.FuncMap{
	"siteTitle": func() (string, error) { return "", route.ErrNotDefined },
	"route":     func() (*route.Data, error) { return nil, route.ErrNotDefined },
}

var (
	layoutTpl     = mustParse("layout", layoutSrc)
	standaloneTpl = mustParse("standalone", standaloneSrc)
)

func mustParse(name, src string) *template.Template {
	t := template.Must(template.New(name).Funcs(placeholderFuncs).Parse(src))
	return template.Must(t.Parse(componentsSrc))
}
