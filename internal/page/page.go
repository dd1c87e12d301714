// internal/page/page.go
//
// Minimal documentation page renderer.
//
/*
Context
--------
This is the page-rendering phase of the request.  Supported pages build a
*route.Data, store it with route.Set, and only then execute the layout, so
components reading route data through the bound template helpers succeed.
The standalone page skips that step on purpose; its site-title component
gets route.ErrNotDefined, template execution aborts, and the error is
surfaced through middleware.Fail.

Routes
------
  GET /                 home page          (supported)
  GET /docs/{slug}      documentation page (supported, 404 when unknown)
  GET /standalone       custom page        (unsupported)

Notes
-----
  - Output is rendered into a buffer first so a failing component never
    leaves half a page on the wire.
  - route.Guard must run before this router.
  - Oxford commas, two spaces after periods.
*/
package page

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/docsite/internal/config"
	"github.com/yanizio/docsite/internal/head"
	"github.com/yanizio/docsite/internal/middleware"
	"github.com/yanizio/docsite/internal/route"
)

// view is the data handed to the layout template.
type view struct {
	Locale  string
	Head    *head.Builder
	Heading string
	Body    template.HTML
}

// Router mounts the documentation pages for site.
func Router(site config.Site) chi.Router {
	h := &handler{site: site}

	r := chi.NewRouter()
	r.Get("/", h.home)
	r.Get("/docs/{slug}", h.doc)
	r.Get("/standalone", h.standalone)
	r.NotFound(h.notFound)
	return r
}

type handler struct {
	site config.Site
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "", homeDoc)
}

func (h *handler) doc(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	d, ok := docs[slug]
	if !ok {
		h.notFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK, slug, d)
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404", notFoundDoc)
}

func (h *handler) standalone(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := bind(standaloneTpl, r.Context()).Execute(&buf, nil); err != nil {
		middleware.Fail(w, r, err, h.site.Dev)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

/*──────────────────────────── rendering ────────────────────────────────────*/

// render populates route data for the request, then executes the layout.
func (h *handler) render(w http.ResponseWriter, r *http.Request, status int, slug string, d doc) {
	data := &route.Data{
		SiteTitle:   h.site.Title,
		Title:       d.Title,
		Description: d.Description,
		Slug:        slug,
		Locale:      h.site.Locale,
	}
	if err := route.Set(r.Context(), data); err != nil {
		middleware.Fail(w, r, err, h.site.Dev)
		return
	}

	hb := head.New()
	hb.Meta(`<meta charset="utf-8">`)
	hb.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	hb.Description(data.Description)
	hb.SetTitle(data.Title, data.SiteTitle)
	hb.Link(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)

	heading := data.Title
	if heading == "" {
		heading = data.SiteTitle
	}

	var buf bytes.Buffer
	v := view{Locale: data.Locale, Head: hb, Heading: heading, Body: d.Body}
	if err := bind(layoutTpl, r.Context()).Execute(&buf, v); err != nil {
		middleware.Fail(w, r, err, h.site.Dev)
		return
	}
	writeHTML(w, status, &buf)
}

// bind clones t with component helpers that read route data from ctx.
func bind(t *template.Template, ctx context.Context) *template.Template {
	return template.Must(t.Clone()).Funcs(template.FuncMap{
		"siteTitle": func() (string, error) {
			d, err := route.Get(ctx)
			if err != nil || d == nil {
				return "", err
			}
			return d.SiteTitle, nil
		},
		"route": func() (*route.Data, error) { return route.Get(ctx) },
	})
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
