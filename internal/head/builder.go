// internal/head/builder.go
//
// The Builder collects everything a documentation page puts inside its
// <head> element.  It is scoped to a single request.  Page handlers seed the
// defaults (charset, viewport, title), components may push extra tags, and
// the layout template emits the result through Render.
//
// The cascade-layer <style> block is not added here.  internal/layers
// splices it in after rendering so it is present even on pages that never
// touch a Builder.
//
// Features
// --------
//   - SetTitle            – single <title> (last call wins), suffixed with
//     the site title when one is given.
//   - Meta, Link, Script  – raw tags, deduplicated.
//   - Description         – escaped <meta name="description">.
//   - Render              – everything, in a stable order, as template.HTML.
package head

import (
	"html/template"
	"strings"
	"sync"
)

// Builder is safe for concurrent use by goroutines of the same request.
type Builder struct {
	mu sync.Mutex

	title string

	metas   []string
	links   []string
	scripts []string

	seen map[string]struct{}
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// SetTitle sets the page title.  When site is non-empty and differs from
// page, the result is “page | site”.
func (b *Builder) SetTitle(page, site string) {
	t := page
	switch {
	case page == "":
		t = site
	case site != "" && site != page:
		t = page + " | " + site
	}
	b.mu.Lock()
	b.title = t
	b.mu.Unlock()
}

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.title == "" {
		return ""
	}
	return template.HTML("<title>" + template.HTMLEscapeString(b.title) + "</title>")
}

// Description adds an escaped description meta tag.
func (b *Builder) Description(d string) {
	if d == "" {
		return
	}
	b.Meta(`<meta name="description" content="` + template.HTMLEscapeString(d) + `">`)
}

func (b *Builder) Meta(tag string)   { b.add("meta:"+tag, &b.metas, tag) }
func (b *Builder) Link(tag string)   { b.add("link:"+tag, &b.links, tag) }
func (b *Builder) Script(tag string) { b.add("script:"+tag, &b.scripts, tag) }

func (b *Builder) add(key string, tgt *[]string, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

// Render emits metas, title, links, and scripts in that order.  Tags are
// trusted, pre-escaped markup.
func (b *Builder) Render() template.HTML {
	title := b.Title()

	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	for _, group := range [][]string{b.metas, {string(title)}, b.links, b.scripts} {
		for _, tag := range group {
			sb.WriteString(tag)
		}
	}
	return template.HTML(sb.String())
}
