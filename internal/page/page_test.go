// internal/page/page_test.go
//
// End-to-end tests for the page renderer behind route.Guard and
// layers.Inject, wired the same way cmd/web wires them.

package page

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/docsite/internal/assets"
	"github.com/yanizio/docsite/internal/config"
	"github.com/yanizio/docsite/internal/layers"
	"github.com/yanizio/docsite/internal/route"
)

const styleBlock = "<style>@layer starlight.base, starlight.reset, starlight.core, " +
	"starlight.content, starlight.components, starlight.utils;</style>"

func newHandler(t *testing.T, dev bool) http.Handler {
	t.Helper()
	s, err := layers.Load(assets.FS, assets.LayersCSS)
	require.NoError(t, err)
	site := config.Site{Title: "Docs", Locale: "en", Dev: dev}
	return route.Guard(layers.Inject(s)(Router(site)))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestHome(t *testing.T) {
	rr := get(t, newHandler(t, true), "/")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `<html lang="en"><head>`+styleBlock+`<meta charset="utf-8">`)
	assert.Contains(t, body, "<title>Docs</title>")
	assert.Contains(t, body, `<a class="site-title" href="/">Docs</a>`)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestDocPage(t *testing.T) {
	rr := get(t, newHandler(t, true), "/docs/css-layers")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<head>"+styleBlock)
	assert.Contains(t, body, "<title>CSS cascade layers | Docs</title>")
	assert.Contains(t, body, `data-slug="css-layers"`)
	assert.Contains(t, body, "<h1>CSS cascade layers</h1>")
}

func TestUnknownDocIsSupported404(t *testing.T) {
	rr := get(t, newHandler(t, true), "/docs/missing")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "<head>"+styleBlock)
	assert.Contains(t, rr.Body.String(), "<title>Page not found | Docs</title>")
}

func TestUnknownRouteIsSupported404(t *testing.T) {
	rr := get(t, newHandler(t, true), "/no/such/page")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `data-slug="404"`)
}

func TestStandalone_DevShowsHint(t *testing.T) {
	rr := get(t, newHandler(t, true), "/standalone")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, route.ErrNotDefined.Error()+"\n", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

func TestStandalone_ProdGeneric(t *testing.T) {
	rr := get(t, newHandler(t, false), "/standalone")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "starlightRoute")
}

func TestWithoutGuard(t *testing.T) {
	h := Router(config.Site{Title: "Docs", Dev: true})
	rr := get(t, h, "/")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), route.ErrNoGuard.Error())
}
