// internal/layers/middleware_test.go
//
// Unit-tests for the Inject middleware.
//
// Each test wraps a tiny handler with Inject, fires an httptest request,
// and asserts status, headers, and body.

package layers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/docsite/internal/assets"
	"github.com/yanizio/docsite/internal/metrics"
)

// respond returns a handler writing body with the given content type.
func respond(contentType string, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status != 0 {
			w.WriteHeader(status)
		}
		_, _ = w.Write([]byte(body))
	})
}

func run(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	s, err := Load(assets.FS, assets.LayersCSS)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	Inject(s)(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	return rr
}

func TestInject_HTML(t *testing.T) {
	rr := run(t, respond("text/html", 0, "<html><head></head><body></body></html>"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<html><head><style>"+layerDecl+"</style></head><body></body></html>", rr.Body.String())
	assert.Equal(t, "text/html", rr.Header().Get("Content-Type"))
}

func TestInject_NotHTML(t *testing.T) {
	rr := run(t, respond("text/plain", 0, "Not HTML"))

	assert.Equal(t, "Not HTML", rr.Body.String())
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
}

func TestInject_NoContentType(t *testing.T) {
	// The recorder sniffs a type on first write, so only the body is checked.
	rr := run(t, respond("", 0, "<html><head></head></html>"))
	assert.Equal(t, "<html><head></head></html>", rr.Body.String())
}

func TestInject_CharsetParameter(t *testing.T) {
	rr := run(t, respond("text/html; charset=utf-8", 0, "<head></head>"))
	assert.Equal(t, "<head><style>"+layerDecl+"</style></head>", rr.Body.String())
}

func TestInject_ContentTypeCaseNotFolded(t *testing.T) {
	rr := run(t, respond("TEXT/HTML", 0, "<head></head>"))
	assert.Equal(t, "<head></head>", rr.Body.String())
}

func TestInject_PreservesStatusAndHeaders(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("X-Page", "missing")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<head></head>"))
	})
	rr := run(t, h)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "missing", rr.Header().Get("X-Page"))
	assert.Equal(t, "<head><style>"+layerDecl+"</style></head>", rr.Body.String())
}

// informationalRecorder keeps 1xx codes apart from the final status, the
// way a real connection sends them ahead of the response.
type informationalRecorder struct {
	*httptest.ResponseRecorder
	informational []int
}

func (ir *informationalRecorder) WriteHeader(code int) {
	if code >= 100 && code <= 199 && code != http.StatusSwitchingProtocols {
		ir.informational = append(ir.informational, code)
		return
	}
	ir.ResponseRecorder.WriteHeader(code)
}

func TestInject_EarlyHintsKeepFinalStatus(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusEarlyHints)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<head></head>"))
	})
	s, err := Load(assets.FS, assets.LayersCSS)
	require.NoError(t, err)

	rr := &informationalRecorder{ResponseRecorder: httptest.NewRecorder()}
	Inject(s)(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []int{http.StatusEarlyHints}, rr.informational)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "<head><style>"+layerDecl+"</style></head>", rr.Body.String())
}

func TestInject_EarlyHintsBeforeContentType(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link", "</style.css>; rel=preload; as=style")
		w.WriteHeader(http.StatusEarlyHints)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<head></head>"))
	})
	s, err := Load(assets.FS, assets.LayersCSS)
	require.NoError(t, err)

	rr := &informationalRecorder{ResponseRecorder: httptest.NewRecorder()}
	Inject(s)(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<head><style>"+layerDecl+"</style></head>", rr.Body.String())
}

func TestInject_MultipleWrites(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><he"))
		_, _ = w.Write([]byte("ad></head></html>"))
	})
	rr := run(t, h)
	assert.Equal(t, "<html><head><style>"+layerDecl+"</style></head></html>", rr.Body.String())
}

func TestInject_ContentLengthRecomputed(t *testing.T) {
	const body = "<head></head>"
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		_, _ = w.Write([]byte(body))
	})
	rr := run(t, h)

	assert.Equal(t, strconv.Itoa(rr.Body.Len()), rr.Header().Get("Content-Length"))
}

func TestInject_NoHeadUnchanged(t *testing.T) {
	rr := run(t, respond("text/html", http.StatusOK, "<p>fragment</p>"))
	assert.Equal(t, "<p>fragment</p>", rr.Body.String())
}

func TestInject_StatusOnly(t *testing.T) {
	rr := run(t, respond("text/html", http.StatusNoContent, ""))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestInject_FlushPassThrough(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: 1\n\n"))
		w.(http.Flusher).Flush()
	})
	rr := run(t, h)

	assert.True(t, rr.Flushed)
	assert.Equal(t, "data: 1\n\n", rr.Body.String())
}

func TestInject_FlushDeferredForHTML(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<head></head>"))
		w.(http.Flusher).Flush()
	})
	rr := run(t, h)

	assert.False(t, rr.Flushed)
	assert.Equal(t, "<head><style>"+layerDecl+"</style></head>", rr.Body.String())
}

func TestInject_PanicsPropagate(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	assert.PanicsWithValue(t, "boom", func() { run(t, h) })
}

func TestInject_NilSheet(t *testing.T) {
	assert.Panics(t, func() { Inject(nil) })
}

func TestInject_Counters(t *testing.T) {
	injected := testutil.ToFloat64(metrics.LayersInjectedTotal)
	missing := testutil.ToFloat64(metrics.LayersHeadMissingTotal)
	skipped := testutil.ToFloat64(metrics.LayersSkippedTotal)

	run(t, respond("text/html", 0, "<head></head>"))
	run(t, respond("text/html", 0, "<body></body>"))
	run(t, respond("application/json", 0, "{}"))

	assert.Equal(t, injected+1, testutil.ToFloat64(metrics.LayersInjectedTotal))
	assert.Equal(t, missing+1, testutil.ToFloat64(metrics.LayersHeadMissingTotal))
	assert.Equal(t, skipped+1, testutil.ToFloat64(metrics.LayersSkippedTotal))
}
