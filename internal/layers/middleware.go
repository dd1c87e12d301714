// internal/layers/middleware.go
//
// Inject middleware.
//
/*
Context
--------
Inject wraps the rest of the chain.  The response is classified the moment
the downstream handler first calls WriteHeader or Write, because that is
when its headers are final:

  - Content-Type contains "text/html" → status and body are buffered, and
    after the handler returns the style block is spliced in after <head>.
  - anything else, including no Content-Type at all → the writer switches
    to pass-through and nothing is buffered.

Workflow
--------
 1. Wrap w in a capture writer and call next.
 2. For HTML, splice via Sheet.Inject, fix Content-Length when the
    handler set one, then write the buffered status and the new body.
 3. Update counters.

Notes
-----
  - The content-type test is a plain substring match on the header as the
    handler set it.  No case folding.
  - Flush on a buffered HTML response is a no-op until the splice.
  - 1xx codes except 101 (Early Hints and the like) go straight to the
    client and neither classify the response nor count as its status.
  - Panics from next propagate untouched; a partially buffered body is
    dropped with them.
  - Oxford commas, two spaces after periods.
*/
package layers

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/docsite/internal/metrics"
)

// Inject returns middleware that adds s to the <head> of HTML responses.
func Inject(s *Sheet) func(http.Handler) http.Handler {
	if s == nil {
		panic("layers.Inject: nil sheet, call layers.Init first")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w}
			next.ServeHTTP(cw, r)
			cw.finish(s, r)
		})
	}
}

/*──────────────────────────── capture writer ───────────────────────────────*/

// captureWriter buffers HTML responses and forwards everything else.
type captureWriter struct {
	http.ResponseWriter

	decided bool
	html    bool
	status  int // buffered status, 0 when the handler never set one
	buf     bytes.Buffer
}

// decide classifies the response once, from the headers as they stand.
func (cw *captureWriter) decide() {
	if cw.decided {
		return
	}
	cw.decided = true
	cw.html = isHTML(cw.Header().Get("Content-Type"))
	if !cw.html {
		metrics.LayersSkippedTotal.Inc()
	}
}

func (cw *captureWriter) WriteHeader(code int) {
	// Informational codes other than 101 are not the final status.
	if code >= 100 && code <= 199 && code != http.StatusSwitchingProtocols {
		cw.ResponseWriter.WriteHeader(code)
		return
	}
	cw.decide()
	if !cw.html {
		cw.ResponseWriter.WriteHeader(code)
		return
	}
	if cw.status == 0 {
		cw.status = code
	}
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.decide()
	if !cw.html {
		return cw.ResponseWriter.Write(b)
	}
	if cw.status == 0 {
		cw.status = http.StatusOK
	}
	return cw.buf.Write(b)
}

// Flush forwards only on pass-through responses.
func (cw *captureWriter) Flush() {
	if !cw.decided || cw.html {
		return
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (cw *captureWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

// finish writes the buffered HTML response, spliced when possible.
func (cw *captureWriter) finish(s *Sheet, r *http.Request) {
	cw.decide()
	if !cw.html {
		return
	}

	body, ok := s.Inject(cw.buf.String())
	if ok {
		metrics.LayersInjectedTotal.Inc()
		if cw.Header().Get("Content-Length") != "" {
			cw.Header().Set("Content-Length", strconv.Itoa(len(body)))
		}
	} else {
		metrics.LayersHeadMissingTotal.Inc()
		zap.S().Debugw("html response without <head>", "path", r.URL.Path)
	}

	if cw.status != 0 {
		cw.ResponseWriter.WriteHeader(cw.status)
	}
	if body == "" {
		return
	}
	if _, err := io.WriteString(cw.ResponseWriter, body); err != nil {
		zap.S().Debugw("write html response", "path", r.URL.Path, "err", err)
	}
}

// isHTML applies the substring test on the raw header value.
func isHTML(contentType string) bool {
	return strings.Contains(contentType, "text/html")
}
