// internal/middleware/errors.go
//
// Error surfacing for page handlers.
//
// Context
// -------
// Configuration mistakes (usererror.Error) are meant to be read by the site
// author.  In dev mode `Fail` prints the formatted message and hint as
// text/plain so the author sees it in the browser; in production the
// client only gets a generic 500 and the hint goes to the log.  `Recover`
// gives panics, including route.MustGet, the same treatment.
//
// Notes
// -----
// • Neither helper retries or hides the error; it is always logged.
// • Oxford commas, two spaces after periods.

package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/docsite/internal/metrics"
	"github.com/yanizio/docsite/internal/usererror"
)

// Fail logs err and writes a 500.  dev controls whether the client sees
// the error text.
func Fail(w http.ResponseWriter, r *http.Request, err error, dev bool) {
	msg := err.Error()
	if ue, ok := usererror.As(err); ok {
		zap.S().Errorw("configuration error",
			"path", r.URL.Path,
			"msg", ue.Message,
			"hint", ue.Hint,
			"err", err,
		)
		msg = ue.Error() // drop template/wrapping prefixes for the author
	} else {
		zap.S().Errorw("request failed", "path", r.URL.Path, "err", err)
	}

	if !dev {
		msg = http.StatusText(http.StatusInternalServerError)
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

// Recover turns a handler panic into Fail.  http.ErrAbortHandler is
// re-panicked so net/http can abort the connection quietly.
func Recover(dev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				metrics.PanicsRecoveredTotal.Inc()

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				Fail(w, r, err, dev)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
