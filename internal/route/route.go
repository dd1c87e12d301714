// internal/route/route.go
//
// Per-request route data and its guarded accessor.
//
/*
Context
--------
Page rendering fills a `*Data` value (site title, page title, slug, and
locale) that components read while the page is being built.  Components can
also end up on pages that never run that phase, for example a custom
standalone route.  Instead of handing those components a nil pointer, the
slot is an explicit two-state value:

  - Unset:   `Get` returns ErrNotDefined, a usererror.Error with hints.
  - Set(*d): `Get` returns exactly the pointer that was stored.

The Guard middleware installs a fresh unset Slot for every request, so
nothing leaks between requests.

Notes
-----
  - Writes are plain assignments; the last Set wins.
  - Oxford commas, two spaces after periods.
*/
package route

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/yanizio/docsite/internal/metrics"
	"github.com/yanizio/docsite/internal/usererror"
)

// Name is the slot name shown in diagnostics.
const Name = "starlightRoute"

// ErrNotDefined is returned when route data is read before page rendering
// populated it.
var ErrNotDefined = usererror.Error{
	Message: "`locals." + Name + "` is not defined",
	Hint: "This usually means a component that accesses `locals." + Name + "` is being " +
		"rendered outside of a Starlight page, which is not supported.\n" +
		"\n" +
		"If this is a component you authored, you can do one of the following:\n" +
		"\n" +
		"1. Avoid using this component in non-Starlight pages.\n" +
		"2. Check the error returned when reading `locals." + Name + "` and handle the " +
		"cases where `" + Name + "` is not available.\n" +
		"\n" +
		"If this is a Starlight built-in or third-party component, you may need to " +
		"report a bug or avoid this use of the component.",
}

// ErrNoGuard is returned by Set when Guard did not run for the request.
var ErrNoGuard = errors.New("route: guard middleware not installed")

// Data is the page metadata supplied by the rendering phase.
type Data struct {
	SiteTitle   string
	Title       string
	Description string
	Slug        string
	Locale      string
}

/*──────────────────────────── slot ─────────────────────────────────────────*/

// Slot holds the route data for one request.  The zero value is unset.
// Once Set has run the slot stays set, even when the value written was nil.
type Slot struct {
	mu   sync.RWMutex
	set  bool
	data *Data
}

// Get returns the stored data or ErrNotDefined.
func (s *Slot) Get() (*Data, error) {
	s.mu.RLock()
	d, set := s.data, s.set
	s.mu.RUnlock()
	if !set {
		metrics.RouteUnsetReadsTotal.Inc()
		zap.S().Warnw("route data read before it was set", "slot", Name)
		return nil, ErrNotDefined
	}
	return d, nil
}

// Set stores d, replacing whatever was there.  A nil d is stored as is and
// reads back as (nil, nil).
func (s *Slot) Set(d *Data) {
	s.mu.Lock()
	s.set = true
	s.data = d
	s.mu.Unlock()
}

// IsSet reports whether Set has been called.
func (s *Slot) IsSet() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

/*──────────────────────────── context helpers ──────────────────────────────*/

type ctxKey struct{} // unexported, collision-proof

// WithSlot returns a child context carrying a fresh unset Slot.
func WithSlot(ctx context.Context) (context.Context, *Slot) {
	s := &Slot{}
	return context.WithValue(ctx, ctxKey{}, s), s
}

// SlotFrom returns the Slot installed by Guard, or nil.
func SlotFrom(ctx context.Context) *Slot {
	s, _ := ctx.Value(ctxKey{}).(*Slot)
	return s
}

// Get reads the route data for ctx.  A missing slot is treated the same as
// an unset one.
func Get(ctx context.Context) (*Data, error) {
	s := SlotFrom(ctx)
	if s == nil {
		metrics.RouteUnsetReadsTotal.Inc()
		zap.S().Warnw("route data read without guard", "slot", Name)
		return nil, ErrNotDefined
	}
	return s.Get()
}

// MustGet is Get for callers that treat missing route data as fatal.
func MustGet(ctx context.Context) *Data {
	d, err := Get(ctx)
	if err != nil {
		panic(err)
	}
	return d
}

// Set stores d in the request's slot.
func Set(ctx context.Context, d *Data) error {
	s := SlotFrom(ctx)
	if s == nil {
		return ErrNoGuard
	}
	s.Set(d)
	return nil
}

/*──────────────────────────── middleware ───────────────────────────────────*/

// Guard installs an unset Slot on every request before calling next.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := WithSlot(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
