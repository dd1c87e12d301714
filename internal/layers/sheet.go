// internal/layers/sheet.go
//
// Cascade-layer declaration loaded once at startup.
//
// Context
// -------
// Every page must declare the site's CSS cascade layers in one fixed order
// before any other stylesheet, otherwise a theme or component stylesheet
// that happens to load first decides the precedence.  The declaration lives
// in `style/layers.css` (see internal/assets).  `Init` reads it, trims
// surrounding whitespace, and caches the result in an atomic.Pointer so the
// Inject middleware can read it lock-free from every request.
//
// Notes
// -----
//   - The splice is a literal, first-match replacement of `<head>`.  A body
//     with several `<head>` tags gets the block after the first one only.
//   - A `<head>` carrying attributes (`<head lang="en">`) does not match.
//   - Oxford commas, two spaces after periods.
package layers

import (
	"fmt"
	"io/fs"
	"strings"
	"sync/atomic"
)

const headTag = "<head>"

var current atomic.Pointer[Sheet]

// Sheet is the immutable, trimmed layer declaration.
type Sheet struct {
	css string
	tag string
}

// NewSheet builds a Sheet from raw CSS text.
func NewSheet(css string) *Sheet {
	css = strings.TrimSpace(css)
	return &Sheet{css: css, tag: "<style>" + css + "</style>"}
}

// Load reads name from fsys and returns the trimmed Sheet.
func Load(fsys fs.FS, name string) (*Sheet, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load layer css %s: %w", name, err)
	}
	return NewSheet(string(b)), nil
}

// Init loads the sheet and makes it the process-wide default.
func Init(fsys fs.FS, name string) error {
	s, err := Load(fsys, name)
	if err != nil {
		return err
	}
	current.Store(s)
	return nil
}

// Get returns the sheet stored by Init, or nil before Init ran.
func Get() *Sheet { return current.Load() }

// CSS returns the trimmed declaration.
func (s *Sheet) CSS() string { return s.css }

// Tag returns the declaration wrapped in a <style> element.
func (s *Sheet) Tag() string { return s.tag }

// Inject inserts the style element right after the first literal <head>.
// It reports false, and returns body untouched, when no <head> exists.
func (s *Sheet) Inject(body string) (string, bool) {
	i := strings.Index(body, headTag)
	if i == -1 {
		return body, false
	}
	i += len(headTag)
	return body[:i] + s.tag + body[i:], true
}
