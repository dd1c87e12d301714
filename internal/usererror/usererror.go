// internal/usererror/usererror.go
//
// Site-author facing configuration errors.
//
// Context
// -------
// Some failures are not runtime faults but mistakes in how a site is put
// together, for example a component rendered on a page that never supplied
// the data it reads.  Those are reported as an `Error` carrying a short
// message plus a multi-line hint that tells the author how to fix it.  The
// dev server prints the formatted value verbatim.
//
// Notes
// -----
//   - `Error` is a comparable value type, so package-level sentinels work
//     with errors.Is.
//   - Oxford commas, two spaces after periods.
package usererror

import (
	"errors"
	"strings"
)

// Error is a configuration error with remediation hints.
type Error struct {
	Message string
	Hint    string
}

// Error renders the message and hint in the block layout the dev server
// shows to site authors.
func (e Error) Error() string {
	var sb strings.Builder
	sb.WriteString("[ConfigurationError]:\n")
	sb.WriteString(indent(e.Message))
	if e.Hint != "" {
		sb.WriteString("\nHint:\n")
		sb.WriteString(indent(e.Hint))
	}
	return sb.String()
}

// As reports whether err wraps an Error and returns it.
func As(err error) (Error, bool) {
	var ue Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return Error{}, false
}

// indent prefixes every line with a tab.  Blank lines keep the tab so the
// block stays visually aligned in terminals.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "\t" + l
	}
	return strings.Join(lines, "\n")
}
