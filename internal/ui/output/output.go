// Package output builds the termenv outputs strata writes its log lines to.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile picks the color profile for w. NO_COLOR disables colors, and so does any w
// other than an *os.File, so captured output stays plain.
func Profile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if _, ok := w.(*os.File); !ok {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates the output for w, stderr when w is nil.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(Profile(w)), termenv.WithTTY(true))
}
