package log

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/vbp1/flexlog/internal/env"
)

// colorEnabled reports whether w is a terminal that should get ANSI colors.
// A non-empty NO_COLOR turns colors off.
func colorEnabled(w io.Writer) bool {
	if v, ok := env.Lookup("NO_COLOR"); ok && v != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return enableVirtualTerminal(f)
}
