package tmplog

import (
	"io"

	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

// isTerminal reports whether w is backed by a terminal file descriptor.
// Writers wrapped by LOG_OUTPUT tees are never terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
