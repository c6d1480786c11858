// Package terminal provides terminal detection utilities.
package terminal

import (
	"io"

	"golang.org/x/term"
)

// fdWriter is implemented by *os.File.
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

var isTerminal = term.IsTerminal

// IsTerminal reports whether w writes to a terminal.
// Writers without a file descriptor (buffers, pipes wrapped in bufio) are never terminals.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isTerminal(int(f.Fd()))
}
