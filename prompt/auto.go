package prompt

import (
	"os"

	"golang.org/x/term"

	"github.com/ardnew/acd/engine"
)

// New returns a [TUI] when both in and out are terminals, otherwise a
// [Line] prompter.
func New(in, out *os.File, opts ...Option) engine.Prompter {
	o := makeOptions(opts...)

	if !o.plain && IsTerminal(in) && IsTerminal(out) {
		return NewTUI(in, out, opts...)
	}

	return NewLine(in, out, opts...)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
