package prompt

import "github.com/ardnew/acd/pkg"

// Predefined errors (sentinel values).
var (
	ErrEOF         = pkg.NewError("end of input while prompting")
	ErrCancelled   = pkg.NewError("prompt cancelled")
	ErrOutOfBounds = pkg.NewError("history index out of bounds")
)
