package cmdline

import "github.com/ardnew/acd/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnknown       = pkg.NewError("unknown qualifier")
	ErrAmbiguous     = pkg.NewError("ambiguous qualifier")
	ErrMissingValue  = pkg.NewError("missing value for qualifier")
	ErrTooManyParams = pkg.NewError("too many parameters")
	ErrUnconsumed    = pkg.NewError("value not used")
)
