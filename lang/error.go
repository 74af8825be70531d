package lang

import "github.com/ardnew/acd/pkg"

// Predefined errors (sentinel values).
var (
	ErrRead       = pkg.NewError("failed to read declarations")
	ErrSyntax     = pkg.NewError("syntax error")
	ErrKeyword    = pkg.NewError("unknown keyword")
	ErrDuplicate  = pkg.NewError("duplicate name")
	ErrSection    = pkg.NewError("section mismatch")
	ErrAttribute  = pkg.NewError("bad attribute")
	ErrDefinition = pkg.NewError("invalid definition")
)
