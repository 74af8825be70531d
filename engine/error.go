package engine

import "github.com/ardnew/acd/pkg"

// Predefined errors (sentinel values).
var (
	ErrUndeclared   = pkg.NewError("undeclared name")
	ErrTypeMismatch = pkg.NewError("type mismatch")
	ErrConversion   = pkg.NewError("attribute conversion failed")
	ErrNotSet       = pkg.NewError("declaration not yet set")
)
