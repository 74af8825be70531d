package types

import (
	"context"
	"log/slog"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/pkg"
)

var (
	ErrBadValue  = pkg.NewError("bad value")
	ErrRange     = pkg.NewError("value out of range")
	ErrNull      = pkg.NewError("value required")
	ErrNotFound  = pkg.NewError("file not found")
	ErrSelection = pkg.NewError("invalid selection")
	ErrPattern   = pkg.NewError("invalid pattern")
	ErrLoad      = pkg.NewError("failed to read input")
	ErrOpen      = pkg.NewError("failed to open output")
	ErrUnknown   = pkg.NewError("unknown type")
)

// SetContext is what a [Capability] sees of the declaration being set.
// Attribute lookups resolve variables and expressions and fall back to the
// schema default.
type SetContext interface {
	context.Context

	// Name is the declaration name, Program the application name.
	Name() string
	Program() string

	Attr(name string) (string, error)
	Bool(name string, def bool) (bool, error)
	Int(name string, def int) (int, error)
	Float(name string, def float64) (float64, error)

	// Assoc returns the value of an associated qualifier of this
	// declaration, and whether it was set on the command line or given a
	// non-empty default.
	Assoc(name string) (string, bool)

	// SetCalc records a calculated attribute.
	SetCalc(name, value string)

	// Seed is the name discovered by the most recent input, used to derive
	// output file names.
	Seed() string
	SetSeed(name string)

	Warn(msg string, attrs ...slog.Attr)

	Loader() Loader
	Opener() Opener
	Config() config.Config
}

// Capability computes, prompts for, and describes the value of one kind.
type Capability interface {
	// Set validates input and converts it to a value. An empty input asks
	// for the kind's fallback default.
	Set(ctx SetContext, input string) (Value, error)
	// Prompt returns the standard prompt phrase used when the declaration
	// defines none.
	Prompt(ctx SetContext) string
	// Describe returns a short description of acceptable values.
	Describe(ctx SetContext) string
}

// Deleter releases a value the engine owns. Kinds without one need no
// cleanup beyond dropping the reference.
type Deleter interface {
	Delete(v Value) error
}

// Release calls the capability's Deleter, if any, for an owned value.
func Release(c Capability, v Value) error {
	if !v.Owned || v.Null {
		return nil
	}

	if d, ok := c.(Deleter); ok {
		return d.Delete(v)
	}

	return nil
}
