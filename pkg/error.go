package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Position identifies a location in a declaration file.
type Position struct {
	File string
	Line int
}

// IsZero reports whether p carries no location.
func (p Position) IsZero() bool { return p.File == "" && p.Line == 0 }

// String renders p as "file line", the prefix of every fatal diagnostic.
func (p Position) String() string {
	switch {
	case p.IsZero():
		return ""
	case p.File == "":
		return "line " + strconv.Itoa(p.Line)
	case p.Line == 0:
		return p.File
	default:
		return p.File + " " + strconv.Itoa(p.Line)
	}
}

// Error is an error with optional structured logging attributes and source
// position. It implements both error and slog.LogValuer.
//
// Every Error derived from a sentinel created with [NewError] (via [Error.Wrap],
// [Error.With], or [Error.At]) matches that sentinel with [errors.Is].
type Error struct {
	msg   string
	err   error
	pos   Position
	attrs []slog.Attr
	kind  *Error
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// WrapError converts err into an *Error. Errors that already are (or wrap) an
// *Error are returned as that *Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error renders "file line: message: cause [key=value ...]", omitting the
// parts that are unset.
func (e *Error) Error() string {
	var sb strings.Builder

	if s := e.pos.String(); s != "" {
		sb.WriteString(s)
		sb.WriteString(": ")
	}

	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	sb.WriteString(strings.Join(part, ": "))

	if len(e.attrs) > 0 {
		sb.WriteString(" [")

		for i, a := range e.attrs {
			if i > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(a.Key)
			sb.WriteByte('=')
			sb.WriteString(formatAttrValue(a.Value))
		}

		sb.WriteByte(']')
	}

	return sb.String()
}

func formatAttrValue(v slog.Value) string {
	v = v.Resolve()
	if v.Kind() == slog.KindAny {
		if ss, ok := v.Any().([]string); ok {
			return "[" + strings.Join(ss, " ") + "]"
		}
	}

	s := v.String()
	if strings.ContainsAny(s, " \t\n") {
		return strconv.Quote(s)
	}

	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.kind == nil {
		return false
	}

	return e.kind == t.kind
}

// Message returns the error message without position or attributes.
func (e *Error) Message() string { return e.msg }

// Position returns the source position attached to the error, if any.
func (e *Error) Position() Position { return e.pos }

// Attr returns the value of the named attribute.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos.File != "" {
		attrs = append(attrs, slog.String("file", e.pos.File))
	}

	if e.pos.Line > 0 {
		attrs = append(attrs, slog.Int("line", e.pos.Line))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *Error) clone() *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		pos:   e.pos,
		attrs: e.attrs,
		kind:  e.kind,
	}
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// Wrapf creates a new Error wrapping a formatted error.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// At attaches a source position unless one is already set.
func (e *Error) At(pos Position) *Error {
	if !e.pos.IsZero() {
		return e
	}

	c := e.clone()
	c.pos = pos

	return c
}
