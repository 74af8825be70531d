package engine

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/eval"
	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/pkg"
	"github.com/ardnew/acd/types"
)

// Names resolvable without a declaration.
const (
	BuiltinProgram = "acdprogram"
	BuiltinVersion = "acdversion"
	BuiltinProtein = "acdprotein"
)

// Attr returns the resolved value of attribute name of d. Unset
// attributes take their schema default; calculated attributes are
// available once d is set.
func (e *Engine) Attr(ctx context.Context, d *lang.Decl, name string) (string, error) {
	raw, calc, ok := e.raw(d, name)
	if !ok {
		return "", eval.ErrUnresolved.At(e.pos(d)).With(
			slog.String("name", d.Name),
			slog.String("attribute", name),
		)
	}

	if calc {
		return raw, nil
	}

	v, err := e.resolver.Resolve(ctx, raw)
	if err != nil {
		return "", pkg.WrapError(err).At(e.pos(d)).With(
			slog.String("name", d.Name),
			slog.String("attribute", name),
		)
	}

	return v, nil
}

// raw finds the unresolved value of attribute name: the kind's own
// attributes, then the shared qualifier attributes, then calculated ones.
// calc reports a calculated value, which is never resolved further.
func (e *Engine) raw(d *lang.Decl, name string) (value string, calc, ok bool) {
	name = strings.ToLower(name)

	if desc := e.g.Descriptor(d); desc != nil {
		if def, found := desc.Attrs.Find(name); found {
			return attrOr(d, name, def.Default), false, true
		}
	}

	if d.IsQualifier() {
		if def, found := types.DefaultAttrs().Find(name); found {
			return attrOr(d, name, def.Default), false, true
		}
	} else if v, found := d.Attr(name); found {
		return v, false, true
	} else if def, found := e.g.Schema(d).Find(name); found {
		return def.Default, false, true
	}

	if d.Has(lang.FlagSet) {
		if v, found := d.Calc[name]; found {
			return v, true, true
		}
	}

	return "", false, false
}

func attrOr(d *lang.Decl, name, def string) string {
	if v, ok := d.Attr(name); ok {
		return v
	}

	return def
}

// Lookup implements [eval.Lookup]. The default attribute of a set
// declaration is its printable value.
func (e *Engine) Lookup(ctx context.Context, name, attr string) (string, error) {
	if strings.EqualFold(attr, eval.DefaultAttr) {
		if v, ok := e.builtin(name); ok {
			return v, nil
		}
	}

	d := e.g.Find(name)
	if d == nil {
		return "", eval.ErrUnresolved.With(slog.String("name", name))
	}

	if d.Index >= e.current && !d.Has(lang.FlagSet) {
		return "", ErrNotSet.At(e.pos(d)).With(
			slog.String("name", d.Name),
			slog.String("attribute", attr),
		)
	}

	d.Uses++

	if strings.EqualFold(attr, eval.DefaultAttr) && d.Has(lang.FlagSet) {
		return d.Value.Text, nil
	}

	return e.Attr(ctx, d, attr)
}

func (e *Engine) builtin(name string) (string, bool) {
	switch strings.ToLower(name) {
	case BuiltinProgram:
		return e.g.Program, true
	case BuiltinVersion:
		return pkg.Version(), true
	case BuiltinProtein:
		return types.YesNo(e.protein), true
	default:
		return "", false
	}
}

func (e *Engine) conversion(d *lang.Decl, name, value, kind string, err error) error {
	return ErrConversion.At(e.pos(d)).With(
		slog.String("name", d.Name),
		slog.String("attribute", name),
		slog.String("value", value),
		slog.String("type", kind),
	).Wrap(err)
}

// Bool returns attribute name of d as a boolean, or def when it is empty.
func (e *Engine) Bool(ctx context.Context, d *lang.Decl, name string, def bool) (bool, error) {
	s, err := e.Attr(ctx, d, name)
	if err != nil || strings.TrimSpace(s) == "" {
		return def, err
	}

	b, err := config.ParseBool(s)
	if err != nil {
		return def, e.conversion(d, name, s, "boolean", err)
	}

	return b, nil
}

// Int returns attribute name of d as an int, or def when it is empty.
// Integral floating-point spellings are accepted.
func (e *Engine) Int(ctx context.Context, d *lang.Decl, name string, def int) (int, error) {
	n, err := e.Int64(ctx, d, name, int64(def))
	if err != nil {
		return def, err
	}

	if n < math.MinInt || n > math.MaxInt {
		return def, e.conversion(d, name, strconv.FormatInt(n, 10), "integer", strconv.ErrRange)
	}

	return int(n), nil
}

// Int64 returns attribute name of d as an int64, or def when it is empty.
func (e *Engine) Int64(ctx context.Context, d *lang.Decl, name string, def int64) (int64, error) {
	s, err := e.Attr(ctx, d, name)
	if err != nil {
		return def, err
	}

	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	if s == "" {
		return def, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n, nil
	}

	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return def, e.conversion(d, name, s, "integer", err)
	}

	return int64(f), nil
}

// Float returns attribute name of d as a float64, or def when it is empty.
func (e *Engine) Float(ctx context.Context, d *lang.Decl, name string, def float64) (float64, error) {
	s, err := e.Attr(ctx, d, name)
	if err != nil || strings.TrimSpace(s) == "" {
		return def, err
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def, e.conversion(d, name, s, "float", err)
	}

	return f, nil
}

// Char returns attribute name of d as a single character, or def when it
// is empty.
func (e *Engine) Char(ctx context.Context, d *lang.Decl, name string, def rune) (rune, error) {
	s, err := e.Attr(ctx, d, name)
	if err != nil {
		return def, err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return def, e.conversion(d, name, s, "character", strconv.ErrSyntax)
	}

	r, _ := utf8.DecodeRuneInString(s)

	return r, nil
}
