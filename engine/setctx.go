package engine

import (
	"context"
	"log/slog"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/types"
)

// setContext is the view of one declaration given to its capability.
type setContext struct {
	context.Context

	e *Engine
	d *lang.Decl
}

var _ types.SetContext = setContext{}

func (e *Engine) setContext(ctx context.Context, d *lang.Decl) setContext {
	return setContext{Context: ctx, e: e, d: d}
}

func (c setContext) Name() string    { return c.d.Name }
func (c setContext) Program() string { return c.e.g.Program }

func (c setContext) Attr(name string) (string, error) {
	return c.e.Attr(c, c.d, name)
}

func (c setContext) Bool(name string, def bool) (bool, error) {
	return c.e.Bool(c, c.d, name, def)
}

func (c setContext) Int(name string, def int) (int, error) {
	return c.e.Int(c, c.d, name, def)
}

func (c setContext) Float(name string, def float64) (float64, error) {
	return c.e.Float(c, c.d, name, def)
}

// Assoc returns the value of associated qualifier name. Associated
// qualifiers precede their master, so they are set by the time it is.
func (c setContext) Assoc(name string) (string, bool) {
	a := c.e.g.AssocNamed(c.d, name)
	if a == nil {
		return "", false
	}

	switch {
	case a.Has(lang.FlagSet):
		return a.Value.Text, !a.Value.Null && a.Value.Text != ""
	case a.Has(lang.FlagDefined):
		return a.Input, !a.Has(lang.FlagNull)
	}

	v, err := c.e.Attr(c, a, types.AttrDefault)
	if err != nil {
		return "", false
	}

	return v, v != ""
}

func (c setContext) SetCalc(name, value string) {
	if c.d.Calc == nil {
		c.d.Calc = make(map[string]string)
	}

	c.d.Calc[name] = value
}

func (c setContext) Seed() string        { return c.e.seed }
func (c setContext) SetSeed(name string) { c.e.seed = name }

func (c setContext) Warn(msg string, attrs ...slog.Attr) {
	if !c.e.controls.Warning {
		return
	}

	c.e.logger.WarnContext(c, msg, attrs...)
}

func (c setContext) Loader() types.Loader  { return c.e.loader }
func (c setContext) Opener() types.Opener  { return c.e.opener }
func (c setContext) Config() config.Config { return c.e.cfg }
