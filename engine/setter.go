package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/pkg"
	"github.com/ardnew/acd/types"
)

// setAll visits every declaration in file order and sets its value.
func (e *Engine) setAll(ctx context.Context) error {
	for i, d := range e.g.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		e.current = i

		var err error

		switch {
		case d.Level == types.LevelVariable:
			err = e.setVariable(ctx, d)
		case d.IsQualifier():
			err = e.set(ctx, d)
		}

		if err != nil {
			return err
		}
	}

	e.current = e.g.Len()

	return nil
}

func (e *Engine) setVariable(ctx context.Context, d *lang.Decl) error {
	v, err := e.Attr(ctx, d, types.AttrDefault)
	if err != nil {
		return err
	}

	d.Value = types.Value{Native: v, Text: v}
	d.Mark(lang.FlagSet)

	e.logger.TraceContext(ctx, "variable", slog.String("name", d.Name), slog.String("value", v))

	return nil
}

// required reports whether d must have a value: a parameter, a standard
// qualifier, or an additional one when -options is in effect.
func (e *Engine) required(ctx context.Context, d *lang.Decl) (bool, error) {
	if d.Param > 0 {
		return true, nil
	}

	std, err := e.Bool(ctx, d, types.AttrStandard, false)
	if err != nil || std {
		return std, err
	}

	add, err := e.Bool(ctx, d, types.AttrAdditional, false)
	if err != nil {
		return false, err
	}

	return add && e.controls.Options, nil
}

// input returns the best guess at the value of d before prompting: the
// command-line value, a standard stream under -filter or -stdout, or the
// resolved default.
func (e *Engine) input(ctx context.Context, d *lang.Decl, desc *types.Descriptor) (string, error) {
	if d.Has(lang.FlagDefined) {
		return d.Input, nil
	}

	if e.controls.Filter && !e.stdin && d.Param > 0 && desc.Group == types.GroupInput {
		e.stdin = true

		return types.Stdin, nil
	}

	if e.controls.Stdout && !e.stdout && desc.Group == types.GroupOutput {
		e.stdout = true

		return types.Stdout, nil
	}

	return e.Attr(ctx, d, types.AttrDefault)
}

// promptText returns the explicit prompt, information or help text of d,
// or the kind's standard phrase.
func (e *Engine) promptText(ctx context.Context, d *lang.Decl, c types.SetContext, desc *types.Descriptor) (string, error) {
	for _, name := range []string{types.AttrPrompt, types.AttrInformation, types.AttrHelp} {
		s, err := e.Attr(ctx, d, name)
		if err != nil {
			return "", err
		}

		if s = strings.TrimSpace(s); s != "" {
			return s, nil
		}
	}

	return desc.Cap.Prompt(c), nil
}

// set runs the prompt-and-set cycle for one qualifier. A rejected value is
// prompted for again while interactive and retries remain; otherwise the
// rejection is returned.
func (e *Engine) set(ctx context.Context, d *lang.Decl) error {
	desc := e.g.Descriptor(d)
	sc := e.setContext(ctx, d)

	if d.Has(lang.FlagNull) && desc.Nullable {
		d.Value = types.NullValue()
		d.Mark(lang.FlagSet)

		return nil
	}

	required, err := e.required(ctx, d)
	if err != nil {
		return err
	}

	input, err := e.input(ctx, d, desc)
	if err != nil {
		return err
	}

	interactive := e.controls.Interactive() && e.prompter != nil && !d.IsAssoc()

	attempts := 1
	if interactive {
		attempts += max(e.cfg.Retries, 0)
	}

	ask := interactive && required && desc.Prompt && !d.Has(lang.FlagDefined)

	var (
		lastErr  error
		rejected string
	)

	for attempt := 1; attempt <= attempts; attempt++ {
		value := input

		if ask {
			answer, err := e.ask(ctx, d, sc, desc, input, attempt, rejected, lastErr)
			if err != nil {
				return err
			}

			if strings.TrimSpace(answer) != "" {
				value = answer
			}
		}

		v, err := desc.Cap.Set(sc, value)
		if err == nil {
			e.store(ctx, d, v)

			return nil
		}

		lastErr, rejected = err, value

		if attempt < attempts {
			if e.controls.Error {
				e.logger.ErrorContext(ctx, "rejected value",
					slog.String("name", d.Name),
					slog.String("value", value),
					slog.Any("error", err))
			}

			ask = true
		}
	}

	return pkg.WrapError(lastErr).At(e.pos(d)).With(
		slog.String("name", d.Name),
		slog.String("value", rejected),
	)
}

func (e *Engine) ask(
	ctx context.Context,
	d *lang.Decl,
	sc types.SetContext,
	desc *types.Descriptor,
	def string,
	attempt int,
	rejected string,
	lastErr error,
) (string, error) {
	text, err := e.promptText(ctx, d, sc, desc)
	if err != nil {
		return "", err
	}

	return e.prompter.Prompt(ctx, Request{
		Name:     d.Name,
		Text:     text,
		Default:  def,
		Help:     desc.Cap.Describe(sc),
		Attempt:  attempt,
		Rejected: rejected,
		Err:      lastErr,
	})
}

// store records the final value of d.
func (e *Engine) store(ctx context.Context, d *lang.Decl, v types.Value) {
	d.Value = v
	d.Mark(lang.FlagSet)

	if p, ok := d.Calc["protein"]; ok {
		e.protein = strings.EqualFold(p, "Y")
	}

	e.logger.TraceContext(ctx, "set",
		slog.String("name", d.Name),
		slog.String("value", v.Text),
		slog.Bool("null", v.Null))
}
