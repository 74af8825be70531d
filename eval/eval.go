package eval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/acd/log"
	"github.com/ardnew/acd/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrUnresolved = pkg.NewError("unresolved variable")
	ErrRecursion  = pkg.NewError("variable resolution too deep")
	ErrExpression = pkg.NewError("expression evaluation failed")
)

// Default pass limits of [Resolver.Resolve].
const (
	DefaultWarnDepth = 16
	DefaultMaxDepth  = 64
)

// DefaultAttr is the attribute a reference without one names.
const DefaultAttr = "default"

// Lookup returns the value of attribute attr of the declaration named name.
type Lookup interface {
	Lookup(ctx context.Context, name, attr string) (string, error)
}

// LookupFunc adapts a function to a [Lookup].
type LookupFunc func(ctx context.Context, name, attr string) (string, error)

// Lookup implements [Lookup].
func (f LookupFunc) Lookup(ctx context.Context, name, attr string) (string, error) {
	return f(ctx, name, attr)
}

// Resolver substitutes variable references and evaluates expressions.
type Resolver struct {
	lookup    Lookup
	values    func(name string) (string, bool)
	logger    log.Logger
	warnDepth int
	maxDepth  int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup sets the variable source. Without one every reference is
// unresolved.
func WithLookup(l Lookup) Option {
	return func(r *Resolver) {
		r.lookup = l
	}
}

// WithValues sets the source of @(value: NAME).
func WithValues(values func(name string) (string, bool)) Option {
	return func(r *Resolver) {
		r.values = values
	}
}

// WithLogger sets the logger for warnings about unmatched expressions and
// deep resolution.
func WithLogger(logger log.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithDepth sets the number of passes after which a warning is logged and
// the number at which resolution fails.
func WithDepth(warn, limit int) Option {
	return func(r *Resolver) {
		r.warnDepth, r.maxDepth = warn, limit
	}
}

// New returns a Resolver configured by opts.
func New(opts ...Option) *Resolver {
	r := &Resolver{warnDepth: DefaultWarnDepth, maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Resolve replaces every marker in text, scanning the result again until
// no markers remain or a pass changes nothing. Text without markers is
// returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, text string) (string, error) {
	for pass := 1; hasMarkers(text); pass++ {
		if pass > r.maxDepth {
			return "", ErrRecursion.With(
				slog.String("text", text),
				slog.Int("passes", r.maxDepth),
			)
		}

		if pass == r.warnDepth+1 {
			r.logger.WarnContext(ctx, "deep variable resolution",
				slog.String("text", text),
				slog.Int("passes", pass))
		}

		out, err := r.render(ctx, parseSegments(text))
		if err != nil {
			return "", err
		}

		if out == text {
			break
		}

		text = out
	}

	return text, nil
}

// render evaluates one pass over segs.
func (r *Resolver) render(ctx context.Context, segs []segment) (string, error) {
	var sb strings.Builder

	for _, s := range segs {
		switch s.kind {
		case segmentText:
			sb.WriteString(s.text)

		case segmentVar:
			v, err := r.variable(ctx, s.name, s.attr)
			if err != nil {
				return "", err
			}

			sb.WriteString(v)

		case segmentExpr:
			body, err := r.render(ctx, s.inner)
			if err != nil {
				return "", err
			}

			v, err := r.expression(ctx, body)
			if err != nil {
				return "", err
			}

			sb.WriteString(v)
		}
	}

	return sb.String(), nil
}

func (r *Resolver) variable(ctx context.Context, name, attr string) (string, error) {
	if attr == "" {
		attr = DefaultAttr
	}

	if r.lookup == nil {
		return "", ErrUnresolved.With(slog.String("name", name), slog.String("attribute", attr))
	}

	v, err := r.lookup.Lookup(ctx, name, attr)
	if err != nil {
		return "", err
	}

	r.logger.TraceContext(ctx, "variable",
		slog.String("name", name),
		slog.String("attribute", attr),
		slog.String("value", v))

	return v, nil
}

// expression evaluates body, or returns it unchanged inside its marker with
// a warning when no expression form matches.
func (r *Resolver) expression(ctx context.Context, body string) (string, error) {
	text := strings.TrimSpace(body)

	for _, form := range forms {
		v, ok, err := form.eval(r, text)
		if err != nil {
			return "", ErrExpression.With(
				slog.String("form", form.name),
				slog.String("expression", text),
			).Wrap(err)
		}

		if ok {
			r.logger.TraceContext(ctx, "expression",
				slog.String("form", form.name),
				slog.String("expression", text),
				slog.String("value", v))

			return v, nil
		}
	}

	r.logger.WarnContext(ctx, "unrecognized expression", slog.String("expression", text))

	return "@(" + body + ")", nil
}
