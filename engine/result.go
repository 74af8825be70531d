package engine

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/ardnew/acd/cmdline"
	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/types"
)

// Result holds the values of a completed run.
type Result struct {
	g        *lang.Graph
	controls cmdline.Controls
	line     string
	closed   bool
}

// Graph returns the graph whose declarations hold the values.
func (r *Result) Graph() *lang.Graph { return r.g }

// Controls returns the controls in effect for the run.
func (r *Result) Controls() cmdline.Controls { return r.controls }

// CommandLine returns the canonical form of the matched command line.
func (r *Result) CommandLine() string { return r.line }

// decl finds a qualifier or variable by name. An associated qualifier is
// named "assoc_master".
func (r *Result) decl(name string) (*lang.Decl, error) {
	if d := r.g.Find(name); d != nil {
		return d, nil
	}

	if base, master, ok := strings.Cut(name, "_"); ok {
		if m := r.g.Find(master); m != nil {
			if d := r.g.AssocNamed(m, base); d != nil {
				return d, nil
			}
		}
	}

	return nil, ErrUndeclared.With(slog.String("name", name))
}

// Value returns the final value of the named declaration.
func (r *Result) Value(name string) (types.Value, error) {
	d, err := r.decl(name)
	if err != nil {
		return types.Value{}, err
	}

	if !d.Has(lang.FlagSet) {
		return types.Value{}, ErrNotSet.With(slog.String("name", d.Name))
	}

	return d.Value, nil
}

// Text returns the printable value of the named declaration.
func (r *Result) Text(name string) (string, error) {
	v, err := r.Value(name)

	return v.Text, err
}

// Get returns the native value of the named declaration as a T. A null
// value yields the zero T.
func Get[T any](r *Result, name string) (T, error) {
	var zero T

	v, err := r.Value(name)
	if err != nil || v.Null {
		return zero, err
	}

	t, ok := v.Native.(T)
	if !ok {
		return zero, ErrTypeMismatch.With(
			slog.String("name", name),
			slog.String("want", fmt.Sprintf("%T", zero)),
			slog.String("have", fmt.Sprintf("%T", v.Native)),
		)
	}

	return t, nil
}

// Typed fetches of [Get].

func (r *Result) Bool(name string) (bool, error) { return Get[bool](r, name) }
func (r *Result) Int(name string) (int, error) { return Get[int](r, name) }
func (r *Result) Float(name string) (float64, error) { return Get[float64](r, name) }
func (r *Result) String(name string) (string, error) { return Get[string](r, name) }
func (r *Result) List(name string) ([]string, error) { return Get[[]string](r, name) }
func (r *Result) Range(name string) (types.Range, error) { return Get[types.Range](r, name) }
func (r *Result) Array(name string) ([]float64, error) { return Get[[]float64](r, name) }
func (r *Result) Data(name string) (*types.Data, error) { return Get[*types.Data](r, name) }
func (r *Result) Output(name string) (*types.Output, error) { return Get[*types.Output](r, name) }

// Values iterates the set qualifiers and variables in file order, keyed by
// name. Associated qualifiers are keyed "assoc_master".
func (r *Result) Values() iter.Seq2[string, types.Value] {
	return func(yield func(string, types.Value) bool) {
		for _, d := range r.g.All() {
			if !d.Has(lang.FlagSet) {
				continue
			}

			name := d.Name
			if d.IsAssoc() {
				name += "_" + r.g.Master(d).Name
			}

			if !yield(name, d.Value) {
				return
			}
		}
	}
}

// Close releases every owned value, latest first. Close is idempotent.
func (r *Result) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true

	var errs []error

	for i := r.g.Len() - 1; i >= 0; i-- {
		d := r.g.Decl(i)

		desc := r.g.Descriptor(d)
		if desc == nil || !d.Has(lang.FlagSet) {
			continue
		}

		if err := types.Release(desc.Cap, d.Value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.Name, err))
		}

		d.Value = types.Value{Text: d.Value.Text, Null: d.Value.Null}
	}

	return errors.Join(errs...)
}
