package types

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/acd/config"
)

// fakeCtx is a SetContext backed by plain maps.
type fakeCtx struct {
	context.Context

	name   string
	attrs  map[string]string
	assoc  map[string]string
	calc   map[string]string
	seed   string
	warns  []string
	loader Loader
	opener Opener
	cfg    config.Config
}

func newFakeCtx(attrs map[string]string) *fakeCtx {
	if attrs == nil {
		attrs = map[string]string{}
	}

	return &fakeCtx{
		Context: context.Background(),
		name:    "value",
		attrs:   attrs,
		assoc:   map[string]string{},
		calc:    map[string]string{},
		cfg:     config.Default().WithLookup(func(string) (string, bool) { return "", false }),
	}
}

func (f *fakeCtx) Name() string    { return f.name }
func (f *fakeCtx) Program() string { return "prog" }

func (f *fakeCtx) Attr(name string) (string, error) { return f.attrs[name], nil }

func (f *fakeCtx) Bool(name string, def bool) (bool, error) {
	s, ok := f.attrs[name]
	if !ok || s == "" {
		return def, nil
	}

	return config.ParseBool(s)
}

func (f *fakeCtx) Int(name string, def int) (int, error) {
	s, ok := f.attrs[name]
	if !ok || s == "" {
		return def, nil
	}

	return strconv.Atoi(s)
}

func (f *fakeCtx) Float(name string, def float64) (float64, error) {
	s, ok := f.attrs[name]
	if !ok || s == "" {
		return def, nil
	}

	return strconv.ParseFloat(s, 64)
}

func (f *fakeCtx) Assoc(name string) (string, bool) {
	v, ok := f.assoc[name]

	return v, ok
}

func (f *fakeCtx) SetCalc(name, value string) { f.calc[name] = value }
func (f *fakeCtx) Seed() string               { return f.seed }
func (f *fakeCtx) SetSeed(name string)        { f.seed = name }

func (f *fakeCtx) Warn(msg string, _ ...slog.Attr) { f.warns = append(f.warns, msg) }

func (f *fakeCtx) Loader() Loader        { return f.loader }
func (f *fakeCtx) Opener() Opener        { return f.opener }
func (f *fakeCtx) Config() config.Config { return f.cfg }

type bufCloser struct {
	strings.Builder
	closed bool
}

func (b *bufCloser) Close() error {
	b.closed = true

	return nil
}

var _ io.WriteCloser = (*bufCloser)(nil)
