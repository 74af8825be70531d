package engine

import (
	"context"
	"log/slog"

	"github.com/ardnew/acd/cmdline"
	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/eval"
	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/log"
	"github.com/ardnew/acd/pkg"
	"github.com/ardnew/acd/types"
)

// Engine holds the state of one run over a graph.
type Engine struct {
	g        *lang.Graph
	cfg      config.Config
	logger   log.Logger
	loader   types.Loader
	opener   types.Opener
	prompter Prompter
	controls cmdline.Controls
	resolver *eval.Resolver

	// current is the index of the declaration being set. Declarations at or
	// after it cannot be referenced.
	current int
	seed    string
	protein bool
	stdin   bool
	stdout  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the process configuration.
func WithConfig(c config.Config) Option {
	return func(e *Engine) {
		e.cfg = c
	}
}

// WithLogger sets the logger for warnings and tracing.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLoader sets the collaborator reading input data.
func WithLoader(l types.Loader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithOpener sets the collaborator opening outputs.
func WithOpener(o types.Opener) Option {
	return func(e *Engine) {
		e.opener = o
	}
}

// WithPrompter sets the prompter. Without one a run never prompts.
func WithPrompter(p Prompter) Option {
	return func(e *Engine) {
		e.prompter = p
	}
}

// New returns an Engine for g. Inputs are read with [types.FileLoader] and
// outputs opened with [types.FileOpener] unless replaced.
func New(g *lang.Graph, opts ...Option) *Engine {
	e := &Engine{
		g:        g,
		cfg:      config.Default(),
		opener:   types.FileOpener{},
		controls: cmdline.DefaultControls(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.loader == nil {
		e.loader = types.FileLoader{Data: e.cfg.DataFile}
	}

	e.resolver = eval.New(
		eval.WithLookup(e),
		eval.WithValues(e.cfg.Value),
		eval.WithLogger(e.logger),
	)

	return e
}

// Graph returns the graph the engine runs.
func (e *Engine) Graph() *lang.Graph { return e.g }

// Controls returns the controls in effect.
func (e *Engine) Controls() cmdline.Controls { return e.controls }

// Run matches args and sets every declaration. With -help or -version
// only matching is done. On failure the values already set are released.
func (e *Engine) Run(ctx context.Context, args []string) (*Result, error) {
	controls := cmdline.DefaultControls()
	controls.Auto = e.cfg.Auto
	controls.Options = e.cfg.Options

	m := cmdline.New(e.g,
		cmdline.WithLogger(e.logger),
		cmdline.WithControls(controls))

	if err := m.Match(ctx, args); err != nil {
		return nil, err
	}

	e.controls = m.Controls()

	res := &Result{g: e.g, controls: e.controls, line: m.CommandLine()}

	if e.controls.Help || e.controls.Version {
		return res, nil
	}

	if err := e.setAll(ctx); err != nil {
		if cerr := res.Close(); cerr != nil {
			e.logger.WarnContext(ctx, "release failed", slog.Any("error", cerr))
		}

		return nil, err
	}

	return res, nil
}

// pos returns the source position of d.
func (e *Engine) pos(d *lang.Decl) pkg.Position {
	return pkg.Position{File: e.g.File, Line: d.Line}
}
