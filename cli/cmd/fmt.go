package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/log"
	"github.com/ardnew/acd/pkg"
)

// Fmt parses a declaration file and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as declaration syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

type fmtSource struct {
	Indent int    `default:"2" help:"Indent width for formatted output" short:"i"`
	Source string `arg:""      default:"-"                              help:"Declaration file or '-' for stdin." name:"source"`

	out io.Writer
}

// parse reads and parses the source declaration file.
func (f *fmtSource) parse(ctx context.Context, format string) (*lang.Graph, error) {
	r, name, err := openSource(f.Source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	g, err := lang.ParseReader(ctx, r,
		lang.WithFile(name),
		lang.WithLogger(log.Default()))
	if err != nil {
		return nil, pkg.WrapError(err).With(slog.String("format", format))
	}

	return g, nil
}

// Native formats input as declaration syntax.
type Native struct {
	fmtSource `embed:""`
}

// Run executes the fmt command.
func (n *Native) Run(ctx context.Context) error {
	g, err := n.parse(ctx, "native")
	if err != nil {
		return err
	}

	return g.Format(ctx, writerOr(n.out), n.Indent)
}

// JSON formats input as JSON.
type JSON struct {
	fmtSource `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	g, err := j.parse(ctx, formatJSON)
	if err != nil {
		return err
	}

	return g.FormatJSON(ctx, writerOr(j.out), j.Indent)
}

// YAML formats input as YAML.
type YAML struct {
	fmtSource `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	g, err := y.parse(ctx, formatYAML)
	if err != nil {
		return err
	}

	return g.FormatYAML(ctx, writerOr(y.out), y.Indent)
}
