package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/engine"
	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/log"
	"github.com/ardnew/acd/pkg"
	"github.com/ardnew/acd/prompt"
)

// Run matches a program command line against its declarations and prints
// the resulting values.
type Run struct {
	Format    string `default:"text" enum:"text,json,yaml" help:"Output format of the values." short:"o"`
	Plain     bool   `help:"Prompt line by line even on a terminal."`
	NoHistory bool   `help:"Do not recall or record prompt answers."`

	Decl string   `arg:"" help:"Declaration file, or program name searched for along the search path." name:"decl"`
	Args []string `arg:"" help:"Qualifiers and parameters of the program."                               optional:""`

	config []string
	in     *os.File
	out    io.Writer
	prompt io.Writer
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	files := r.config
	if files == nil {
		files = config.Files()
	}

	cfg, err := config.Load(ctx, files...)
	if err != nil {
		return err
	}

	path, err := cfg.Find(r.Decl)
	if err != nil {
		return err
	}

	logger := controlLogger(log.Default(), scanControls(r.Args))

	g, err := lang.ParseFile(ctx, path, lang.WithLogger(logger))
	if err != nil {
		return err
	}

	eng := engine.New(g,
		engine.WithConfig(cfg),
		engine.WithLogger(logger),
		engine.WithPrompter(r.prompter(ctx, logger)))

	res, err := eng.Run(ctx, r.Args)
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, res.Close()) }()

	out := writerOr(r.out)

	switch {
	case res.Controls().Help:
		entries, err := eng.Usage(ctx)
		if err != nil {
			return err
		}

		return writeUsage(out, g, entries)

	case res.Controls().Version:
		_, err := fmt.Fprintln(out, g.Program, pkg.Version())

		return err
	}

	logger.DebugContext(ctx, "command line", slog.String("canonical", res.CommandLine()))

	return writeValues(ctx, out, r.Format, res)
}

// prompter builds the prompter for the run. Prompts go to stderr so that
// stdout carries only the values.
func (r *Run) prompter(ctx context.Context, logger log.Logger) engine.Prompter {
	in, out := r.in, os.Stderr
	if in == nil {
		in = os.Stdin
	}

	opts := []prompt.Option{prompt.WithLogger(logger), prompt.WithPlain(r.Plain)}

	if !r.NoHistory {
		h := prompt.NewHistory(filepath.Join(pkg.CacheDir(), prompt.BaseHistory))
		if err := h.Load(); err != nil {
			logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
		}

		opts = append(opts, prompt.WithHistory(h))
	}

	if r.prompt != nil {
		return prompt.NewLine(in, r.prompt, opts...)
	}

	return prompt.New(in, out, opts...)
}

// value is one entry of the printed result.
type value struct {
	Name  string `json:"name"           yaml:"name"`
	Value string `json:"value"          yaml:"value"`
	Null  bool   `json:"null,omitempty" yaml:"null,omitempty"`
}

func writeValues(ctx context.Context, w io.Writer, format string, res *engine.Result) error {
	var values []value

	for name, v := range res.Values() {
		values = append(values, value{Name: name, Value: v.Text, Null: v.Null})
	}

	if format != formatText {
		return encode(ctx, w, format, 2, values)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, v := range values {
		fmt.Fprintf(tw, "%s\t%s\n", v.Name, v.Value)
	}

	return tw.Flush()
}
