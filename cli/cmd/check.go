package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/log"
)

// Check parses and processes a declaration file, reporting definition
// errors without matching a command line.
type Check struct {
	Source string `arg:"" default:"-" help:"Declaration file or '-' for stdin." name:"source"`

	out io.Writer
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	r, name, err := openSource(c.Source)
	if err != nil {
		return err
	}
	defer r.Close()

	g, err := lang.ParseReader(ctx, r,
		lang.WithFile(name),
		lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	if err := g.Process(ctx); err != nil {
		return err
	}

	log.DebugContext(ctx, "declarations checked",
		slog.String("file", name),
		slog.Int("declarations", g.Len()))

	_, err = fmt.Fprintf(writerOr(c.out),
		"%s: %s: %d declarations, %d parameters, %d qualifiers, %d associated\n",
		name, g.Program, g.Len(), len(g.Params()), len(g.Qualifiers()), assocCount(g))

	return err
}

func assocCount(g *lang.Graph) int {
	var n int

	for _, d := range g.All() {
		if d.IsAssoc() {
			n++
		}
	}

	return n
}
