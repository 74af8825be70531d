package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/acd/engine"
	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/types"
)

// writeUsage prints the -help table: the application documentation, then
// the qualifiers by category.
func writeUsage(w io.Writer, g *lang.Graph, entries []engine.UsageEntry) error {
	heading := lipgloss.NewRenderer(w).NewStyle().Bold(true)

	if app := g.Application(); app != nil {
		if doc, ok := app.Attr("documentation"); ok && doc != "" {
			fmt.Fprintln(w, doc)
		}

		fmt.Fprintf(w, "Version: %s\n\n", g.Program)
	}

	for _, category := range []string{
		engine.UsageRequired,
		engine.UsageAdditional,
		engine.UsageAdvanced,
		engine.UsageAssociated,
	} {
		rows := filter(entries, category)
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintln(w, heading.Render(category+" qualifiers:"))

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

		for _, u := range rows {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", u.Flag(), u.Type, describe(u))
		}

		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(w)
	}

	return nil
}

func filter(entries []engine.UsageEntry, category string) []engine.UsageEntry {
	var out []engine.UsageEntry

	for _, u := range entries {
		if u.Category == category {
			out = append(out, u)
		}
	}

	return out
}

func describe(u engine.UsageEntry) string {
	var b strings.Builder

	b.WriteString(u.Info)

	if u.Accepts != "" && !strings.EqualFold(u.Accepts, u.Info) {
		b.WriteString(" (" + u.Accepts + ")")
	}

	if u.Default != "" && u.Default != types.Stdin && u.Default != types.Stdout {
		b.WriteString(" [" + u.Default + "]")
	}

	return b.String()
}
