package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/types"
)

// Types lists the registered data kinds, or the attributes of the named
// ones.
type Types struct {
	Format string   `default:"text" enum:"text,json,yaml" help:"Output format." short:"o"`
	Names  []string `arg:""         help:"Kinds to describe in detail."      optional:""`

	out io.Writer
}

// kind is the printable description of a [types.Descriptor].
type kind struct {
	Name       string           `json:"name"                 yaml:"name"`
	Group      types.Group      `json:"group"                yaml:"group"`
	Section    string           `json:"section,omitempty"    yaml:"section,omitempty"`
	Help       string           `json:"help,omitempty"       yaml:"help,omitempty"`
	Attributes types.Schema     `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Associated []types.AssocDef `json:"associated,omitempty" yaml:"associated,omitempty"`
	Calculated types.Schema     `json:"calculated,omitempty" yaml:"calculated,omitempty"`
}

// Run executes the types command.
func (t *Types) Run(ctx context.Context) error {
	reg := types.New()

	var kinds []kind

	if len(t.Names) == 0 {
		for _, d := range reg.All() {
			kinds = append(kinds, kind{Name: d.Name, Group: d.Group, Section: d.Section, Help: d.Help})
		}
	}

	for _, name := range t.Names {
		k, ok := reg.Lookup(name)
		if !ok {
			return ErrUnknownType.With(
				slog.String("name", name),
				slog.Any("suggest", lang.Suggest(name, reg.Names(), 3)))
		}

		d := reg.Descriptor(k)
		kinds = append(kinds, kind{
			Name:       d.Name,
			Group:      d.Group,
			Section:    d.Section,
			Help:       d.Help,
			Attributes: d.Attrs,
			Associated: d.Assoc,
			Calculated: d.Calc,
		})
	}

	w := writerOr(t.out)

	if t.Format != formatText {
		return encode(ctx, w, t.Format, 2, kinds)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, k := range kinds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Name, k.Group, k.Section, k.Help)

		for _, a := range k.Attributes {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", a.Name, a.Kind, a.Default, a.Help)
		}

		for _, a := range k.Associated {
			fmt.Fprintf(tw, "  -%s\t%s\t%s\t%s\n", a.Name, a.Type, a.Default, a.Help)
		}

		for _, a := range k.Calculated {
			fmt.Fprintf(tw, "  %s\t%s\t(calculated)\t%s\n", a.Name, a.Kind, a.Help)
		}
	}

	return tw.Flush()
}
