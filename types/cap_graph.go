package types

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// GraphDevices lists the accepted graphics device names. The first is the
// default unless the "graphics" configuration value names another.
//
//nolint:gochecknoglobals
var GraphDevices = []Choice{
	{"png", "PNG image"},
	{"svg", "SVG vector graphics"},
	{"pdf", "PDF document"},
	{"postscript", "PostScript"},
	{"cps", "Colour PostScript"},
	{"data", "Data file of plot coordinates"},
	{"text", "Text summary"},
	{"none", "No output"},
}

type graphCap struct{ xy bool }

func (c graphCap) Set(ctx SetContext, input string) (Value, error) {
	device := strings.TrimSpace(input)
	if device == "" {
		if v, ok := ctx.Config().Value("graphics"); ok {
			device = v
		} else {
			device = GraphDevices[0].Code
		}
	}

	i, perr := pick(GraphDevices, strings.ToLower(device), strings.ToLower,
		func(string) (int, bool) { return 0, false })
	if perr != nil {
		return Value{}, perr.With(slog.String("name", ctx.Name()), slog.String("value", device))
	}

	device = GraphDevices[i].Code

	g := &Graph{Device: device}

	if device != "none" {
		file, _ := ctx.Assoc("goutfile")
		if file == "" {
			file = ctx.Program()
		}

		if filepath.Ext(file) == "" {
			file += "." + device
		}

		if dir, ok := ctx.Assoc("gdirectory"); ok && dir != "" && !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}

		g.File = file
	}

	return Value{Native: g, Text: device}, nil
}

func (c graphCap) Prompt(SetContext) string { return "Graph type" }

func (c graphCap) Describe(SetContext) string {
	names := make([]string, len(GraphDevices))
	for i, d := range GraphDevices {
		names[i] = d.Code
	}

	noun := "Graph type"
	if c.xy {
		noun = "XY graph type"
	}

	return noun + " (" + strings.Join(names, ", ") + ")"
}
