package types

import (
	"log/slog"
	"path/filepath"
	"strings"
)

type outputCap struct {
	kind string
	ext  string
}

func (c outputCap) assocPrefixes() []string {
	switch c.kind {
	case "seqout", "seqoutall", "seqoutset":
		return []string{"os"}
	case "report":
		return []string{"r"}
	case "align":
		return []string{"a"}
	case "featout":
		return []string{"of"}
	default:
		return []string{"o"}
	}
}

// assoc returns the value of the kind's associated qualifier ending in
// suffix, such as "osdirectory" for a sequence output.
func (c outputCap) assoc(ctx SetContext, suffix string) string {
	for _, p := range c.assocPrefixes() {
		if v, ok := ctx.Assoc(p + suffix); ok && v != "" {
			return v
		}
	}

	return ""
}

// Default derives "<seed>.<extension>" where seed is the name found by the
// last input and extension comes from the extension attribute, the
// associated extension qualifier, the kind, or the program name.
func (c outputCap) Default(ctx SetContext) (string, error) {
	nullDefault, err := ctx.Bool("nulldefault", false)
	if err != nil {
		return "", err
	}

	if nullDefault {
		return "", nil
	}

	base := c.assoc(ctx, "name")
	if base == "" {
		base = ctx.Seed()
	}

	if base == "" {
		base = ctx.Program()
	}

	ext := c.assoc(ctx, "extension")
	if ext == "" {
		if ext, err = ctx.Attr("extension"); err != nil {
			return "", err
		}
	}

	if ext == "" {
		ext = c.ext
	}

	if ext == "" {
		ext = ctx.Program()
	}

	return strings.ToLower(base) + "." + strings.TrimPrefix(ext, "."), nil
}

func (c outputCap) Set(ctx SetContext, input string) (Value, error) {
	name := strings.TrimSpace(input)

	if name == "" {
		def, err := c.Default(ctx)
		if err != nil {
			return Value{}, err
		}

		if def == "" {
			return nullOrRequired(ctx)
		}

		name = def
	}

	path := name
	if name != Stdout && name != Stderr && name != "-" && !filepath.IsAbs(name) {
		if dir := c.assoc(ctx, "directory"); dir != "" {
			path = filepath.Join(dir, name)
		}
	}

	opener := ctx.Opener()
	if opener == nil {
		return Value{}, ErrOpen.With(slog.String("name", ctx.Name()), slog.String("file", path))
	}

	appendMode, err := ctx.Bool("append", false)
	if err != nil {
		return Value{}, err
	}

	w, err := opener.Open(ctx, c.kind, path, appendMode)
	if err != nil {
		return Value{}, ErrOpen.With(
			slog.String("name", ctx.Name()),
			slog.String("file", path),
		).Wrap(err)
	}

	return Value{
		Native: &Output{WriteCloser: w, Kind: c.kind, Path: path},
		Text:   path,
		Owned:  true,
	}, nil
}

func (c outputCap) Delete(v Value) error {
	if o, ok := v.Native.(*Output); ok && o.WriteCloser != nil {
		return o.Close()
	}

	return nil
}

func (c outputCap) Prompt(SetContext) string {
	switch c.kind {
	case "seqout", "seqoutall", "seqoutset":
		return "Output sequence(s)"
	case "report":
		return "Output report"
	case "align":
		return "Output alignment"
	case "featout":
		return "Output features"
	default:
		return "Output file"
	}
}

func (c outputCap) Describe(SetContext) string {
	return "Writeable " + strings.TrimPrefix(c.kind, "out") + " file"
}
