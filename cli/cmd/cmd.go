package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens a declaration file, or stdin for "-". The returned name
// labels diagnostics.
func openSource(path string) (io.ReadCloser, string, error) {
	if path == stdinSource || path == "" {
		return io.NopCloser(os.Stdin), "<stdin>", nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}

	return file, filepath.Base(path), nil
}

// Output formats shared by the subcommands.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// encode writes v to w as JSON or YAML.
func encode(ctx context.Context, w io.Writer, format string, indent int, v any) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case formatJSON:
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		data = append(data, '\n')
	default:
		data, err = yaml.MarshalContext(ctx, v, yaml.Indent(indent))
	}

	if err != nil {
		return ErrMarshal.Wrap(err)
	}

	_, err = w.Write(data)

	return err
}

// writerOr returns w, or os.Stdout when w is nil.
func writerOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}
