package types

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Loaded is what a [Loader] reports about a successful read.
type Loaded struct {
	// Name is the name discovered while reading, if any. It seeds the
	// default names of later outputs.
	Name string
	// Object is the loaded value, opaque to the engine.
	Object any
	// Calc holds calculated attributes such as "length" or "count".
	Calc map[string]string
}

// Loader reads domain data for input kinds (sequences, matrices, trees, ...)
// from a resolved query or file name.
type Loader interface {
	Load(ctx context.Context, kind, query string) (Loaded, error)
}

// LoaderFunc adapts a function to a [Loader].
type LoaderFunc func(ctx context.Context, kind, query string) (Loaded, error)

// Load implements [Loader].
func (f LoaderFunc) Load(ctx context.Context, kind, query string) (Loaded, error) {
	return f(ctx, kind, query)
}

// Opener opens output destinations for output kinds.
type Opener interface {
	Open(ctx context.Context, kind, path string, appendMode bool) (io.WriteCloser, error)
}

// OpenerFunc adapts a function to an [Opener].
type OpenerFunc func(ctx context.Context, kind, path string, appendMode bool) (io.WriteCloser, error)

// Open implements [Opener].
func (f OpenerFunc) Open(ctx context.Context, kind, path string, appendMode bool) (io.WriteCloser, error) {
	return f(ctx, kind, path, appendMode)
}

// Standard stream names accepted wherever a file name is.
const (
	Stdout = "stdout"
	Stderr = "stderr"
	Stdin  = "stdin"
)

// FileLoader reads input data from local files, or inline from queries of
// the form "asis::TEXT". A "format::" prefix and a trailing "[begin:end]"
// range are accepted and recorded but not interpreted further.
type FileLoader struct {
	// Data locates files not found relative to the working directory.
	Data func(name string) (string, bool)
}

//nolint:gochecknoglobals
var (
	queryFormat = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)::(.*)$`)
	queryRange  = regexp.MustCompile(`\[(-?\d*):(-?\d*)(:[rR])?\]$`)
)

// Load implements [Loader].
func (l FileLoader) Load(ctx context.Context, kind, query string) (Loaded, error) {
	q := strings.TrimSpace(query)
	calc := map[string]string{"usa": q}

	if m := queryRange.FindStringSubmatch(q); m != nil {
		q = strings.TrimSpace(q[:len(q)-len(m[0])])

		if m[1] != "" {
			calc["begin"] = m[1]
		}

		if m[2] != "" {
			calc["end"] = m[2]
		}
	}

	format := ""

	if m := queryFormat.FindStringSubmatch(q); m != nil {
		format, q = strings.ToLower(m[1]), m[2]
	}

	var (
		content []byte
		name    string
	)

	switch {
	case format == "asis":
		content, name = []byte(q), "asis"
	case q == Stdin || q == "-":
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return Loaded{}, ErrLoad.With(slog.String("query", query)).Wrap(err)
		}

		content, name = data, Stdin
	default:
		path := q

		if _, err := os.Stat(path); err != nil && l.Data != nil {
			if found, ok := l.Data(q); ok {
				path = found
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return Loaded{}, ErrLoad.With(
				slog.String("kind", kind),
				slog.String("query", query),
			).Wrap(err)
		}

		content = data
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if format != "" && format != "asis" {
		calc["format"] = format
	}

	if IsSequenceKind(kind) {
		summarizeSequences(content, format == "asis", &name, calc)
	} else {
		calc["count"] = "1"
	}

	calc["name"] = name

	return Loaded{Name: name, Object: content, Calc: calc}, nil
}

// summarizeSequences derives the sequence count, the first sequence's length
// and its name from FASTA-style headers. Text without headers is one
// sequence.
func summarizeSequences(content []byte, inline bool, name *string, calc map[string]string) {
	var (
		count  int
		length int
		first  = true
	)

	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if line[0] == '>' {
			count++

			if count == 1 && !inline {
				if f := strings.Fields(line[1:]); len(f) > 0 {
					*name = f[0]
				}
			}

			first = count == 1

			continue
		}

		if count == 0 {
			count = 1
		}

		if !first {
			continue
		}

		for _, r := range line {
			if unicode.IsLetter(r) || r == '*' || r == '-' {
				length++
			}
		}
	}

	calc["count"] = strconv.Itoa(count)
	calc["length"] = strconv.Itoa(length)
}

// FileOpener opens outputs as local files. "stdout" and "stderr" name the
// standard streams, which are never closed.
type FileOpener struct{}

// Open implements [Opener].
func (FileOpener) Open(_ context.Context, kind, path string, appendMode bool) (io.WriteCloser, error) {
	switch path {
	case Stdout, "-":
		return nopCloser{os.Stdout}, nil
	case Stderr:
		return nopCloser{os.Stderr}, nil
	}

	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, ErrOpen.With(slog.String("kind", kind), slog.String("file", path)).Wrap(err)
	}

	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
