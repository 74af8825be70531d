package types

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// nullOrRequired handles an empty input for kinds that accept nullok.
func nullOrRequired(ctx SetContext) (Value, error) {
	nullok, err := ctx.Bool("nullok", false)
	if err != nil {
		return Value{}, err
	}

	if nullok {
		return NullValue(), nil
	}

	return Value{}, ErrNull.With(slog.String("name", ctx.Name()))
}

func fileCalcs(ctx SetContext, path string, info os.FileInfo) {
	ctx.SetCalc("name", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	ctx.SetCalc("extension", strings.TrimPrefix(filepath.Ext(path), "."))
	ctx.SetCalc("exists", YesNo(info != nil))
	ctx.SetCalc("dir", YesNo(info != nil && info.IsDir()))
}

type fileCap struct{ data bool }

func (c fileCap) Set(ctx SetContext, input string) (Value, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return nullOrRequired(ctx)
	}

	if name == Stdin || name == "-" {
		return Value{Native: Stdin, Text: Stdin}, nil
	}

	path := name

	if c.data {
		found, ok := ctx.Config().DataFile(name)
		if ok {
			path = found
		}
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		err = os.ErrInvalid
	}

	if err != nil {
		fileCalcs(ctx, path, nil)

		if try, _ := ctx.Bool("trydefault", false); try {
			if def, _ := ctx.Attr(AttrDefault); def == name {
				return NullValue(), nil
			}
		}

		return Value{}, ErrNotFound.With(
			slog.String("name", ctx.Name()),
			slog.String("file", name),
		).Wrap(err)
	}

	fileCalcs(ctx, path, info)

	return Value{Native: path, Text: name}, nil
}

func (c fileCap) Prompt(SetContext) string {
	if c.data {
		return "Data file"
	}

	return "Input file"
}

func (c fileCap) Describe(SetContext) string {
	if c.data {
		return "Data file"
	}

	return "Input file"
}

type dirCap struct {
	list   bool
	output bool
}

func (c dirCap) Set(ctx SetContext, input string) (Value, error) {
	dir := strings.TrimSpace(input)
	if dir == "" {
		if c.output {
			dir = "."
		} else {
			return nullOrRequired(ctx)
		}
	}

	if full, err := ctx.Bool("fullpath", false); err != nil {
		return Value{}, err
	} else if full {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return Value{}, badValue(ctx, input, err)
		}

		dir = abs
	}

	info, err := os.Stat(dir)
	if err != nil && c.output && os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0o755)
		if err == nil {
			info, err = os.Stat(dir)
		}
	}

	if err == nil && !info.IsDir() {
		err = os.ErrInvalid
	}

	if err != nil {
		return Value{}, ErrNotFound.With(
			slog.String("name", ctx.Name()),
			slog.String("directory", dir),
		).Wrap(err)
	}

	fileCalcs(ctx, dir, info)

	if !c.list {
		return Value{Native: dir, Text: dir}, nil
	}

	ext, err := ctx.Attr("extension")
	if err != nil {
		return Value{}, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Value{}, ErrNotFound.With(slog.String("directory", dir)).Wrap(err)
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		if ext != "" && strings.TrimPrefix(filepath.Ext(e.Name()), ".") != strings.TrimPrefix(ext, ".") {
			continue
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	slices.Sort(files)
	ctx.SetCalc("count", strconv.Itoa(len(files)))

	return Value{Native: files, Text: dir}, nil
}

func (c dirCap) Prompt(SetContext) string {
	if c.output {
		return "Output directory"
	}

	return "Directory"
}

func (c dirCap) Describe(SetContext) string {
	switch {
	case c.output:
		return "Output directory"
	case c.list:
		return "Directory with files"
	default:
		return "Directory"
	}
}

type fileListCap struct{}

func (fileListCap) Set(ctx SetContext, input string) (Value, error) {
	fields := splitFields(input)
	if len(fields) == 0 {
		return nullOrRequired(ctx)
	}

	var files []string

	for _, f := range fields {
		names, err := expandFileList(f)
		if err != nil {
			return Value{}, ErrNotFound.With(
				slog.String("name", ctx.Name()),
				slog.String("file", f),
			).Wrap(err)
		}

		files = append(files, names...)
	}

	ctx.SetCalc("count", strconv.Itoa(len(files)))

	return Value{Native: files, Text: strings.Join(fields, ",")}, nil
}

// expandFileList expands "@listfile" to the names it lists, a directory to
// its files, and a glob to its matches.
func expandFileList(f string) ([]string, error) {
	if name, ok := strings.CutPrefix(f, "@"); ok {
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		var out []string

		sc := bufio.NewScanner(file)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			more, err := expandFileList(line)
			if err != nil {
				return nil, err
			}

			out = append(out, more...)
		}

		return out, sc.Err()
	}

	if info, err := os.Stat(f); err == nil {
		if !info.IsDir() {
			return []string{f}, nil
		}

		entries, err := os.ReadDir(f)
		if err != nil {
			return nil, err
		}

		var out []string

		for _, e := range entries {
			if !e.IsDir() {
				out = append(out, filepath.Join(f, e.Name()))
			}
		}

		return out, nil
	}

	matches, err := filepath.Glob(f)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, os.ErrNotExist
	}

	return matches, nil
}

func (fileListCap) Prompt(SetContext) string { return "Comma-separated file list" }

func (fileListCap) Describe(SetContext) string { return "Comma-separated file list" }
