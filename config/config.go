// Package config holds the process configuration consulted while running a
// declaration: interactive retry count, default prompting modes, the search
// path for declaration files, data directories, and named values available to
// @(value: NAME) expressions.
//
// Settings merge in order: [Default], then each configuration file passed to
// [Load] (YAML, or JSON with comments), then ACD_* environment variables.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ardnew/mung"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"

	"github.com/ardnew/acd/log"
	"github.com/ardnew/acd/pkg"
)

// DefaultRetries is the number of times a rejected interactive value is
// prompted for again.
const DefaultRetries = 2

// BaseName is the configuration file name without extension.
const BaseName = "config"

var (
	ErrRead   = pkg.NewError("read configuration")
	ErrDecode = pkg.NewError("decode configuration")
	ErrEncode = pkg.NewError("encode configuration")
	ErrFormat = pkg.NewError("unsupported configuration format")
	ErrEnv    = pkg.NewError("invalid environment value")
	ErrFind   = pkg.NewError("declaration file not found")
)

// Lookup retrieves an environment variable.
type Lookup func(key string) (string, bool)

// Config is the process configuration.
type Config struct {
	Retries int               `json:"retries"          yaml:"retries"`
	Auto    bool              `json:"auto"             yaml:"auto"`
	Options bool              `json:"options"          yaml:"options"`
	Path    []string          `json:"path,omitempty"   yaml:"path,omitempty"`
	Data    []string          `json:"data,omitempty"   yaml:"data,omitempty"`
	Values  map[string]string `json:"values,omitempty" yaml:"values,omitempty"`

	lookup Lookup
}

// Default returns the built-in configuration, reading the process
// environment for named values.
func Default() Config {
	return Config{
		Retries: DefaultRetries,
		lookup:  os.LookupEnv,
	}
}

// WithLookup returns a copy of c that resolves environment variables through
// lookup instead of the process environment.
func (c Config) WithLookup(lookup Lookup) Config {
	c.lookup = lookup

	return c
}

func (c Config) env(key string) (string, bool) {
	if c.lookup == nil {
		return "", false
	}

	return c.lookup(pkg.EnvPrefix() + key)
}

// Load returns [Default] overlaid by each existing file in files, then by the
// environment. Files that do not exist are skipped.
func Load(ctx context.Context, files ...string) (Config, error) {
	c := Default()

	for _, file := range files {
		data, err := os.ReadFile(file)
		if os.IsNotExist(err) {
			continue
		}

		if err != nil {
			return c, ErrRead.With(slog.String("file", file)).Wrap(err)
		}

		c, err = c.Decode(bytes.NewReader(data), FormatOf(file))
		if err != nil {
			return c, pkg.WrapError(err).With(slog.String("file", file))
		}

		log.DebugContext(ctx, "configuration loaded",
			slog.String("file", file))
	}

	return c.FromEnv()
}

// Format is a configuration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf infers the encoding of a configuration file from its extension.
// Anything not ending in .json or .jsonc is read as YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Files returns the configuration files read by default, in merge order.
func Files() []string {
	return []string{
		pkg.ConfigPath(BaseName + ".yaml"),
		pkg.ConfigPath(BaseName + ".json"),
	}
}

// Decode overlays the settings read from r onto a copy of c. Keys absent from
// the input keep their current value.
func (c Config) Decode(r io.Reader, format Format) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return c, ErrRead.Wrap(err)
	}

	lookup := c.lookup

	switch format {
	case FormatJSON:
		err = json.Unmarshal(jsonc.ToJSON(data), &c)
	case FormatYAML:
		if len(bytes.TrimSpace(data)) > 0 {
			err = yaml.Unmarshal(data, &c)
		}
	default:
		return c, ErrFormat.With(slog.String("format", string(format)))
	}

	c.lookup = lookup

	if err != nil {
		return c, ErrDecode.With(slog.String("format", string(format))).Wrap(err)
	}

	return c, nil
}

// Encode writes c to w in the given format.
func (c Config) Encode(ctx context.Context, w io.Writer, format Format, indent int) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(c, "", strings.Repeat(" ", indent))
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.MarshalContext(ctx, c, yaml.Indent(indent))
	default:
		return ErrFormat.With(slog.String("format", string(format)))
	}

	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = w.Write(data)
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}

// FromEnv overlays ACD_RETRIES, ACD_AUTO, ACD_OPTIONS and ACD_DATA onto a
// copy of c. ACD_PATH is consulted by [Config.SearchPath].
func (c Config) FromEnv() (Config, error) {
	if s, ok := c.env("RETRIES"); ok && s != "" {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return c, ErrEnv.With(slog.String("name", pkg.EnvPrefix()+"RETRIES"),
				slog.String("value", s))
		}

		c.Retries = n
	}

	for key, dst := range map[string]*bool{"AUTO": &c.Auto, "OPTIONS": &c.Options} {
		s, ok := c.env(key)
		if !ok || s == "" {
			continue
		}

		b, err := ParseBool(s)
		if err != nil {
			return c, ErrEnv.With(slog.String("name", pkg.EnvPrefix()+key),
				slog.String("value", s))
		}

		*dst = b
	}

	if s, ok := c.env("DATA"); ok && s != "" {
		c.Data = append(filepath.SplitList(s), c.Data...)
	}

	return c, nil
}

// ParseBool accepts the boolean spellings of declaration files and command
// lines: Y/N, yes/no, true/false, 1/0, in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "t", "true", "1", "on":
		return true, nil
	case "n", "no", "f", "false", "0", "off":
		return false, nil
	default:
		return false, strconv.ErrSyntax
	}
}

// Value returns the named value for @(value: NAME). Configured values take
// precedence over the ACD_<NAME> environment variable. Names are matched
// without regard to case.
func (c Config) Value(name string) (string, bool) {
	name = strings.TrimSpace(name)

	for key, val := range c.Values {
		if strings.EqualFold(key, name) {
			return val, true
		}
	}

	return c.env(strings.ToUpper(name))
}

// SearchPath returns the directories searched for declaration files: the
// ACD_PATH environment list prefixed by the configured path entries, with
// duplicates removed.
func (c Config) SearchPath() []string {
	subject, _ := c.env("PATH")

	joined := mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(c.Path...),
	).String()

	var dirs []string

	seen := make(map[string]struct{})

	for _, dir := range filepath.SplitList(joined) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}

		if _, ok := seen[dir]; ok {
			continue
		}

		seen[dir] = struct{}{}

		dirs = append(dirs, dir)
	}

	return dirs
}

// Find locates the declaration file for program: a path to an existing file is
// returned as is, otherwise "<program>.acd" is searched for in the working
// directory followed by [Config.SearchPath].
func (c Config) Find(program string) (string, error) {
	if info, err := os.Stat(program); err == nil && !info.IsDir() {
		return program, nil
	}

	name := pkg.ProgramName(program) + pkg.Extension

	dirs := append([]string{"."}, c.SearchPath()...)
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", ErrFind.With(
		slog.String("name", name),
		slog.Any("path", dirs),
	)
}

// DataFile locates name in the configured data directories. Absolute paths
// and paths that exist relative to the working directory are returned as is.
func (c Config) DataFile(name string) (string, bool) {
	if _, err := os.Stat(name); err == nil {
		return name, true
	}

	if filepath.IsAbs(name) {
		return "", false
	}

	for _, dir := range c.Data {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	return "", false
}
