package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"

	"github.com/ardnew/acd/config"
)

// resolve returns a [kong.ConfigurationLoader] reading flag defaults from a
// configuration file in the given format. The file is shared with the
// process configuration, so keys that name no flag are ignored.
//
// Flag names with hyphens may be written with underscores:
//
//	log_level: debug
//	log_pretty: false
//	retries: 3
//
// Command-line flags override config file values. A file that does not
// parse contributes nothing; [config.Load] reports the error.
func resolve(format config.Format) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		if format == config.FormatJSON {
			data = jsonc.ToJSON(data)
		}

		var m map[string]any

		// YAML is a superset of JSON.
		if err := yaml.Unmarshal(data, &m); err != nil {
			return resolver{}, nil //nolint:nilerr
		}

		return resolver(flatten(m)), nil
	}
}

// resolver implements [kong.Resolver] over a flat configuration map.
type resolver map[string]any

// Validate implements [kong.Resolver].
func (resolver) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r resolver) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if v, ok := r[name]; ok {
			return v, nil
		}
	}

	return nil, nil //nolint:nilnil
}

// flatten converts scalar values to the strings kong parses and drops
// nested structures, which never name a flag.
func flatten(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))

	for k, v := range m {
		switch v := v.(type) {
		case nil, map[string]any, []any:
		case bool, string:
			out[k] = v
		default:
			out[k] = fmt.Sprint(v)
		}
	}

	return out
}
