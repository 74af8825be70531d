package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/log"
	"github.com/ardnew/acd/pkg"
	"github.com/ardnew/acd/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file holding the process
// configuration and the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.OpenFile(confPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}
	defer file.Close()

	err = config.Default().Encode(ctx, file, config.FormatYAML, defaultConfigIndent)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	data, err := yaml.MarshalContext(ctx, i.flags(ctx), yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if _, err := file.Write(data); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

// flags collects the values of the application flags, keyed by their
// underscored names.
func (i *Init) flags(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)

	prefixIgnore := []string{"help", profile.Tag}

	var out yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := ktx.FlagValue(flag)

		switch v := val.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
		case []string:
			if len(v) == 0 {
				continue
			}
		}

		out = append(out, yaml.MapItem{
			Key:   strings.ReplaceAll(flag.Name, "-", "_"),
			Value: val,
		})
	}

	return out
}

// DefaultConfigPath is the configuration file written by init.
func DefaultConfigPath() string {
	return pkg.ConfigPath(config.BaseName + ".yaml")
}
