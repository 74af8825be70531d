package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/acd/log"
)

// logFormat configures the logger format as a side effect of parsing, so
// that errors reported during parsing are already formatted.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"warn"    enum:"${logLevelEnum}" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"json,text"       help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                        help:"Set timestamp format."`
	Caller     bool      `default:"false"                          help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                           help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	var levels []string
	for l := range log.Levels() {
		levels = append(levels, l)
	}

	return kong.Vars{"logLevelEnum": strings.Join(levels, ",")}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

func (f *logConfig) start(ctx context.Context) func() {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)

	return func() {}
}

// scan applies logger flags before kong parses the command line, so the
// logger is configured regardless of flag position. Boolean flags do not go
// through UnmarshalText and are only applied here.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		name, value, assigned := strings.Cut(arg, "=")

		negated := strings.HasPrefix(name, "--no-log-")
		if negated {
			name = "--log-" + strings.TrimPrefix(name, "--no-log-")
		}

		if !strings.HasPrefix(name, "--log-") {
			continue
		}

		switch name {
		case "--log-level", "--log-format":
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				value = args[i]
			}

			if name == "--log-level" {
				_ = f.Level.UnmarshalText([]byte(value))
			} else {
				_ = f.Format.UnmarshalText([]byte(value))
			}

		case "--log-pretty", "--log-caller":
			on := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				on = v
			}

			if negated {
				on = !on
			}

			if name == "--log-pretty" {
				f.Pretty = on
				log.Config(log.WithPretty(on))
			} else {
				f.Caller = on
				log.Config(log.WithCaller(on))
			}
		}
	}
}
