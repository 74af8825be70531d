package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/acd/cli/cmd"
	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/pkg"
)

// CLI is the top-level command-line interface for acd.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Run   cmd.Run   `cmd:"" help:"Match a program command line and print its values"`
	Check cmd.Check `cmd:"" help:"Check a declaration file"`
	Fmt   cmd.Fmt   `cmd:"" help:"Format a declaration file"`
	Types cmd.Types `cmd:"" help:"List data types and their attributes"`
	Init  cmd.Init  `cmd:"" help:"Initialize configuration file"`
}

// Run executes the acd CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: cmd.DefaultConfigPath(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that they take effect
	// regardless of position.
	cli.Log.scan(args)

	files := config.Files()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve(config.FormatYAML), files[0]),
		kong.Configuration(resolve(config.FormatJSON), files[1]),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(passthrough(args))
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// valueFlags are the flags that take a separate value.
//
//nolint:gochecknoglobals
var valueFlags = []string{
	"--log-level", "--log-format", "--log-time-layout",
	"--pprof-mode", "--pprof-dir",
	"-o", "--format",
}

// passthrough inserts "--" after the declaration argument of the run
// command, so that the program's own qualifiers, which look like flags,
// reach it untouched.
func passthrough(args []string) []string {
	run := -1

	for i := 0; i < len(args) && run < 0; i++ {
		switch arg := args[i]; {
		case arg == "--":
			return args
		case isValueFlag(arg):
			i++
		case strings.HasPrefix(arg, "-"):
		case arg == "run":
			run = i
		default:
			return args
		}
	}

	if run < 0 {
		return args
	}

	for i := run + 1; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return args
		case isValueFlag(arg):
			i++
		case strings.HasPrefix(arg, "-") && arg != "-":
		default:
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i+1]...)
			out = append(out, "--")

			return append(out, args[i+1:]...)
		}
	}

	return args
}

func isValueFlag(arg string) bool {
	return slices.Contains(valueFlags, arg)
}
