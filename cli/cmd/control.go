package cmd

import (
	"github.com/ardnew/acd/cmdline"
	"github.com/ardnew/acd/log"
)

// scanControls reads the control qualifiers from a program command line
// before it is matched, so the logger can be configured for the whole run.
func scanControls(args []string) cmdline.Controls {
	c := cmdline.DefaultControls()

	for _, arg := range args {
		if arg == "--" {
			break
		}

		ref, ok := cmdline.ParseQualRef(arg)
		if !ok || ref.Master != "" || ref.Instance > 0 {
			continue
		}

		if c.Set(ref.Name, true) {
			continue
		}

		if base, ok := ref.Unnegated(); ok {
			c.Set(base.Name, false)
		}
	}

	return c
}

// controlLogger derives the logger for a run: -debug and -verbose lower the
// level, -nowarning and -noerror mute those levels.
func controlLogger(logger log.Logger, c cmdline.Controls) log.Logger {
	var opts []log.Option

	switch {
	case c.Debug:
		opts = append(opts, log.WithLevel(log.LevelDebug))
	case c.Verbose:
		opts = append(opts, log.WithLevel(log.LevelInfo))
	}

	if !c.Warning {
		opts = append(opts, log.WithMute(log.LevelWarn, true))
	}

	if !c.Error {
		opts = append(opts, log.WithMute(log.LevelError, true))
	}

	if len(opts) == 0 {
		return logger
	}

	return logger.Wrap(opts...)
}
