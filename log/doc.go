// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Warn("value out of range", slog.Int("value", 9))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level logger used by [Info], [Warn] and friends is
// reconfigured in place with [Config].
//
// # Muting
//
// [WithMute] suppresses a single severity without changing the minimum
// level, so warnings can be silenced while errors still print.
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant.
// Context-unaware functions use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Messages below the configured level are discarded. The default is
// [LevelWarn].
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. With pretty printing enabled,
// colors are used only when the output is a terminal and NO_COLOR is unset.
package log
