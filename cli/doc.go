// Package cli contains the command line interface for acd.
//
// # Usage
//
//	acd [flags] run [--format=text|json|yaml] [--plain] DECL [QUALIFIERS...]
//	acd check DECL
//	acd fmt [native|json|yaml] DECL
//	acd types [NAME...]
//	acd init [--force]
//
// DECL is a declaration file, or a program name searched for as
// "<name>.acd" in the working directory and the configured search path.
// Everything after DECL is the program's own command line, matched against
// its declarations:
//
//	acd run seqret.acd -sequence hba_human.fasta -outseq out.fasta -auto
//
// # Configuration
//
// Flags may be given defaults in the configuration file (config.yaml, or
// config.json with comments) in the user configuration directory, using
// underscores for hyphens:
//
//	log_level: debug
//	retries: 3
//	path: [/usr/share/acd]
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// The program controls -debug, -verbose, -nowarning and -noerror adjust the
// logger for a single run.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o acd .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the cache
//     directory's pprof subdirectory)
package cli
