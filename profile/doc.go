// Package profile provides optional runtime profiling for acd.
//
// Profiling is built only with the "pprof" build tag and otherwise every
// operation is a no-op:
//
//	go build -tags pprof -o acd .
//
// A [Profiler] is configured with one of [Modes] and started with
// [Profiler.Start]:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profile files are written to Path with names matching the mode (cpu.pprof,
// mem.pprof, ...) and read with "go tool pprof". The pprof build also
// registers the [net/http/pprof] handlers.
//
// The command line exposes it as:
//
//	acd --pprof-mode=heap --pprof-dir=./profiles run seqret.acd
package profile
