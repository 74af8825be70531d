package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardnew/acd/cmdline"
	"github.com/ardnew/acd/log"
)

func TestScanControls(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(cmdline.Controls) bool
	}{
		{"defaults", nil, func(c cmdline.Controls) bool { return c == cmdline.DefaultControls() }},
		{"debug", []string{"-debug"}, func(c cmdline.Controls) bool { return c.Debug }},
		{"nowarning", []string{"x.fa", "-nowarning"}, func(c cmdline.Controls) bool { return !c.Warning && c.Error }},
		{"noerror", []string{"-noerror"}, func(c cmdline.Controls) bool { return !c.Error }},
		{"negated after set", []string{"-debug", "-nodebug"}, func(c cmdline.Controls) bool { return !c.Debug }},
		{"filter", []string{"-filter"}, func(c cmdline.Controls) bool { return c.Filter && c.Auto && c.Stdout }},
		{"after separator", []string{"--", "-debug"}, func(c cmdline.Controls) bool { return !c.Debug }},
		{"associated", []string{"-debug_seq"}, func(c cmdline.Controls) bool { return !c.Debug }},
		{"program qualifier", []string{"-window", "5"}, func(c cmdline.Controls) bool { return c == cmdline.DefaultControls() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanControls(tt.args); !tt.check(got) {
				t.Errorf("scanControls(%q) = %+v", tt.args, got)
			}
		})
	}
}

func TestControlLogger(t *testing.T) {
	var buf bytes.Buffer

	base := log.Make(&buf, log.WithLevel(log.LevelWarn), log.WithFormat(log.FormatText), log.WithPretty(false))

	c := cmdline.DefaultControls()
	c.Verbose = true
	c.Warning = false

	logger := controlLogger(base, c)
	logger.Info("shown")
	logger.Warn("hidden")
	logger.Error("also shown")

	out := buf.String()
	if !strings.Contains(out, "shown") || strings.Contains(out, "hidden") || !strings.Contains(out, "also shown") {
		t.Errorf("log output:\n%s", out)
	}

	if controlLogger(base, cmdline.DefaultControls()).Logger != base.Logger {
		t.Error("default controls changed the logger")
	}
}
