package cmdline

import (
	"strings"

	"github.com/ardnew/acd/config"
)

// Controls holds the process-wide switches recognised ahead of the
// declarations. Warning, Error, Fatal and Die are on unless negated.
type Controls struct {
	Auto    bool `json:"auto"    yaml:"auto"`
	Stdout  bool `json:"stdout"  yaml:"stdout"`
	Filter  bool `json:"filter"  yaml:"filter"`
	Options bool `json:"options" yaml:"options"`
	Help    bool `json:"help"    yaml:"help"`
	Debug   bool `json:"debug"   yaml:"debug"`
	Verbose bool `json:"verbose" yaml:"verbose"`
	Warning bool `json:"warning" yaml:"warning"`
	Error   bool `json:"error"   yaml:"error"`
	Fatal   bool `json:"fatal"   yaml:"fatal"`
	Die     bool `json:"die"     yaml:"die"`
	Version bool `json:"version" yaml:"version"`
}

// DefaultControls returns the controls in effect when none are given.
func DefaultControls() Controls {
	return Controls{Warning: true, Error: true, Fatal: true, Die: true}
}

// ControlNames lists the control vocabulary.
func ControlNames() []string {
	return []string{
		"auto", "stdout", "filter", "options", "help", "debug",
		"verbose", "warning", "error", "fatal", "die", "version",
	}
}

func (c *Controls) field(name string) *bool {
	switch strings.ToLower(name) {
	case "auto":
		return &c.Auto
	case "stdout":
		return &c.Stdout
	case "filter":
		return &c.Filter
	case "options":
		return &c.Options
	case "help":
		return &c.Help
	case "debug":
		return &c.Debug
	case "verbose":
		return &c.Verbose
	case "warning":
		return &c.Warning
	case "error":
		return &c.Error
	case "fatal":
		return &c.Fatal
	case "die":
		return &c.Die
	case "version":
		return &c.Version
	default:
		return nil
	}
}

// Set assigns the named control. It reports false for names outside the
// vocabulary.
func (c *Controls) Set(name string, on bool) bool {
	f := c.field(name)
	if f == nil {
		return false
	}

	*f = on

	// -filter reads the first input from stdin and writes the first output
	// to stdout without prompting.
	if on && strings.EqualFold(name, "filter") {
		c.Auto, c.Stdout = true, true
	}

	return true
}

// Interactive reports whether missing values may be prompted for.
func (c Controls) Interactive() bool {
	return !c.Auto && !c.Filter
}

// isBoolLiteral reports whether s reads as a boolean value.
func isBoolLiteral(s string) bool {
	_, err := config.ParseBool(s)

	return err == nil
}
