package types

import (
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Value is the final value of a declaration: its native form, the canonical
// text used for logging and command-line replay, and whether the engine owns
// it and must release it when the run ends.
type Value struct {
	Native any
	Text   string
	Owned  bool
	Null   bool
}

// NullValue is the value of a nullable declaration set to nothing.
func NullValue() Value { return Value{Null: true} }

// RangePair is one inclusive interval of a [Range].
type RangePair struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Range is an ordered list of inclusive intervals.
type Range []RangePair

// String renders r as "start-end,start-end".
func (r Range) String() string {
	parts := make([]string, len(r))
	for i, p := range r {
		parts[i] = strconv.Itoa(p.Start) + "-" + strconv.Itoa(p.End)
	}

	return strings.Join(parts, ",")
}

// Contains reports whether pos falls in any interval of r.
func (r Range) Contains(pos int) bool {
	for _, p := range r {
		if pos >= p.Start && pos <= p.End {
			return true
		}
	}

	return false
}

// Pattern is a search pattern with an allowed number of mismatches.
type Pattern struct {
	Text     string `json:"text"               yaml:"text"`
	Name     string `json:"name,omitempty"     yaml:"name,omitempty"`
	Mismatch int    `json:"mismatch,omitempty" yaml:"mismatch,omitempty"`
}

// Regexp is a compiled regular expression with its source text.
type Regexp struct {
	*regexp.Regexp
	Name string
}

// Data is a value read through a [Loader].
type Data struct {
	Kind   string
	Query  string
	Name   string
	Object any
}

// Close releases the loaded object if it holds resources.
func (d *Data) Close() error {
	if c, ok := d.Object.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// Output is an opened output destination.
type Output struct {
	io.WriteCloser
	Kind string
	Path string
}

// Graph is a selected graphics device and its output target.
type Graph struct {
	Device string
	File   string
}
