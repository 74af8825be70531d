package lang

import (
	"iter"
	"slices"
	"strings"

	"github.com/ardnew/acd/log"
	"github.com/ardnew/acd/types"
)

// Flag records what happened to a declaration while matching and setting.
type Flag uint8

const (
	// FlagDefined marks a declaration given a value on the command line or
	// by association with one that was.
	FlagDefined Flag = 1 << iota
	// FlagUser marks a declaration named or positioned by the user.
	FlagUser
	// FlagNull marks a declaration the user explicitly set to nothing.
	FlagNull
	// FlagSet marks a declaration whose final value has been written.
	FlagSet
)

// Attr is one raw attribute as written in the declaration file.
type Attr struct {
	Name  string `json:"name"            yaml:"name"`
	Value string `json:"value"           yaml:"value"`
	// Assoc marks an attribute naming an associated qualifier, whose value
	// is that qualifier's default.
	Assoc bool `json:"assoc,omitempty" yaml:"assoc,omitempty"`
}

// Decl is one parsed entry of a declaration file. Decls live in a [Graph]
// and refer to each other by index.
type Decl struct {
	Index   int
	Name    string
	Token   string
	Level   types.Level
	Type    string
	Kind    types.Kind
	Section string
	Attrs   []Attr
	Line    int

	// Master is the index of the declaration an associated qualifier belongs
	// to, or -1. A master's associated qualifiers occupy
	// [AssocFirst, AssocFirst+AssocCount) and immediately precede it.
	Master     int
	AssocFirst int
	AssocCount int

	// Param is the 1-based parameter number, or 0.
	Param int

	// Run state written by the matcher and the setter.
	Flags Flag
	Input string
	Calc  map[string]string
	Value types.Value
	Uses  int
}

// Attr returns the last raw value of the named attribute.
func (d *Decl) Attr(name string) (string, bool) {
	for i := len(d.Attrs) - 1; i >= 0; i-- {
		if !d.Attrs[i].Assoc && strings.EqualFold(d.Attrs[i].Name, name) {
			return d.Attrs[i].Value, true
		}
	}

	return "", false
}

// SetAttr replaces the named attribute or appends it.
func (d *Decl) SetAttr(name, value string) {
	for i := range d.Attrs {
		if !d.Attrs[i].Assoc && strings.EqualFold(d.Attrs[i].Name, name) {
			d.Attrs[i].Value = value

			return
		}
	}

	d.Attrs = append(d.Attrs, Attr{Name: name, Value: value})
}

// Has reports whether every flag in f is set.
func (d *Decl) Has(f Flag) bool { return d.Flags&f == f }

// Mark sets the flags in f.
func (d *Decl) Mark(f Flag) { d.Flags |= f }

// Clear unsets the flags in f.
func (d *Decl) Clear(f Flag) { d.Flags &^= f }

// IsAssoc reports whether d is an associated qualifier.
func (d *Decl) IsAssoc() bool { return d.Master >= 0 }

// IsQualifier reports whether d can be named on the command line.
func (d *Decl) IsQualifier() bool { return d.Level.IsQualifier() }

// Matches reports whether s equals the name or token of d, ignoring case.
func (d *Decl) Matches(s string) bool {
	return strings.EqualFold(d.Name, s) || (d.Token != "" && strings.EqualFold(d.Token, s))
}

// Graph is the ordered arena of declarations parsed from one file.
type Graph struct {
	Program string
	File    string

	decls     []*Decl
	registry  *types.Registry
	logger    log.Logger
	processed bool
	params    int
}

// Option configures parsing.
type Option func(*Graph)

// WithProgram requires the application name to equal program.
func WithProgram(program string) Option {
	return func(g *Graph) {
		g.Program = program
	}
}

// WithFile sets the file name used in diagnostics.
func WithFile(file string) Option {
	return func(g *Graph) {
		g.File = file
	}
}

// WithRegistry sets the type registry. A fresh standard registry is used
// otherwise.
func WithRegistry(r *types.Registry) Option {
	return func(g *Graph) {
		g.registry = r
	}
}

// WithLogger sets the logger for parse and process diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// Len returns the number of declarations.
func (g *Graph) Len() int { return len(g.decls) }

// Decl returns the declaration at index i.
func (g *Graph) Decl(i int) *Decl {
	if i < 0 || i >= len(g.decls) {
		return nil
	}

	return g.decls[i]
}

// All iterates the declarations in file order.
func (g *Graph) All() iter.Seq2[int, *Decl] {
	return func(yield func(int, *Decl) bool) {
		for i, d := range g.decls {
			if !yield(i, d) {
				return
			}
		}
	}
}

// Registry returns the type registry the graph was parsed with.
func (g *Graph) Registry() *types.Registry { return g.registry }

// Logger returns the graph's logger.
func (g *Graph) Logger() log.Logger { return g.logger }

// Descriptor returns the type descriptor of d, or nil for keywords.
func (g *Graph) Descriptor(d *Decl) *types.Descriptor {
	return g.registry.Descriptor(d.Kind)
}

// Application returns the application declaration.
func (g *Graph) Application() *Decl {
	if len(g.decls) == 0 || g.decls[0].Level != types.LevelApplication {
		return nil
	}

	return g.decls[0]
}

// Find returns the first top-level declaration whose name or token equals
// name, ignoring case. Associated qualifiers are not considered.
func (g *Graph) Find(name string) *Decl {
	for _, d := range g.decls {
		if !d.IsAssoc() && (d.Level.IsQualifier() || d.Level == types.LevelVariable) && d.Matches(name) {
			return d
		}
	}

	return nil
}

// Master returns the declaration that associated qualifier d belongs to.
func (g *Graph) Master(d *Decl) *Decl { return g.Decl(d.Master) }

// Assoc returns the associated qualifiers of master d.
func (g *Graph) Assoc(d *Decl) []*Decl {
	if d.AssocCount == 0 {
		return nil
	}

	return g.decls[d.AssocFirst : d.AssocFirst+d.AssocCount]
}

// AssocNamed returns the associated qualifier of master d named name.
func (g *Graph) AssocNamed(d *Decl, name string) *Decl {
	for _, a := range g.Assoc(d) {
		if strings.EqualFold(a.Name, name) {
			return a
		}
	}

	return nil
}

// Params returns the parameters in parameter-number order.
func (g *Graph) Params() []*Decl {
	var out []*Decl

	for _, d := range g.decls {
		if d.Param > 0 {
			out = append(out, d)
		}
	}

	return out
}

// Qualifiers returns every top-level qualifier and parameter in file order.
func (g *Graph) Qualifiers() []*Decl {
	return slices.DeleteFunc(slices.Clone(g.decls), func(d *Decl) bool {
		return d.IsAssoc() || !d.Level.IsQualifier()
	})
}

// Masters returns every declaration with associated qualifiers.
func (g *Graph) Masters() []*Decl {
	return slices.DeleteFunc(slices.Clone(g.decls), func(d *Decl) bool {
		return d.AssocCount == 0
	})
}

// Processed reports whether [Graph.Process] has completed.
func (g *Graph) Processed() bool { return g.processed }

func (g *Graph) add(d *Decl) *Decl {
	d.Index = len(g.decls)
	g.decls = append(g.decls, d)

	return d
}
