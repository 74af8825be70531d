package types

import "strings"

// Level classifies a declaration.
type Level int

const (
	LevelNone Level = iota
	LevelApplication
	LevelParameter
	LevelQualifier
	LevelVariable
	LevelRelation
	LevelSection
	LevelEndSection
)

//nolint:gochecknoglobals
var levelName = [...]string{
	LevelNone:        "none",
	LevelApplication: "application",
	LevelParameter:   "parameter",
	LevelQualifier:   "qualifier",
	LevelVariable:    "variable",
	LevelRelation:    "relation",
	LevelSection:     "section",
	LevelEndSection:  "endsection",
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelName) {
		return "unknown"
	}

	return levelName[l]
}

// IsQualifier reports whether l is a qualifier or parameter level, the
// levels backed by a [Descriptor].
func (l Level) IsQualifier() bool {
	return l == LevelParameter || l == LevelQualifier
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Group places a kind in the help output.
type Group int

const (
	GroupSimple Group = iota
	GroupSelection
	GroupInput
	GroupOutput
	GroupGraph
)

func (g Group) String() string {
	switch g {
	case GroupSimple:
		return "simple"
	case GroupSelection:
		return "selection"
	case GroupInput:
		return "input"
	case GroupOutput:
		return "output"
	case GroupGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (g Group) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// Standard section names a kind is expected to be declared in.
const (
	SectionInput      = "input"
	SectionRequired   = "required"
	SectionAdditional = "additional"
	SectionAdvanced   = "advanced"
	SectionOutput     = "output"
)

// Sections lists the standard sections in help order.
func Sections() []string {
	return []string{
		SectionInput,
		SectionRequired,
		SectionAdditional,
		SectionAdvanced,
		SectionOutput,
	}
}

// IsSection reports whether name is a standard section.
func IsSection(name string) bool {
	for _, s := range Sections() {
		if strings.EqualFold(s, name) {
			return true
		}
	}

	return false
}
