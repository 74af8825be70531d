package types

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// Kind indexes a [Descriptor] in a [Registry].
type Kind int

// KindNone is the kind of declarations not backed by a descriptor, such as
// sections and variables.
const KindNone Kind = -1

// Descriptor describes one data kind.
type Descriptor struct {
	Name    string
	Group   Group
	Section string
	Help    string

	Attrs Schema
	Assoc []AssocDef
	Calc  Schema

	Cap Capability

	// Owned values hold resources the engine releases at the end of a run.
	Owned bool
	// Prompt reports whether a standard prompt is generated for the kind.
	Prompt bool
	// Nullable kinds may be cleared to an empty value by negation.
	Nullable bool
	// Toggle kinds are boolean values that control other declarations.
	Toggle bool
	// Ext is the default extension of generated output file names. An
	// empty Ext uses the application name.
	Ext string
}

// IsBool reports whether values of the kind are booleans, which take an
// optional value on the command line and support negation.
func (d *Descriptor) IsBool() bool {
	_, ok := d.Cap.(boolCap)

	return ok
}

// Keyword describes a pseudo-type: application, variable, relation, section,
// or endsection.
type Keyword struct {
	Name  string
	Level Level
	Attrs Schema
	Help  string
}

// Registry is the per-run table of kinds and keywords. Usage counters record
// how many declarations of each kind were parsed.
type Registry struct {
	descs    []*Descriptor
	index    map[string]Kind
	keywords []*Keyword
	uses     []int
}

// New returns a registry holding the standard kinds and keywords.
func New() *Registry {
	r := &Registry{index: make(map[string]Kind)}

	for _, d := range standardKinds() {
		_, _ = r.Register(d)
	}

	r.keywords = standardKeywords()

	return r
}

// Register adds a kind. Names are case-insensitive and must be unique.
func (r *Registry) Register(d Descriptor) (Kind, error) {
	key := strings.ToLower(d.Name)
	if _, ok := r.index[key]; ok || d.Name == "" || d.Cap == nil {
		return KindNone, ErrUnknown.With(slog.String("type", d.Name))
	}

	if _, ok := r.Keyword(d.Name); ok {
		return KindNone, ErrUnknown.With(slog.String("type", d.Name))
	}

	k := Kind(len(r.descs))
	r.descs = append(r.descs, &d)
	r.uses = append(r.uses, 0)
	r.index[key] = k

	return k, nil
}

// Len returns the number of kinds.
func (r *Registry) Len() int { return len(r.descs) }

// Lookup returns the kind with exactly the given name.
func (r *Registry) Lookup(name string) (Kind, bool) {
	k, ok := r.index[strings.ToLower(name)]

	return k, ok
}

// Descriptor returns the descriptor of k, or nil if k is not registered.
func (r *Registry) Descriptor(k Kind) *Descriptor {
	if k < 0 || int(k) >= len(r.descs) {
		return nil
	}

	return r.descs[k]
}

// All iterates the kinds in registration order.
func (r *Registry) All() iter.Seq2[Kind, *Descriptor] {
	return func(yield func(Kind, *Descriptor) bool) {
		for i, d := range r.descs {
			if !yield(Kind(i), d) {
				return
			}
		}
	}
}

// Names returns every kind name in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.descs))
	for i, d := range r.descs {
		names[i] = d.Name
	}

	return names
}

// Keyword returns the keyword with exactly the given name.
func (r *Registry) Keyword(name string) (*Keyword, bool) {
	i := slices.IndexFunc(r.keywords, func(k *Keyword) bool {
		return strings.EqualFold(k.Name, name)
	})
	if i < 0 {
		return nil, false
	}

	return r.keywords[i], true
}

// Keywords returns the keyword vocabulary.
func (r *Registry) Keywords() []*Keyword { return slices.Clone(r.keywords) }

// Use increments the usage counter of k.
func (r *Registry) Use(k Kind) {
	if k >= 0 && int(k) < len(r.uses) {
		r.uses[k]++
	}
}

// Uses returns the usage counter of k.
func (r *Registry) Uses(k Kind) int {
	if k < 0 || int(k) >= len(r.uses) {
		return 0
	}

	return r.uses[k]
}

func standardKeywords() []*Keyword {
	return []*Keyword{
		{
			Name:  "application",
			Level: LevelApplication,
			Help:  "Application definition",
			Attrs: Schema{
				{Name: "documentation", Kind: AttrString, Help: "Short description of the application function"},
				{Name: "groups", Kind: AttrString, Help: "Application groups"},
				{Name: "gui", Kind: AttrBool, Default: "Y", Help: "Suitable for a graphical interface"},
				{Name: "batch", Kind: AttrBool, Default: "Y", Help: "Suitable for batch processing"},
				{Name: "embassy", Kind: AttrString, Help: "Package name"},
				{Name: "external", Kind: AttrString, Multi: true, Help: "Third party tool(s) required by this program"},
				{Name: "cpu", Kind: AttrString, Help: "Estimated cpu usage"},
				{Name: "supplier", Kind: AttrString, Help: "Supplier name"},
				{Name: "version", Kind: AttrString, Help: "Version number"},
				{Name: "nonemboss", Kind: AttrBool, Default: "N", Help: "Not a native application"},
				{Name: "executable", Kind: AttrString, Help: "Non-EMBOSS executable for which this is an interface"},
				{Name: "template", Kind: AttrString, Help: "Template for alternate interfaces"},
				{Name: "comment", Kind: AttrString, Multi: true, Help: "Comment for alternate interfaces"},
				{Name: "obsolete", Kind: AttrString, Help: "Reason for obsolescence"},
				{Name: "keywords", Kind: AttrString, Help: "Keywords for the application"},
				{Name: "relations", Kind: AttrString, Multi: true, Help: "Relationship between this application and others"},
			},
		},
		{
			Name:  "variable",
			Level: LevelVariable,
			Help:  "Variable definition",
		},
		{
			Name:  "relation",
			Level: LevelRelation,
			Help:  "Relation definition",
			Attrs: Schema{
				{Name: "relations", Kind: AttrString, Multi: true, Help: "Relationship between items"},
			},
		},
		{
			Name:  "section",
			Level: LevelSection,
			Help:  "Start of a section",
			Attrs: Schema{
				{Name: "information", Kind: AttrString, Help: "Information for menus etc."},
				{Name: "type", Kind: AttrString, Default: "frame", Help: "Type (frame, page)"},
				{Name: "comment", Kind: AttrString, Multi: true, Help: "Comment for alternate interfaces"},
				{Name: "border", Kind: AttrInt, Default: "1", Help: "Border width"},
				{Name: "side", Kind: AttrString, Default: "top", Help: "Side (top, bottom, left, right) for type:frame"},
				{Name: "folder", Kind: AttrString, Help: "Folder name for type:page"},
			},
		},
		{
			Name:  "endsection",
			Level: LevelEndSection,
			Help:  "End of a section",
		},
	}
}

func standardKinds() []Descriptor {
	simple := func(name, help string, attrs Schema, c Capability) Descriptor {
		return Descriptor{
			Name: name, Group: GroupSimple, Section: SectionAdditional,
			Help: help, Attrs: attrs, Cap: c, Prompt: true,
		}
	}

	input := func(name, help string, attrs Schema, assoc []AssocDef, calc Schema, c Capability) Descriptor {
		return Descriptor{
			Name: name, Group: GroupInput, Section: SectionInput,
			Help: help, Attrs: attrs, Assoc: assoc, Calc: calc, Cap: c,
			Prompt: true, Nullable: true, Owned: true,
		}
	}

	data := func(name, help string, calc Schema) Descriptor {
		return input(name, help, dataAttrs, dataAssoc, calc, dataCap{kind: name})
	}

	seq := func(name, help string, calc Schema) Descriptor {
		return input(name, help, seqAttrs, seqAssoc, calc, dataCap{kind: name})
	}

	output := func(name, help, ext string, assoc []AssocDef) Descriptor {
		return Descriptor{
			Name: name, Group: GroupOutput, Section: SectionOutput,
			Help: help, Attrs: outAttrs, Assoc: assoc, Cap: outputCap{kind: name, ext: ext},
			Prompt: true, Nullable: true, Owned: true, Ext: ext,
		}
	}

	graph := func(name, help string) Descriptor {
		return Descriptor{
			Name: name, Group: GroupGraph, Section: SectionOutput,
			Help: help, Attrs: graphAttrs, Assoc: graphAssoc, Cap: graphCap{xy: name == "xygraph"},
			Prompt: true, Nullable: true,
		}
	}

	return []Descriptor{
		// simple
		simple("array", "List of floating point numbers", arrayAttrs, arrayCap{}),
		{
			Name: "boolean", Group: GroupSimple, Section: SectionAdditional,
			Help: "Boolean value Yes/No", Cap: boolCap{}, Prompt: true,
		},
		simple("float", "Floating point number", floatAttrs, floatCap{}),
		simple("integer", "Integer", intAttrs, intCap{}),
		simple("range", "Sequence range", rangeValueAttrs, rangeCap{}),
		simple("string", "String value", stringAttrs, stringCap{}),
		{
			Name: "toggle", Group: GroupSimple, Section: SectionAdditional,
			Help: "Toggle value Yes/No", Cap: boolCap{toggle: true}, Prompt: true, Toggle: true,
		},

		// selection
		{
			Name: "list", Group: GroupSelection, Section: SectionAdditional,
			Help: "Choose from menu list of values", Attrs: listAttrs, Calc: listCalc,
			Cap: listCap{}, Prompt: true,
		},
		{
			Name: "selection", Group: GroupSelection, Section: SectionAdditional,
			Help: "Choose from selection list of values", Attrs: selectionAttrs, Calc: listCalc,
			Cap: selectionCap{}, Prompt: true,
		},
		{
			Name: "pattern", Group: GroupSimple, Section: SectionRequired,
			Help: "Property value pattern", Attrs: patternAttrs, Assoc: patternAssoc,
			Cap: patternCap{}, Prompt: true,
		},
		{
			Name: "regexp", Group: GroupSimple, Section: SectionRequired,
			Help: "Regular expression pattern", Attrs: regexpAttrs, Assoc: regexpAssoc,
			Cap: regexpCap{}, Prompt: true,
		},

		// input files
		input("infile", "Input file", infileAttrs, nil, fileCalc, fileCap{}),
		input("datafile", "Data file", infileAttrs, nil, fileCalc, fileCap{data: true}),
		input("directory", "Directory", directoryAttrs, nil, fileCalc, dirCap{}),
		input("dirlist", "Directory with files", directoryAttrs, nil, listCalc, dirCap{list: true}),
		input("filelist", "Comma-separated file list", nullAttrs, nil, listCalc, fileListCap{}),

		// input data
		data("assembly", "Assembly of sequence reads", dataCalc),
		data("codon", "Codon usage file", dataCalc),
		data("cpdb", "Cleaned PDB file", dataCalc),
		data("discretestates", "Discrete states file", dataCalc),
		data("distances", "Distance matrix", dataCalc),
		input("features", "Readable feature table", dataAttrs, featAssoc, seqCalc, dataCap{kind: "features"}),
		data("frequencies", "Frequency value(s)", dataCalc),
		data("matrix", "Comparison matrix file in EMBOSS data path", matrixCalc),
		data("matrixf", "Comparison matrix file in EMBOSS data path", matrixCalc),
		data("obo", "OBO ontology term(s)", dataCalc),
		data("properties", "Property value(s)", dataCalc),
		data("refseq", "Reference sequence", dataCalc),
		data("resource", "Data resource", dataCalc),
		data("scop", "Scop entry", dataCalc),
		seq("sequence", "Readable sequence", seqCalc),
		seq("seqall", "Readable sequence(s)", seqSetCalc),
		seq("seqset", "Readable set of sequences", seqSetCalc),
		seq("seqsetall", "Readable sets of sequences", seqSetCalc),
		data("taxon", "NCBI taxonomy entries", dataCalc),
		data("text", "Text entries", dataCalc),
		data("tree", "Phylogenetic tree", dataCalc),
		data("url", "URL", dataCalc),
		data("variation", "Variation data", dataCalc),
		data("xml", "XML data", dataCalc),

		// output
		output("align", "Alignment output file", "align", alignAssoc),
		output("featout", "Writeable feature table", "gff", featoutAssoc),
		output("outassembly", "Assembly output", "sam", formatOutAssoc),
		output("outcodon", "Codon usage file", "cut", formatOutAssoc),
		output("outcpdb", "Cleaned PDB file", "cpdb", formatOutAssoc),
		output("outdata", "Formatted output file", "", formatOutAssoc),
		{
			Name: "outdir", Group: GroupOutput, Section: SectionOutput,
			Help: "Output directory", Attrs: outdirAttrs, Cap: dirCap{output: true},
			Prompt: true, Nullable: true,
		},
		output("outdiscrete", "Discrete states file", "phylip", formatOutAssoc),
		output("outdistance", "Distance matrix", "phylip", formatOutAssoc),
		output("outfile", "Output file", "", outAssoc),
		output("outfileall", "Multiple output files", "", outAssoc),
		output("outfreq", "Frequency value(s)", "phylip", formatOutAssoc),
		output("outmatrix", "Comparison matrix file", "mat", formatOutAssoc),
		output("outmatrixf", "Comparison matrix file", "mat", formatOutAssoc),
		output("outobo", "OBO ontology term(s)", "obo", formatOutAssoc),
		output("outproperties", "Property value(s)", "prop", formatOutAssoc),
		output("outrefseq", "Reference sequence", "fasta", formatOutAssoc),
		output("outresource", "Data resource", "drcat", formatOutAssoc),
		output("outscop", "Scop entry", "scop", formatOutAssoc),
		output("outtaxon", "NCBI taxonomy entries", "taxon", formatOutAssoc),
		output("outtext", "Text entries", "text", formatOutAssoc),
		output("outtree", "Phylogenetic tree", "treefile", formatOutAssoc),
		output("outurl", "URL", "url", formatOutAssoc),
		output("outvariation", "Variation data", "vcf", formatOutAssoc),
		output("outxml", "XML data", "xml", formatOutAssoc),
		output("report", "Report output file", "report", reportAssoc),
		output("seqout", "Writeable sequence", "fasta", seqoutAssoc),
		output("seqoutall", "Writeable sequence(s)", "fasta", seqoutAssoc),
		output("seqoutset", "Writeable sequences", "fasta", seqoutAssoc),

		// graph
		graph("graph", "Graph device for a general graph"),
		graph("xygraph", "Graph device for a 2D graph"),
	}
}

// IsSequenceKind reports whether kind reads sequences.
func IsSequenceKind(kind string) bool {
	switch kind {
	case "sequence", "seqall", "seqset", "seqsetall":
		return true
	default:
		return false
	}
}
