package types

import (
	"slices"
	"strings"
)

// AttrKind is the value kind an attribute is validated as once resolved.
type AttrKind int

const (
	AttrString AttrKind = iota
	AttrBool
	AttrInt
	AttrFloat
	AttrList
)

func (k AttrKind) String() string {
	switch k {
	case AttrString:
		return "string"
	case AttrBool:
		return "boolean"
	case AttrInt:
		return "integer"
	case AttrFloat:
		return "float"
	case AttrList:
		return "list"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k AttrKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// AttrDef describes one attribute a declaration may set.
type AttrDef struct {
	Name    string   `json:"name"              yaml:"name"`
	Kind    AttrKind `json:"kind"              yaml:"kind"`
	Default string   `json:"default,omitempty" yaml:"default,omitempty"`
	Help    string   `json:"help,omitempty"    yaml:"help,omitempty"`
	// Multi attributes may be given more than once; the values are joined
	// with a single space.
	Multi bool `json:"multi,omitempty" yaml:"multi,omitempty"`
}

// AssocDef describes an associated qualifier generated for every declaration
// of a kind, such as the begin position of a sequence.
type AssocDef struct {
	Name    string `json:"name"              yaml:"name"`
	Type    string `json:"type"              yaml:"type"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	Help    string `json:"help,omitempty"    yaml:"help,omitempty"`
}

// Schema is an ordered attribute list.
type Schema []AttrDef

// Find returns the attribute named name.
func (s Schema) Find(name string) (AttrDef, bool) {
	i := slices.IndexFunc(s, func(a AttrDef) bool {
		return strings.EqualFold(a.Name, name)
	})
	if i < 0 {
		return AttrDef{}, false
	}

	return s[i], true
}

// Names returns the attribute names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, a := range s {
		names[i] = a.Name
	}

	return names
}

func concat(parts ...Schema) Schema {
	var out Schema
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

// Attribute names shared by every qualifier, stored apart from the
// kind-specific attributes.
const (
	AttrDefault        = "default"
	AttrInformation    = "information"
	AttrPrompt         = "prompt"
	AttrCode           = "code"
	AttrHelp           = "help"
	AttrParameter      = "parameter"
	AttrStandard       = "standard"
	AttrAdditional     = "additional"
	AttrMissing        = "missing"
	AttrValid          = "valid"
	AttrExpected       = "expected"
	AttrNeeded         = "needed"
	AttrKnownType      = "knowntype"
	AttrRelations      = "relations"
	AttrOutputModifier = "outputmodifier"
	AttrStyle          = "style"
	AttrQualifier      = "qualifier"
	AttrTemplate       = "template"
	AttrComment        = "comment"
)

// DefaultAttrs returns the attributes every qualifier accepts.
func DefaultAttrs() Schema {
	return Schema{
		{Name: AttrDefault, Kind: AttrString, Help: "Default value"},
		{Name: AttrInformation, Kind: AttrString, Help: "Information for menus etc., and default prompt"},
		{Name: AttrPrompt, Kind: AttrString, Help: "Prompt (if information is not clear enough)"},
		{Name: AttrCode, Kind: AttrString, Help: "Code name for information/prompt to be looked up in standard table"},
		{Name: AttrHelp, Kind: AttrString, Help: "Text for help documentation"},
		{Name: AttrParameter, Kind: AttrBool, Default: "N", Help: "Command line parameter. Can be on the command line with no qualifier name"},
		{Name: AttrStandard, Kind: AttrBool, Default: "N", Help: "Standard qualifier, value required. Interface will always prompt unless a value is given"},
		{Name: AttrAdditional, Kind: AttrBool, Default: "N", Help: "Additional qualifier. Value required if -options is specified"},
		{Name: AttrMissing, Kind: AttrBool, Default: "N", Help: "Allow with a missing value on the command line"},
		{Name: AttrValid, Kind: AttrString, Help: "Help: String description of allowed values for -help output"},
		{Name: AttrExpected, Kind: AttrString, Help: "Help: String description of the expected value for -help output"},
		{Name: AttrNeeded, Kind: AttrBool, Default: "Y", Help: "Include in GUI form, used to hide options if they are unlikely to be used"},
		{Name: AttrKnownType, Kind: AttrString, Help: "Known standard type, used to define input and output types for workflows"},
		{Name: AttrRelations, Kind: AttrString, Multi: true, Help: "Relationship between this ACD item and others"},
		{Name: AttrOutputModifier, Kind: AttrBool, Default: "N", Help: "Modifies the output in ways that can break parsers"},
		{Name: AttrStyle, Kind: AttrString, Help: "Style for alternate interfaces"},
		{Name: AttrQualifier, Kind: AttrString, Help: "Name of the qualifier on the command line"},
		{Name: AttrTemplate, Kind: AttrString, Help: "Template for alternate interfaces"},
		{Name: AttrComment, Kind: AttrString, Multi: true, Help: "Comment for alternate interfaces"},
	}
}

// IsDefaultAttr reports whether name is one of [DefaultAttrs].
func IsDefaultAttr(name string) bool {
	_, ok := DefaultAttrs().Find(name)

	return ok
}

//nolint:gochecknoglobals
var (
	rangeAttrs = Schema{
		{Name: "failrange", Kind: AttrBool, Default: "N", Help: "Fail if values are out of range"},
		{Name: "warnrange", Kind: AttrBool, Default: "Y", Help: "Warning if values are out of range"},
	}

	caseAttrs = Schema{
		{Name: "upper", Kind: AttrBool, Default: "N", Help: "Convert to upper case"},
		{Name: "lower", Kind: AttrBool, Default: "N", Help: "Convert to lower case"},
	}

	lengthAttrs = Schema{
		{Name: "minlength", Kind: AttrInt, Default: "0", Help: "Minimum length"},
		{Name: "maxlength", Kind: AttrInt, Help: "Maximum length"},
	}

	nullAttrs = Schema{
		{Name: "nullok", Kind: AttrBool, Default: "N", Help: "Can accept a null value"},
	}

	intAttrs = concat(Schema{
		{Name: "minimum", Kind: AttrInt, Help: "Minimum value"},
		{Name: "maximum", Kind: AttrInt, Help: "Maximum value"},
		{Name: "increment", Kind: AttrInt, Default: "0", Help: "(Not used by ACD) Increment for GUIs"},
		{Name: "trueminimum", Kind: AttrBool, Default: "N", Help: "Minimum value must be true"},
		{Name: "large", Kind: AttrBool, Default: "N", Help: "Large integer value"},
	}, rangeAttrs)

	floatAttrs = concat(Schema{
		{Name: "minimum", Kind: AttrFloat, Help: "Minimum value"},
		{Name: "maximum", Kind: AttrFloat, Help: "Maximum value"},
		{Name: "increment", Kind: AttrFloat, Default: "1.0", Help: "(Not used by ACD) Increment for GUIs"},
		{Name: "precision", Kind: AttrInt, Default: "3", Help: "Digits after the decimal point"},
		{Name: "trueminimum", Kind: AttrBool, Default: "N", Help: "Minimum value must be true"},
	}, rangeAttrs)

	arrayAttrs = concat(Schema{
		{Name: "minimum", Kind: AttrFloat, Help: "Minimum value"},
		{Name: "maximum", Kind: AttrFloat, Help: "Maximum value"},
		{Name: "increment", Kind: AttrFloat, Default: "1.0", Help: "(Not used by ACD) Increment for GUIs"},
		{Name: "precision", Kind: AttrInt, Default: "3", Help: "Digits after the decimal point"},
		{Name: "size", Kind: AttrInt, Help: "Exact number of values required"},
		{Name: "sum", Kind: AttrFloat, Help: "Total all values should add up to"},
		{Name: "tolerance", Kind: AttrFloat, Default: "0.01", Help: "Tolerance for the sum"},
	}, rangeAttrs, nullAttrs)

	rangeValueAttrs = Schema{
		{Name: "minimum", Kind: AttrInt, Help: "Minimum position"},
		{Name: "maximum", Kind: AttrInt, Help: "Maximum position"},
		{Name: "size", Kind: AttrInt, Help: "Exact number of values required"},
		{Name: "minsize", Kind: AttrInt, Help: "Minimum number of values required"},
		{Name: "nullok", Kind: AttrBool, Default: "N", Help: "Can accept a null value"},
	}

	stringAttrs = concat(lengthAttrs, Schema{
		{Name: "pattern", Kind: AttrString, Help: "Regular expression for validation"},
		{Name: "word", Kind: AttrBool, Default: "N", Help: "Disallow whitespace in strings"},
	}, caseAttrs, nullAttrs)

	listAttrs = Schema{
		{Name: "minimum", Kind: AttrInt, Default: "1", Help: "Minimum number of selections"},
		{Name: "maximum", Kind: AttrInt, Default: "1", Help: "Maximum number of selections"},
		{Name: "button", Kind: AttrBool, Default: "N", Help: "(Not used by ACD) Prefer checkboxes for GUI"},
		{Name: "casesensitive", Kind: AttrBool, Default: "N", Help: "Case sensitive"},
		{Name: "header", Kind: AttrString, Help: "Header description for list"},
		{Name: "delimiter", Kind: AttrString, Default: ";", Help: "Delimiter for parsing values"},
		{Name: "codedelimiter", Kind: AttrString, Default: ":", Help: "Delimiter for parsing"},
		{Name: "values", Kind: AttrList, Help: "Codes and values with delimiters"},
	}

	selectionAttrs = Schema{
		{Name: "minimum", Kind: AttrInt, Default: "1", Help: "Minimum number of selections"},
		{Name: "maximum", Kind: AttrInt, Default: "1", Help: "Maximum number of selections"},
		{Name: "button", Kind: AttrBool, Default: "N", Help: "(Not used by ACD) Prefer radiobuttons for GUI"},
		{Name: "casesensitive", Kind: AttrBool, Default: "N", Help: "Case sensitive"},
		{Name: "header", Kind: AttrString, Help: "Header description for selection list"},
		{Name: "delimiter", Kind: AttrString, Default: ";", Help: "Delimiter for parsing values"},
		{Name: "values", Kind: AttrList, Help: "Values with delimiters"},
	}

	regexpAttrs = concat(lengthAttrs, caseAttrs, Schema{
		{Name: "type", Kind: AttrString, Default: "string", Help: "Type (string, protein, nucleotide)"},
	})

	patternAttrs = concat(lengthAttrs, caseAttrs, Schema{
		{Name: "type", Kind: AttrString, Default: "string", Help: "Type (string, protein, nucleotide)"},
	})

	infileAttrs = concat(nullAttrs, Schema{
		{Name: "trydefault", Kind: AttrBool, Default: "N", Help: "Accept the default if it exists, otherwise allow null"},
	})

	directoryAttrs = concat(nullAttrs, Schema{
		{Name: "fullpath", Kind: AttrBool, Default: "N", Help: "Require the full path in the value"},
		{Name: "extension", Kind: AttrString, Help: "Default file extension"},
	})

	dataAttrs = concat(nullAttrs, Schema{
		{Name: "type", Kind: AttrString, Help: "Input type"},
		{Name: "features", Kind: AttrBool, Default: "N", Help: "Read features if any"},
		{Name: "entry", Kind: AttrBool, Default: "N", Help: "Read whole entry text"},
	})

	seqAttrs = concat(dataAttrs, Schema{
		{Name: "minseqs", Kind: AttrInt, Default: "1", Help: "Minimum number of sequences"},
		{Name: "maxseqs", Kind: AttrInt, Help: "Maximum number of sequences"},
		{Name: "aligned", Kind: AttrBool, Default: "N", Help: "Sequences are aligned"},
	})

	outAttrs = concat(nullAttrs, Schema{
		{Name: "extension", Kind: AttrString, Help: "Default file extension"},
		{Name: "append", Kind: AttrBool, Default: "N", Help: "Append to an existing file"},
		{Name: "nulldefault", Kind: AttrBool, Default: "N", Help: "Defaults to 'no file'"},
		{Name: "type", Kind: AttrString, Help: "Output type"},
	})

	outdirAttrs = concat(nullAttrs, Schema{
		{Name: "fullpath", Kind: AttrBool, Default: "N", Help: "Require the full path in the value"},
		{Name: "extension", Kind: AttrString, Help: "Default file extension"},
		{Name: "binary", Kind: AttrBool, Default: "N", Help: "Files are binary"},
		{Name: "temporary", Kind: AttrBool, Default: "N", Help: "Scratch directory"},
	})

	graphAttrs = concat(nullAttrs, Schema{
		{Name: "multiple", Kind: AttrInt, Default: "1", Help: "Number of graphs"},
		{Name: "gdesc", Kind: AttrString, Help: "Graph description"},
	})
)

//nolint:gochecknoglobals
var (
	seqAssoc = []AssocDef{
		{Name: "sbegin", Type: "integer", Default: "0", Help: "Start of the sequence to be used"},
		{Name: "send", Type: "integer", Default: "0", Help: "End of the sequence to be used"},
		{Name: "sreverse", Type: "boolean", Default: "N", Help: "Reverse (if DNA)"},
		{Name: "sask", Type: "boolean", Default: "N", Help: "Ask for begin/end/reverse"},
		{Name: "snucleotide", Type: "boolean", Default: "N", Help: "Sequence is nucleotide"},
		{Name: "sprotein", Type: "boolean", Default: "N", Help: "Sequence is protein"},
		{Name: "slower", Type: "boolean", Default: "N", Help: "Make lower case"},
		{Name: "supper", Type: "boolean", Default: "N", Help: "Make upper case"},
		{Name: "sformat", Type: "string", Help: "Input sequence format"},
		{Name: "sdbname", Type: "string", Help: "Database name"},
		{Name: "sid", Type: "string", Help: "Entryname"},
		{Name: "ufo", Type: "string", Help: "UFO features"},
		{Name: "fformat", Type: "string", Help: "Features format"},
		{Name: "fopenfile", Type: "string", Help: "Features file name"},
	}

	featAssoc = []AssocDef{
		{Name: "fformat", Type: "string", Help: "Features format"},
		{Name: "fopenfile", Type: "string", Help: "Features file name"},
		{Name: "fask", Type: "boolean", Default: "N", Help: "Prompt for begin/end/reverse"},
		{Name: "fbegin", Type: "integer", Default: "0", Help: "Start of the features to be used"},
		{Name: "fend", Type: "integer", Default: "0", Help: "End of the features to be used"},
		{Name: "freverse", Type: "boolean", Default: "N", Help: "Reverse (if DNA)"},
	}

	dataAssoc = []AssocDef{
		{Name: "iformat", Type: "string", Help: "Input format"},
		{Name: "iquery", Type: "string", Help: "Input query fields or ID list"},
		{Name: "ioffset", Type: "integer", Default: "0", Help: "Input start position offset"},
		{Name: "idbname", Type: "string", Help: "User-provided database name"},
	}

	outAssoc = []AssocDef{
		{Name: "odirectory", Type: "string", Help: "Output directory"},
	}

	formatOutAssoc = []AssocDef{
		{Name: "odirectory", Type: "string", Help: "Output directory"},
		{Name: "oformat", Type: "string", Help: "Output format specific to this data type"},
	}

	seqoutAssoc = []AssocDef{
		{Name: "osformat", Type: "string", Help: "Output seq format"},
		{Name: "osextension", Type: "string", Help: "File name extension"},
		{Name: "osname", Type: "string", Help: "Base file name"},
		{Name: "osdirectory", Type: "string", Help: "Output directory"},
		{Name: "osdbname", Type: "string", Help: "Database name to add"},
		{Name: "ossingle", Type: "boolean", Default: "N", Help: "Separate file for each entry"},
		{Name: "oufo", Type: "string", Help: "UFO features"},
		{Name: "offormat", Type: "string", Help: "Features format"},
		{Name: "ofname", Type: "string", Help: "Features file name"},
		{Name: "ofdirectory", Type: "string", Help: "Output directory"},
	}

	reportAssoc = []AssocDef{
		{Name: "rformat", Type: "string", Help: "Report format"},
		{Name: "rname", Type: "string", Help: "Base file name"},
		{Name: "rextension", Type: "string", Help: "File name extension"},
		{Name: "rdirectory", Type: "string", Help: "Output directory"},
		{Name: "raccshow", Type: "boolean", Default: "N", Help: "Show accession number in the report"},
		{Name: "rdesshow", Type: "boolean", Default: "N", Help: "Show description in the report"},
		{Name: "rscoreshow", Type: "boolean", Default: "Y", Help: "Show the score in the report"},
		{Name: "rusashow", Type: "boolean", Default: "N", Help: "Show the full USA in the report"},
		{Name: "rmaxall", Type: "integer", Default: "0", Help: "Maximum total hits to report"},
		{Name: "rmaxseq", Type: "integer", Default: "0", Help: "Maximum hits to report for one sequence"},
	}

	alignAssoc = []AssocDef{
		{Name: "aformat", Type: "string", Help: "Alignment format"},
		{Name: "aextension", Type: "string", Help: "File name extension"},
		{Name: "adirectory", Type: "string", Help: "Output directory"},
		{Name: "aname", Type: "string", Help: "Base file name"},
		{Name: "awidth", Type: "integer", Default: "0", Help: "Alignment width"},
		{Name: "aaccshow", Type: "boolean", Default: "N", Help: "Show accession number in the header"},
		{Name: "adesshow", Type: "boolean", Default: "N", Help: "Show description in the header"},
		{Name: "ausashow", Type: "boolean", Default: "N", Help: "Show the full USA in the alignment"},
		{Name: "aglobal", Type: "boolean", Default: "N", Help: "Show the full sequence in alignment"},
	}

	featoutAssoc = []AssocDef{
		{Name: "offormat", Type: "string", Help: "Output feature format"},
		{Name: "ofopenfile", Type: "string", Help: "Features file name"},
		{Name: "ofextension", Type: "string", Help: "File name extension"},
		{Name: "ofdirectory", Type: "string", Help: "Output directory"},
		{Name: "ofname", Type: "string", Help: "Base file name"},
		{Name: "ofsingle", Type: "boolean", Default: "N", Help: "Separate file for each entry"},
	}

	graphAssoc = []AssocDef{
		{Name: "gprompt", Type: "boolean", Default: "N", Help: "Graph prompting"},
		{Name: "gdesc", Type: "string", Help: "Graph description"},
		{Name: "gtitle", Type: "string", Help: "Graph title"},
		{Name: "gsubtitle", Type: "string", Help: "Graph subtitle"},
		{Name: "gxtitle", Type: "string", Help: "Graph x axis title"},
		{Name: "gytitle", Type: "string", Help: "Graph y axis title"},
		{Name: "goutfile", Type: "string", Help: "Output file for non interactive displays"},
		{Name: "gdirectory", Type: "string", Help: "Output directory"},
	}

	patternAssoc = []AssocDef{
		{Name: "pformat", Type: "string", Help: "File format"},
		{Name: "pmismatch", Type: "integer", Default: "0", Help: "Pattern mismatch"},
		{Name: "pname", Type: "string", Help: "Pattern base name"},
	}

	regexpAssoc = []AssocDef{
		{Name: "pformat", Type: "string", Help: "File format"},
		{Name: "pname", Type: "string", Help: "Pattern base name"},
	}
)

//nolint:gochecknoglobals
var (
	seqCalc = Schema{
		{Name: "begin", Kind: AttrInt, Default: "0", Help: "Start of the sequence"},
		{Name: "end", Kind: AttrInt, Default: "0", Help: "End of the sequence"},
		{Name: "length", Kind: AttrInt, Default: "0", Help: "Total length of the sequence"},
		{Name: "protein", Kind: AttrBool, Default: "N", Help: "Protein sequence"},
		{Name: "nucleic", Kind: AttrBool, Default: "N", Help: "Nucleic sequence"},
		{Name: "name", Kind: AttrString, Help: "The name of the sequence"},
		{Name: "usa", Kind: AttrString, Help: "Query used to read the sequence"},
	}

	seqSetCalc = concat(seqCalc, Schema{
		{Name: "count", Kind: AttrInt, Default: "0", Help: "Number of sequences"},
		{Name: "totweight", Kind: AttrFloat, Default: "0.0", Help: "Total sequence weight"},
	})

	dataCalc = Schema{
		{Name: "name", Kind: AttrString, Help: "Name discovered while reading"},
		{Name: "count", Kind: AttrInt, Default: "0", Help: "Number of entries"},
		{Name: "usa", Kind: AttrString, Help: "Query used to read the data"},
	}

	matrixCalc = Schema{
		{Name: "name", Kind: AttrString, Help: "Name of the matrix"},
		{Name: "size", Kind: AttrInt, Default: "0", Help: "Number of rows"},
	}

	listCalc = Schema{
		{Name: "count", Kind: AttrInt, Default: "0", Help: "Number of values"},
	}

	fileCalc = Schema{
		{Name: "name", Kind: AttrString, Help: "Base name of the file"},
		{Name: "exists", Kind: AttrBool, Default: "N", Help: "File exists"},
		{Name: "dir", Kind: AttrBool, Default: "N", Help: "Name is a directory"},
		{Name: "extension", Kind: AttrString, Help: "File name extension"},
	}
)
