package lang

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/acd/types"
)

const waterACD = `
# Smith-Waterman
application: water [
  documentation: "Smith-Waterman local alignment"
  groups: "Alignment:Local"
]

section: input [
  information: "Input section"
  type: "page"
]
  sequence: asequence [
    parameter: "Y"
    type: "any"
  ]

  seqall: bsequence [
    parameter: "Y"
    type: "@($(acdprotein) ? stopprotein : nucleotide)"
    sbegin: 5
  ]
endsection: input

section: additional [
  information: "Additional section"
  type: "page"
]
  float: gapopen [
    additional: "Y"
    information: "Gap opening penalty"
    min: 0.0
    max: 100.0
    default: "10.0"
  ]

  boolean: brief b [
    def: Y
    info: 'Brief "identity" output'
  ]
endsection: additional

variable: label "gap
   penalty"   "default"
`

func mustParse(t *testing.T, src string, opts ...Option) *Graph {
	t.Helper()

	g, err := ParseString(context.Background(), src, opts...)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if err := g.Process(context.Background()); err != nil {
		t.Fatalf("process error: %v", err)
	}

	return g
}

func TestParse_Water(t *testing.T) {
	g := mustParse(t, waterACD, WithProgram("water"))

	app := g.Application()
	if app == nil || app.Name != "water" {
		t.Fatalf("Application() = %v", app)
	}

	if doc, _ := app.Attr("documentation"); doc != "Smith-Waterman local alignment" {
		t.Errorf("documentation = %q", doc)
	}

	asq := g.Find("asequence")
	bsq := g.Find("bsequence")

	if asq == nil || bsq == nil {
		t.Fatal("sequences not found")
	}

	if asq.Param != 1 || bsq.Param != 2 || asq.Level != types.LevelParameter {
		t.Errorf("params = %d, %d (level %v)", asq.Param, bsq.Param, asq.Level)
	}

	assoc := g.Assoc(bsq)
	if len(assoc) == 0 || assoc[len(assoc)-1].Index+1 != bsq.Index {
		t.Fatalf("associated qualifiers must immediately precede their master")
	}

	for _, a := range assoc {
		if g.Master(a) != bsq {
			t.Errorf("%s master = %v", a.Name, g.Master(a))
		}
	}

	if v, _ := g.AssocNamed(bsq, "sbegin").Attr(types.AttrDefault); v != "5" {
		t.Errorf("bsequence sbegin default = %q, want 5", v)
	}

	if v, _ := g.AssocNamed(asq, "sbegin").Attr(types.AttrDefault); v != "0" {
		t.Errorf("asequence sbegin default = %q, want 0", v)
	}

	gap := g.Find("gapopen")
	if v, _ := gap.Attr("minimum"); v != "0.0" {
		t.Errorf("min alias: minimum = %q", v)
	}

	if gap.Section != "additional" {
		t.Errorf("gapopen section = %q", gap.Section)
	}

	brief := g.Find("b")
	if brief == nil || brief.Name != "brief" {
		t.Fatalf("Find by token = %v", brief)
	}

	if v, _ := brief.Attr(types.AttrInformation); v != `Brief "identity" output` {
		t.Errorf("information = %q", v)
	}

	if v, _ := brief.Attr(types.AttrDefault); v != "Y" {
		t.Errorf("def alias: default = %q", v)
	}

	label := g.Find("label")
	if v, _ := label.Attr(types.AttrDefault); v != "gap penalty default" {
		t.Errorf("variable = %q", v)
	}
}

func TestParse_FileOrder(t *testing.T) {
	g := mustParse(t, waterACD)

	var names []string

	for _, d := range g.All() {
		if !d.IsAssoc() {
			names = append(names, d.Name)
		}
	}

	want := []string{
		"water", "input", "asequence", "bsequence", "input",
		"additional", "gapopen", "brief", "additional", "label",
	}

	if strings.Join(names, " ") != strings.Join(want, " ") {
		t.Errorf("order = %v\nwant    %v", names, want)
	}

	for i, d := range g.All() {
		if d.Index != i {
			t.Errorf("decl %s index %d at position %d", d.Name, d.Index, i)
		}
	}
}

func TestParse_KeywordPrefix(t *testing.T) {
	g := mustParse(t, `
appl: test
int: window [ default: 3 ]
bool: flag [ ]
`)

	if d := g.Find("window"); d == nil || d.Type != "integer" {
		t.Errorf("window = %+v", d)
	}

	if d := g.Find("flag"); d == nil || d.Type != "boolean" {
		t.Errorf("flag = %+v", d)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    error
		line    int
		message string
	}{
		{
			name:  "application not first",
			input: "integer: x [ ]",
			want:  ErrSyntax,
			line:  1,
		},
		{
			name:    "unknown keyword",
			input:   "application: a\nintger: x [ ]",
			want:    ErrKeyword,
			line:    2,
			message: "integer",
		},
		{
			name:    "ambiguous keyword",
			input:   "application: a\nse: x [ ]",
			want:    ErrKeyword,
			line:    2,
			message: "ambiguous",
		},
		{
			name:    "duplicate name",
			input:   "application: a\ninteger: x [ ]\nfloat: X [ ]",
			want:    ErrDuplicate,
			line:    3,
			message: "previous=2",
		},
		{
			name:  "duplicate alias",
			input: "application: a\ninteger: x [ ]\nfloat: y x [ ]",
			want:  ErrDuplicate,
			line:  3,
		},
		{
			name:  "name clashes with associated qualifier",
			input: "application: a\nsequence: s [ ]\ninteger: sbegin [ ]",
			want:  ErrDuplicate,
			line:  3,
		},
		{
			name:  "unterminated quote",
			input: "application: a\nstring: s [\n default: \"abc\n]",
			want:  ErrSyntax,
			line:  3,
		},
		{
			name:  "unmatched bracket",
			input: "application: a\nstring: s [\n default: abc\n",
			want:  ErrSyntax,
			line:  2,
		},
		{
			name:  "endsection mismatch",
			input: "application: a\nsection: input\nendsection: output",
			want:  ErrSection,
			line:  3,
		},
		{
			name:  "unclosed section",
			input: "application: a\nsection: input\ninteger: x [ ]",
			want:  ErrSection,
			line:  2,
		},
		{
			name:    "unknown attribute",
			input:   "application: a\ninteger: x [ maxmum: 3 ]",
			want:    ErrAttribute,
			line:    2,
			message: "maximum",
		},
		{
			name:  "repeated attribute",
			input: "application: a\ninteger: x [ default: 3 default: 4 ]",
			want:  ErrAttribute,
			line:  2,
		},
		{
			name:  "missing value",
			input: "application: a\ninteger: x [ default: ]",
			want:  ErrAttribute,
			line:  2,
		},
		{
			name:    "missing bracket",
			input:   "application: a\ninteger: x default: 3",
			want:    ErrSyntax,
			line:    2,
			message: "missing attribute list",
		},
		{
			name:    "next entry read as alias",
			input:   "application: a\ninteger: x\ninteger: y [ ]",
			want:    ErrSyntax,
			line:    3,
			message: "missing attribute list",
		},
		{
			name:  "alias equals name",
			input: "application: a\ninteger: foo foo [ ]",
			want:  ErrDuplicate,
			line:  2,
		},
		{
			name:    "underscore in name",
			input:   "application: a\ninteger: my_count [ ]",
			want:    ErrSyntax,
			line:    2,
			message: "not allowed",
		},
		{
			name:  "underscore in alias",
			input: "application: a\ninteger: count my_count [ ]",
			want:  ErrSyntax,
			line:  2,
		},
		{
			name:  "underscore in variable",
			input: "application: a\nvariable: my_var \"1\"",
			want:  ErrSyntax,
			line:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(context.Background(), tt.input, WithFile("t.acd"))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			prefix := "t.acd " + string(rune('0'+tt.line)) + ":"
			if !strings.HasPrefix(err.Error(), prefix) {
				t.Errorf("error %q should start with %q", err, prefix)
			}

			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q should mention %q", err, tt.message)
			}
		})
	}
}

func TestParse_ApplicationName(t *testing.T) {
	_, err := ParseString(context.Background(), "application: water", WithProgram("needle"))
	if !errors.Is(err, ErrDefinition) {
		t.Errorf("error = %v, want ErrDefinition", err)
	}
}

func TestProcess_ParameterMustBeLiteral(t *testing.T) {
	g, err := ParseString(context.Background(),
		"application: a\ninteger: x [ parameter: \"$(y)\" ]")
	if err != nil {
		t.Fatal(err)
	}

	if err := g.Process(context.Background()); !errors.Is(err, ErrAttribute) {
		t.Errorf("Process error = %v, want ErrAttribute", err)
	}
}

func TestProcess_Idempotent(t *testing.T) {
	g := mustParse(t, waterACD)

	if err := g.Process(context.Background()); err != nil {
		t.Fatal(err)
	}

	if g.ParamCount() != 2 || len(g.Params()) != 2 {
		t.Errorf("ParamCount = %d, Params = %d", g.ParamCount(), len(g.Params()))
	}
}

func TestTokenize(t *testing.T) {
	toks, err := tokenize("", "a:b [ c: 'x y' ]# note\nd:\"q\" e\\]")
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, tk := range toks {
		got = append(got, tk.kind.String()+"="+tk.text)
	}

	want := []string{
		"word=a:b", "'['=[", "word=c:", "quoted string=x y", "']'=]",
		"word=d:", "quoted string=q", "word=e]", "end of file=",
	}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("tokens:\n got %v\nwant %v", got, want)
	}
}

func TestTokenize_LineBreaks(t *testing.T) {
	toks, err := tokenize("", "\"one\\\n    two\n    three\"")
	if err != nil {
		t.Fatal(err)
	}

	if toks[0].text != "one\ntwo three" {
		t.Errorf("text = %q", toks[0].text)
	}
}

func TestSuggest(t *testing.T) {
	got := Suggest("intger", []string{"integer", "string", "float"}, 2)
	if len(got) == 0 || got[0] != "integer" {
		t.Errorf("Suggest = %v", got)
	}
}
