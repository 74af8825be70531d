package engine

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/log"
	"github.com/ardnew/acd/types"
)

// countingPrompter answers with the given replies in order and records the
// requests it was asked.
type countingPrompter struct {
	replies []string
	asked   []Request
}

func (p *countingPrompter) Prompt(_ context.Context, req Request) (string, error) {
	p.asked = append(p.asked, req)

	if len(p.replies) == 0 {
		return "", nil
	}

	r := p.replies[0]
	p.replies = p.replies[1:]

	return r, nil
}

func testConfig() config.Config {
	return config.Default().WithLookup(func(string) (string, bool) { return "", false })
}

func run(t *testing.T, src string, args []string, opts ...Option) (*Result, error) {
	t.Helper()

	g, err := lang.ParseString(context.Background(), src, lang.WithFile("t.acd"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	opts = append([]Option{WithConfig(testConfig())}, opts...)

	res, err := New(g, opts...).Run(context.Background(), args)
	if err == nil {
		t.Cleanup(func() { _ = res.Close() })
	}

	return res, err
}

const windowACD = `
application: win [
  documentation: "One standard integer"
]

integer: window [
  standard: "Y"
  default: "10"
]
`

func TestRun_AutoDefault(t *testing.T) {
	p := &countingPrompter{}

	res, err := run(t, windowACD, []string{"-auto"}, WithPrompter(p))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if n, err := res.Int("window"); err != nil || n != 10 {
		t.Errorf("window = %d, %v, want 10", n, err)
	}

	if len(p.asked) != 0 {
		t.Errorf("prompted %d times under -auto", len(p.asked))
	}
}

func TestRun_PromptDefault(t *testing.T) {
	p := &countingPrompter{}

	res, err := run(t, windowACD, nil, WithPrompter(p))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if n, _ := res.Int("window"); n != 10 {
		t.Errorf("window = %d, want 10", n)
	}

	if len(p.asked) != 1 {
		t.Fatalf("prompted %d times, want 1", len(p.asked))
	}

	req := p.asked[0]
	if req.Default != "10" || req.Text != "Integer value" || req.Attempt != 1 {
		t.Errorf("request = %+v", req)
	}
}

func TestRun_ClampWithWarning(t *testing.T) {
	const src = `
application: clamp [
  documentation: "Bounded integer"
]

integer: count [
  minimum: "1"
  maximum: "5"
  warnrange: "Y"
  default: "3"
]
`

	var buf bytes.Buffer

	res, err := run(t, src, []string{"-count", "9"},
		WithLogger(log.Make(&buf, log.WithPretty(false))))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if n, _ := res.Int("count"); n != 5 {
		t.Errorf("count = %d, want 5", n)
	}

	if !strings.Contains(buf.String(), "out of range") {
		t.Errorf("expected a range warning, got %q", buf.String())
	}
}

func TestRun_NoWarningControl(t *testing.T) {
	const src = `
application: clamp [
  documentation: "Bounded integer"
]

integer: count [
  maximum: "5"
]
`

	var buf bytes.Buffer

	if _, err := run(t, src, []string{"-count", "9", "-nowarning"},
		WithLogger(log.Make(&buf, log.WithPretty(false)))); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("-nowarning still logged %q", buf.String())
	}
}

func TestRun_NegatedNullableFile(t *testing.T) {
	const src = `
application: nul [
  documentation: "Optional input file"
]

infile: extra [
  standard: "Y"
  nullok: "Y"
]
`

	for _, args := range [][]string{{"-auto", "-noextra"}, {"-noextra"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			p := &countingPrompter{}

			res, err := run(t, src, args, WithPrompter(p))
			if err != nil {
				t.Fatalf("Run: %v", err)
			}

			v, err := res.Value("extra")
			if err != nil || !v.Null || v.Text != "" {
				t.Errorf("extra = %+v, %v, want null", v, err)
			}

			if len(p.asked) != 0 {
				t.Errorf("prompted %d times", len(p.asked))
			}
		})
	}
}

func TestRun_Retries(t *testing.T) {
	p := &countingPrompter{replies: []string{"abc", "x", "7"}}

	res, err := run(t, windowACD, nil, WithPrompter(p))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if n, _ := res.Int("window"); n != 7 {
		t.Errorf("window = %d, want 7", n)
	}

	if len(p.asked) != 3 {
		t.Fatalf("prompted %d times, want 3", len(p.asked))
	}

	if req := p.asked[1]; req.Rejected != "abc" || !errors.Is(req.Err, types.ErrBadValue) {
		t.Errorf("second request = %+v", req)
	}
}

func TestRun_RetriesExhausted(t *testing.T) {
	p := &countingPrompter{replies: []string{"a", "b", "c", "d"}}

	_, err := run(t, windowACD, nil, WithPrompter(p))
	if !errors.Is(err, types.ErrBadValue) {
		t.Fatalf("error = %v, want %v", err, types.ErrBadValue)
	}

	if len(p.asked) != config.DefaultRetries+1 {
		t.Errorf("prompted %d times, want %d", len(p.asked), config.DefaultRetries+1)
	}
}

func TestRun_BadValueNonInteractive(t *testing.T) {
	p := &countingPrompter{}

	_, err := run(t, windowACD, []string{"-auto", "-window", "abc"}, WithPrompter(p))
	if !errors.Is(err, types.ErrBadValue) {
		t.Fatalf("error = %v, want %v", err, types.ErrBadValue)
	}

	if !strings.HasPrefix(err.Error(), "t.acd 6:") {
		t.Errorf("error %q lacks the declaration position", err)
	}

	if len(p.asked) != 0 {
		t.Errorf("prompted %d times under -auto", len(p.asked))
	}
}

func TestRun_BadCommandLineValueReprompts(t *testing.T) {
	p := &countingPrompter{replies: []string{"4"}}

	res, err := run(t, windowACD, []string{"-window", "abc"}, WithPrompter(p))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if n, _ := res.Int("window"); n != 4 {
		t.Errorf("window = %d, want 4", n)
	}

	if len(p.asked) != 1 || p.asked[0].Rejected != "abc" {
		t.Errorf("requests = %+v", p.asked)
	}
}

const calcACD = `
application: calc [
  documentation: "Derived defaults"
]

integer: width [
  default: "60"
]

variable: doubled "@($(width) * 2)"

integer: margin [
  default: "$(doubled)"
  information: "Margin for $(acdprogram)"
]

boolean: wide [
  default: "@($(width) > 50)"
]
`

func TestRun_Variables(t *testing.T) {
	tests := []struct {
		args   []string
		margin int
		wide   bool
	}{
		{nil, 120, true},
		{[]string{"-width", "10"}, 20, false},
		{[]string{"-width", "10", "-margin", "3"}, 3, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			res, err := run(t, calcACD, tt.args)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}

			if n, _ := res.Int("margin"); n != tt.margin {
				t.Errorf("margin = %d, want %d", n, tt.margin)
			}

			if b, _ := res.Bool("wide"); b != tt.wide {
				t.Errorf("wide = %v, want %v", b, tt.wide)
			}
		})
	}
}

func TestEngine_Attr(t *testing.T) {
	g, err := lang.ParseString(context.Background(), calcACD)
	if err != nil {
		t.Fatal(err)
	}

	e := New(g, WithConfig(testConfig()))
	if _, err := e.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	margin := g.Find("margin")

	if s, err := e.Attr(ctx, margin, "information"); err != nil || s != "Margin for calc" {
		t.Errorf("information = %q, %v", s, err)
	}

	if s, err := e.Attr(ctx, margin, "needed"); err != nil || s != "Y" {
		t.Errorf("schema default of needed = %q, %v", s, err)
	}

	if n, err := e.Int(ctx, margin, "maximum", 99); err != nil || n != 99 {
		t.Errorf("unset maximum = %d, %v, want the explicit default", n, err)
	}

	if _, err := e.Attr(ctx, margin, "frobnicate"); err == nil {
		t.Error("unknown attribute must fail")
	}

	if _, err := e.Bool(ctx, margin, "default", false); !errors.Is(err, ErrConversion) {
		t.Errorf("Bool(default) error = %v, want %v", err, ErrConversion)
	}

	if c, err := e.Char(ctx, margin, "information", 'x'); !errors.Is(err, ErrConversion) {
		t.Errorf("Char(information) = %q, %v, want %v", c, err, ErrConversion)
	}
}

func TestRun_ForwardReference(t *testing.T) {
	const src = `
application: fwd [
  documentation: "Forward reference"
]

integer: a [
  default: "$(b)"
]

integer: b [
  default: "1"
]
`

	_, err := run(t, src, nil)
	if !errors.Is(err, ErrNotSet) {
		t.Errorf("error = %v, want %v", err, ErrNotSet)
	}
}

func TestResult_Fetch(t *testing.T) {
	res, err := run(t, calcACD, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := res.Int("nosuch"); !errors.Is(err, ErrUndeclared) {
		t.Errorf("undeclared error = %v", err)
	}

	if _, err := res.Bool("width"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("mismatch error = %v", err)
	}

	if s, err := res.Text("doubled"); err != nil || s != "120" {
		t.Errorf("doubled = %q, %v", s, err)
	}

	n, err := Get[int](res, "width")
	if err != nil || n != 60 {
		t.Errorf("Get[int](width) = %d, %v", n, err)
	}

	var names []string
	for name := range res.Values() {
		names = append(names, name)
	}

	if strings.Join(names, ",") != "width,doubled,margin,wide" {
		t.Errorf("Values() names = %v", names)
	}
}

func TestRun_HelpSkipsSetting(t *testing.T) {
	res, err := run(t, windowACD, []string{"-help"})
	if err != nil {
		t.Fatal(err)
	}

	if !res.Controls().Help {
		t.Error("help control not recorded")
	}

	if _, err := res.Value("window"); !errors.Is(err, ErrNotSet) {
		t.Errorf("window after -help: %v", err)
	}
}

func TestRun_SequenceAndOutput(t *testing.T) {
	dir := t.TempDir()

	in := filepath.Join(dir, "in.fa")
	if err := os.WriteFile(in, []byte(">HBA_HUMAN test\nACGTACGTAC\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	const src = `
application: copyseq [
  documentation: "Copy a sequence"
]

section: input [
  information: "Input section"
  type: "page"
]
  sequence: seq [
    parameter: "Y"
  ]
endsection: input

variable: seqlength "$(seq.length)"

section: output [
  information: "Output section"
  type: "page"
]
  seqout: outseq [
    parameter: "Y"
  ]
endsection: output
`

	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0o700); err != nil {
		t.Fatal(err)
	}

	res, err := run(t, src, []string{in, "-osdirectory", out, "-auto", "-sbegin", "3"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := res.Data("seq")
	if err != nil || data == nil {
		t.Fatalf("seq = %v, %v", data, err)
	}

	if s, _ := res.Text("seqlength"); s != "10" {
		t.Errorf("seqlength = %q, want 10", s)
	}

	if s, _ := res.Text("sbegin_seq"); s != "3" {
		t.Errorf("sbegin_seq = %q, want 3", s)
	}

	o, err := res.Output("outseq")
	if err != nil {
		t.Fatalf("outseq: %v", err)
	}

	if want := filepath.Join(out, "hba_human.fasta"); o.Path != want {
		t.Errorf("output path = %q, want %q", o.Path, want)
	}

	if _, err := o.Write([]byte(">x\nA\n")); err != nil {
		t.Fatal(err)
	}

	if err := res.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := res.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	if b, err := os.ReadFile(o.Path); err != nil || string(b) != ">x\nA\n" {
		t.Errorf("output file = %q, %v", b, err)
	}
}

func TestRun_LoaderCount(t *testing.T) {
	const src = `
application: seqcount [
  documentation: "Sequence count limits"
]

seqset: seqs [
  parameter: "Y"
  maxseqs: "2"
]
`

	tests := []struct {
		name    string
		loaded  types.Loaded
		wantErr error
	}{
		{"name only", types.Loaded{Name: "x"}, nil},
		{"within limits", types.Loaded{Name: "x", Calc: map[string]string{"count": "2"}}, nil},
		{"too few", types.Loaded{Name: "x", Calc: map[string]string{"count": "0"}}, types.ErrBadValue},
		{"too many", types.Loaded{Name: "x", Calc: map[string]string{"count": "3"}}, types.ErrBadValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := types.LoaderFunc(func(context.Context, string, string) (types.Loaded, error) {
				return tt.loaded, nil
			})

			res, err := run(t, src, []string{"db:x", "-auto"}, WithLoader(loader))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run: %v", err)
			}

			if s, _ := res.Text("seqs"); s != "db:x" {
				t.Errorf("seqs = %q, want db:x", s)
			}
		})
	}
}
