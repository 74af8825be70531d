package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// equivalent compares two graphs declaration by declaration.
func equivalent(t *testing.T, a, b *Graph) {
	t.Helper()

	if a.Len() != b.Len() {
		t.Fatalf("length %d != %d", a.Len(), b.Len())
	}

	for i, da := range a.All() {
		db := b.Decl(i)

		if da.Name != db.Name || da.Token != db.Token || da.Level != db.Level ||
			da.Type != db.Type || da.Param != db.Param || da.Master != db.Master ||
			da.Section != db.Section {
			t.Errorf("decl %d: %+v != %+v", i, da, db)

			continue
		}

		if len(da.Attrs) != len(db.Attrs) {
			t.Errorf("decl %s attrs %v != %v", da.Name, da.Attrs, db.Attrs)

			continue
		}

		for j := range da.Attrs {
			if da.Attrs[j] != db.Attrs[j] {
				t.Errorf("decl %s attr %d: %+v != %+v", da.Name, j, da.Attrs[j], db.Attrs[j])
			}
		}
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	inputs := map[string]string{
		"water": waterACD,
		"multiline": `application: ml [ documentation: "first\
  second" ]
string: s [ default: 'say "hi"' ]
string: both [ default: "it's \"quoted\"" ]
relation: r
`,
		"backslash": `application: bs
string: dir [ default: "C:\tmp\\" ]
string: pat [ pattern: "^\d+\\$" ]
string: mixed [ default: 'a \\' ]
`,
	}

	for name, src := range inputs {
		for _, indent := range []int{0, 2, 4} {
			t.Run(name, func(t *testing.T) {
				orig := mustParse(t, src)

				var buf bytes.Buffer
				if err := orig.Format(context.Background(), &buf, indent); err != nil {
					t.Fatalf("format error: %v", err)
				}

				again := mustParse(t, buf.String())
				equivalent(t, orig, again)

				var buf2 bytes.Buffer
				if err := again.Format(context.Background(), &buf2, indent); err != nil {
					t.Fatalf("format error: %v", err)
				}

				if buf.String() != buf2.String() {
					t.Errorf("format not stable:\n%s\n---\n%s", buf.String(), buf2.String())
				}
			})
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `'say "hi"'`},
		{`it's "x"`, `"it's \"x\""`},
		{`C:\tmp\`, `"C:\tmp\\"`},
		{`\d+`, `"\d+"`},
		{`a\"b'`, `"a\\\"b'"`},
	}

	for _, tt := range tests {
		got := quote(tt.in, "")
		if got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}

		g := mustParse(t, "application: q\nstring: s [ default: "+got+" ]\n")
		if v, _ := g.Find("s").Attr("default"); v != tt.in {
			t.Errorf("reparsed %s = %q, want %q", got, v, tt.in)
		}
	}
}

func TestFormat_Layout(t *testing.T) {
	g := mustParse(t, "application: a\nsection: input\ninteger: n [ default: 3 ]\nendsection: input\n")

	var buf bytes.Buffer
	if err := g.Format(context.Background(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	want := `application: a

section: input

  integer: n [
    default: "3"
  ]
endsection: input
`

	if buf.String() != want {
		t.Errorf("format mismatch:\nwant: %q\ngot:  %q", want, buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	g := mustParse(t, waterACD)

	var buf bytes.Buffer
	if err := g.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	var view struct {
		Application  string `json:"application"`
		Declarations []struct {
			Name  string   `json:"name"`
			Level string   `json:"level"`
			Param int      `json:"param"`
			Assoc []string `json:"assoc"`
		} `json:"declarations"`
	}

	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if view.Application != "water" {
		t.Errorf("application = %q", view.Application)
	}

	found := false

	for _, d := range view.Declarations {
		if d.Name == "asequence" {
			found = true

			if d.Level != "parameter" || d.Param != 1 || len(d.Assoc) == 0 {
				t.Errorf("asequence = %+v", d)
			}
		}
	}

	if !found {
		t.Error("asequence missing from JSON")
	}
}

func TestFormatYAML(t *testing.T) {
	g := mustParse(t, waterACD)

	var buf bytes.Buffer
	if err := g.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"application: water", "name: asequence", "level: parameter"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("YAML missing %q:\n%s", want, buf.String())
		}
	}
}
