package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/acd/cmdline"
	"github.com/ardnew/acd/pkg"
	"github.com/ardnew/acd/types"
)

func newRun(t *testing.T, args ...string) (*Run, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	return &Run{
		Format:    formatText,
		Plain:     true,
		NoHistory: true,
		Decl:      writeDecl(t, winACD),
		Args:      args,
		config:    []string{filepath.Join(t.TempDir(), "config.yaml")},
		out:       &out,
		prompt:    &bytes.Buffer{},
	}, &out
}

func TestRun_Text(t *testing.T) {
	r, out := newRun(t, "-auto")
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output:\n%s", out.String())
	}

	for i, want := range [][]string{{"window", "10"}, {"brief", "N"}} {
		if got := strings.Fields(lines[i]); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestRun_JSON(t *testing.T) {
	r, out := newRun(t, "-auto", "-win=5", "-brief")
	r.Format = formatJSON

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	var got []value
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}

	want := []value{{Name: "window", Value: "5"}, {Name: "brief", Value: "Y"}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("values = %+v, want %+v", got, want)
	}
}

func TestRun_Help(t *testing.T) {
	r, out := newRun(t, "-help")
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	for _, s := range []string{
		"Window test program",
		"Required qualifiers:", "-window", "[10]",
		"Additional qualifiers:", "-brief",
	} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("help missing %q:\n%s", s, out.String())
		}
	}
}

func TestRun_Version(t *testing.T) {
	r, out := newRun(t, "-version")
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if want := "win " + pkg.Version(); strings.TrimSpace(out.String()) != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad value", []string{"-auto", "-window", "abc"}, types.ErrBadValue},
		{"unknown qualifier", []string{"-auto", "-nonesuch"}, cmdline.ErrUnknown},
		{"too many parameters", []string{"-auto", "extra"}, cmdline.ErrTooManyParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRun(t, tt.args...)

			if err := r.Run(context.Background()); !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRun_Prompts(t *testing.T) {
	in, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { in.Close() })

	if _, err := w.WriteString("7\n"); err != nil {
		t.Fatal(err)
	}

	w.Close()

	r, out := newRun(t)
	r.in = in

	var prompts bytes.Buffer
	r.prompt = &prompts

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(prompts.String(), "Integer value") {
		t.Errorf("prompt = %q", prompts.String())
	}

	if !strings.Contains(out.String(), "7") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRun_DeclarationNotFound(t *testing.T) {
	r, _ := newRun(t)
	r.Decl = "no-such-program"

	if err := r.Run(context.Background()); err == nil {
		t.Error("Run() with missing declaration succeeded")
	}
}
