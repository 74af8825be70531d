package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/acd/lang"
)

func TestFmt_Native(t *testing.T) {
	var out bytes.Buffer

	n := &Native{fmtSource{Indent: 2, Source: writeDecl(t, winACD), out: &out}}
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("Native.Run() error = %v", err)
	}

	// The formatted output parses to the same declarations.
	g, err := lang.ParseString(context.Background(), out.String())
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, out.String())
	}

	if g.Program != "win" || g.Find("window") == nil || g.Find("brief") == nil {
		t.Errorf("reformatted graph lost declarations:\n%s", out.String())
	}
}

func TestFmt_JSON(t *testing.T) {
	var out bytes.Buffer

	j := &JSON{fmtSource{Indent: 2, Source: writeDecl(t, winACD), out: &out}}
	if err := j.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	var v struct {
		Application  string `json:"application"`
		Declarations []struct {
			Name string `json:"name"`
		} `json:"declarations"`
	}

	if err := json.Unmarshal(out.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}

	if v.Application != "win" || len(v.Declarations) != 3 {
		t.Errorf("JSON = %+v", v)
	}
}

func TestFmt_YAML(t *testing.T) {
	var out bytes.Buffer

	y := &YAML{fmtSource{Indent: 2, Source: writeDecl(t, winACD), out: &out}}
	if err := y.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "application: win") {
		t.Errorf("YAML output:\n%s", out.String())
	}
}

func TestFmt_SyntaxError(t *testing.T) {
	n := &Native{fmtSource{Indent: 2, Source: writeDecl(t, "application: a\nstring: s [\n default: \"abc\n]"), out: &bytes.Buffer{}}}

	err := n.Run(context.Background())
	if !errors.Is(err, lang.ErrSyntax) {
		t.Errorf("Native.Run() error = %v, want %v", err, lang.ErrSyntax)
	}
}

func TestFmt_MissingFile(t *testing.T) {
	n := &Native{fmtSource{Source: "/nonexistent/x.acd", out: &bytes.Buffer{}}}
	if err := n.Run(context.Background()); err == nil {
		t.Error("Native.Run() on missing file succeeded")
	}
}
