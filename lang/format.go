package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/acd/types"
)

// Format writes the graph in declaration file syntax. Parsing the output
// yields an equivalent graph.
func (g *Graph) Format(_ context.Context, w io.Writer, indent int) error {
	depth := 0

	for i, d := range g.decls {
		if d.IsAssoc() {
			continue
		}

		if d.Level == types.LevelEndSection {
			depth = max(0, depth-1)
		}

		if i > 0 && (d.Level != types.LevelEndSection || indent == 0) {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		pad := strings.Repeat(" ", depth*indent)

		if err := formatDecl(w, d, pad, indent); err != nil {
			return err
		}

		if d.Level == types.LevelSection {
			depth++
		}
	}

	return nil
}

func formatDecl(w io.Writer, d *Decl, pad string, indent int) error {
	head := pad + d.Type + ": " + d.Name
	if d.Token != "" {
		head += " " + d.Token
	}

	switch d.Level {
	case types.LevelEndSection:
		_, err := fmt.Fprintln(w, head)

		return err

	case types.LevelVariable:
		v, _ := d.Attr(types.AttrDefault)
		_, err := fmt.Fprintln(w, head, quote(v, pad))

		return err
	}

	if len(d.Attrs) == 0 {
		if d.Level.IsQualifier() {
			head += " [ ]"
		}

		_, err := fmt.Fprintln(w, head)

		return err
	}

	if indent == 0 {
		parts := make([]string, len(d.Attrs))
		for i, a := range d.Attrs {
			parts[i] = a.Name + ": " + quote(a.Value, "")
		}

		_, err := fmt.Fprintf(w, "%s [ %s ]\n", head, strings.Join(parts, " "))

		return err
	}

	if _, err := fmt.Fprintln(w, head, "["); err != nil {
		return err
	}

	inner := pad + strings.Repeat(" ", indent)

	for _, a := range d.Attrs {
		if _, err := fmt.Fprintf(w, "%s%s: %s\n", inner, a.Name, quote(a.Value, inner)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, pad+"]")

	return err
}

// quote renders s as a quoted value. Double quotes are preferred; single
// quotes are used when s contains a double quote, and a backslash escapes
// the quote character when s contains both. A backslash the lexer would
// read as an escape is doubled. Line breaks become a trailing backslash
// followed by a continuation line at pad.
func quote(s, pad string) string {
	q := byte('"')
	if strings.Contains(s, `"`) && !strings.Contains(s, `'`) {
		q = '\''
	}

	var sb strings.Builder

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteByte(c)

			if i+1 == len(s) || strings.IndexByte("\\\r\n"+string(q), s[i+1]) >= 0 {
				sb.WriteByte(c)
			}
		case q:
			sb.WriteString(`\` + string(q))
		case '\n':
			sb.WriteString("\\\n" + pad + "  ")
		default:
			sb.WriteByte(c)
		}
	}

	return string(q) + sb.String() + string(q)
}

// declView is the data form of a declaration written by FormatJSON and
// FormatYAML.
type declView struct {
	Name    string      `json:"name"              yaml:"name"`
	Token   string      `json:"token,omitempty"   yaml:"token,omitempty"`
	Level   types.Level `json:"level"             yaml:"level"`
	Type    string      `json:"type"              yaml:"type"`
	Section string      `json:"section,omitempty" yaml:"section,omitempty"`
	Param   int         `json:"param,omitempty"   yaml:"param,omitempty"`
	Line    int         `json:"line"              yaml:"line"`
	Attrs   []Attr      `json:"attrs,omitempty"   yaml:"attrs,omitempty"`
	Assoc   []string    `json:"assoc,omitempty"   yaml:"assoc,omitempty"`
}

type graphView struct {
	Application string     `json:"application"    yaml:"application"`
	File        string     `json:"file,omitempty" yaml:"file,omitempty"`
	Decls       []declView `json:"declarations"   yaml:"declarations"`
}

func (g *Graph) view() graphView {
	v := graphView{Application: g.Program, File: g.File}

	for _, d := range g.decls {
		if d.IsAssoc() {
			continue
		}

		dv := declView{
			Name:    d.Name,
			Token:   d.Token,
			Level:   d.Level,
			Type:    d.Type,
			Section: d.Section,
			Param:   d.Param,
			Line:    d.Line,
			Attrs:   d.Attrs,
		}

		for _, a := range g.Assoc(d) {
			dv.Assoc = append(dv.Assoc, a.Name)
		}

		v.Decls = append(v.Decls, dv)
	}

	return v
}

// FormatJSON writes the graph as JSON.
func (g *Graph) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(g.view(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(g.view())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the graph as YAML.
func (g *Graph) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, g.view(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
