package lang

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/ardnew/acd/pkg"
	"github.com/ardnew/acd/types"
)

// ParseFile parses the declaration file at path.
func ParseFile(ctx context.Context, path string, opts ...Option) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrRead.With(slog.String("file", path)).Wrap(err)
	}
	defer f.Close()

	return ParseReader(ctx, f, append([]Option{WithFile(path)}, opts...)...)
}

// ParseReader parses declarations from an io.Reader.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses declarations from a string. The graph is returned
// unprocessed; see [Graph.Process].
func ParseString(ctx context.Context, s string, opts ...Option) (*Graph, error) {
	g := &Graph{}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	if g.registry == nil {
		g.registry = types.New()
	}

	toks, err := tokenize(g.File, s)
	if err != nil {
		return nil, err
	}

	p := &parser{g: g, toks: toks}

	if err := p.parseFile(ctx); err != nil {
		return nil, err
	}

	g.logger.TraceContext(ctx, "parse complete",
		slog.String("file", g.File),
		slog.Int("declarations", len(g.decls)))

	return g, nil
}

// stage is the kind of top-level entry being parsed.
type stage int

const (
	stageBad stage = iota
	stageQualifier
	stageApplication
	stageVariable
	stageRelation
	stageSection
	stageEndSection
)

//nolint:gochecknoglobals
var keywordStage = map[string]stage{
	"application": stageApplication,
	"variable":    stageVariable,
	"relation":    stageRelation,
	"section":     stageSection,
	"endsection":  stageEndSection,
}

// parser holds the parser state.
type parser struct {
	g        *Graph
	toks     []token
	pos      int
	sections []*Decl
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}

	return t
}

func (p *parser) at(line int) pkg.Position {
	return pkg.Position{File: p.g.File, Line: line}
}

// parseFile parses entries until end of input.
func (p *parser) parseFile(ctx context.Context) error {
	for {
		t := p.next()
		if t.kind == tokenEOF {
			break
		}

		if t.kind != tokenWord {
			return ErrSyntax.At(p.at(t.line)).With(
				slog.String("expected", "keyword"),
				slog.String("found", t.kind.String()),
			)
		}

		kw, rest, ok := splitLabel(t.text)
		if !ok {
			kw = t.text
			rest = p.colon()
		}

		if len(p.g.decls) == 0 && !strings.HasPrefix("application", strings.ToLower(kw)) {
			return ErrSyntax.At(p.at(t.line)).With(
				slog.String("reason", "application must be the first entry"),
				slog.String("found", kw),
			)
		}

		st, typ, err := p.stage(kw, t.line)
		if err != nil {
			return err
		}

		if len(p.g.decls) > 0 && st == stageApplication {
			return ErrSyntax.At(p.at(t.line)).With(slog.String("reason", "second application entry"))
		}

		name, err := p.name(rest, t.line)
		if err != nil {
			return err
		}

		p.g.logger.TraceContext(ctx, "entry",
			slog.String("keyword", typ),
			slog.String("name", name),
			slog.Int("line", t.line))

		switch st {
		case stageApplication:
			err = p.parseApplication(name, t.line)
		case stageQualifier:
			err = p.parseQualifier(typ, name, t.line)
		case stageVariable:
			err = p.parseVariable(name, t.line)
		case stageRelation:
			err = p.parseKeyword(types.LevelRelation, typ, name, t.line)
		case stageSection:
			err = p.parseSection(name, t.line)
		case stageEndSection:
			err = p.parseEndSection(name, t.line)
		}

		if err != nil {
			return err
		}
	}

	if len(p.g.decls) == 0 {
		return ErrSyntax.At(p.at(1)).With(slog.String("reason", "no application entry"))
	}

	if n := len(p.sections); n > 0 {
		open := p.sections[n-1]

		return ErrSection.At(p.at(open.Line)).With(
			slog.String("section", open.Name),
			slog.String("reason", "not closed"),
		)
	}

	return nil
}

// colon consumes a ':' written apart from the word before it, returning any
// text following the colon.
func (p *parser) colon() string {
	t := p.peek()
	if t.kind == tokenWord && strings.HasPrefix(t.text, ":") {
		p.next()

		return t.text[1:]
	}

	return ""
}

// stage selects the entry kind for keyword kw by exact or unambiguous
// prefix match. Type names join the vocabulary once the application entry
// has been read.
func (p *parser) stage(kw string, line int) (stage, string, error) {
	vocab := make([]string, 0, len(keywordStage)+p.g.registry.Len())
	for _, k := range p.g.registry.Keywords() {
		vocab = append(vocab, k.Name)
	}

	if len(p.g.decls) > 0 {
		vocab = append(vocab, p.g.registry.Names()...)
	}

	word := strings.ToLower(kw)

	pick := func(name string) (stage, string, error) {
		if st, ok := keywordStage[name]; ok {
			return st, name, nil
		}

		return stageQualifier, name, nil
	}

	if i := slices.Index(vocab, word); i >= 0 {
		return pick(vocab[i])
	}

	var match []string

	for _, v := range vocab {
		if strings.HasPrefix(v, word) {
			match = append(match, v)
		}
	}

	switch len(match) {
	case 1:
		return pick(match[0])
	case 0:
		return stageBad, "", ErrKeyword.At(p.at(line)).With(
			slog.String("keyword", kw),
			slog.Any("suggestions", Suggest(word, vocab, 3)),
		)
	default:
		return stageBad, "", ErrKeyword.At(p.at(line)).With(
			slog.String("keyword", kw),
			slog.String("reason", "ambiguous"),
			slog.Any("candidates", match),
		)
	}
}

// name reads the entry name, either the text after the keyword's colon or
// the next word.
func (p *parser) name(rest string, line int) (string, error) {
	if rest == "" {
		t := p.peek()
		if t.kind != tokenWord {
			return "", ErrSyntax.At(p.at(line)).With(
				slog.String("expected", "name"),
				slog.String("found", t.kind.String()),
			)
		}

		p.next()

		rest = t.text
	}

	if !isIdent(rest) {
		return "", ErrSyntax.At(p.at(line)).With(slog.String("reason", "invalid name"), slog.String("name", rest))
	}

	return strings.ToLower(rest), nil
}

// checkName rejects qualifier and variable names containing '_', which
// separates an associated qualifier from its master on the command line.
func (p *parser) checkName(name string, line int) error {
	if strings.Contains(name, "_") {
		return ErrSyntax.At(p.at(line)).With(
			slog.String("name", name),
			slog.String("reason", "'_' not allowed in names"),
		)
	}

	return nil
}

// checkDuplicate rejects a name already used by a qualifier, parameter,
// associated qualifier, or variable, ignoring case.
func (p *parser) checkDuplicate(name string, line int, topOnly bool) error {
	for _, d := range p.g.decls {
		if !d.Level.IsQualifier() && d.Level != types.LevelVariable {
			continue
		}

		if topOnly && d.IsAssoc() {
			continue
		}

		if d.Matches(name) {
			return ErrDuplicate.At(p.at(line)).With(
				slog.String("name", name),
				slog.Int("previous", d.Line),
			)
		}
	}

	return nil
}

func (p *parser) section() string {
	if n := len(p.sections); n > 0 {
		return p.sections[n-1].Name
	}

	return ""
}

func (p *parser) newDecl(level types.Level, typ, name string, line int) *Decl {
	return &Decl{
		Name:    name,
		Level:   level,
		Type:    typ,
		Kind:    types.KindNone,
		Section: p.section(),
		Line:    line,
		Master:  -1,
	}
}

func (p *parser) parseApplication(name string, line int) error {
	if p.g.Program != "" && !strings.EqualFold(p.g.Program, name) {
		return ErrDefinition.At(p.at(line)).With(
			slog.String("application", name),
			slog.String("program", p.g.Program),
			slog.String("reason", "application name does not match program"),
		)
	}

	if p.g.Program == "" {
		p.g.Program = name
	}

	d := p.g.add(p.newDecl(types.LevelApplication, "application", name, line))

	return p.optionalAttrs(d)
}

func (p *parser) parseKeyword(level types.Level, typ, name string, line int) error {
	d := p.g.add(p.newDecl(level, typ, name, line))

	return p.optionalAttrs(d)
}

func (p *parser) parseSection(name string, line int) error {
	d := p.g.add(p.newDecl(types.LevelSection, "section", name, line))
	p.sections = append(p.sections, d)

	return p.optionalAttrs(d)
}

func (p *parser) parseEndSection(name string, line int) error {
	n := len(p.sections)
	if n == 0 {
		return ErrSection.At(p.at(line)).With(
			slog.String("section", name),
			slog.String("reason", "no open section"),
		)
	}

	if top := p.sections[n-1]; top.Name != name {
		return ErrSection.At(p.at(line)).With(
			slog.String("section", name),
			slog.String("open", top.Name),
		)
	}

	p.sections = p.sections[:n-1]
	p.g.add(p.newDecl(types.LevelEndSection, "endsection", name, line))

	return nil
}

// parseVariable reads one or more adjacent quoted strings, joined with a
// space, with whitespace runs collapsed.
func (p *parser) parseVariable(name string, line int) error {
	if err := p.checkName(name, line); err != nil {
		return err
	}

	if err := p.checkDuplicate(name, line, false); err != nil {
		return err
	}

	var parts []string

	for {
		t := p.peek()
		if t.kind != tokenString && !(len(parts) == 0 && t.kind == tokenWord) {
			break
		}

		p.next()
		parts = append(parts, t.text)
	}

	if len(parts) == 0 {
		return ErrSyntax.At(p.at(line)).With(
			slog.String("variable", name),
			slog.String("expected", "quoted value"),
		)
	}

	d := p.g.add(p.newDecl(types.LevelVariable, "variable", name, line))
	d.Attrs = []Attr{{
		Name:  types.AttrDefault,
		Value: strings.Join(strings.Fields(strings.Join(parts, " ")), " "),
	}}

	return nil
}

// parseQualifier reads a typed declaration. The associated qualifiers of its
// kind are added immediately before it, so they exist by the time its
// attribute list refers to them.
func (p *parser) parseQualifier(typ, name string, line int) error {
	kind, _ := p.g.registry.Lookup(typ)
	desc := p.g.registry.Descriptor(kind)

	if err := p.checkName(name, line); err != nil {
		return err
	}

	if err := p.checkDuplicate(name, line, false); err != nil {
		return err
	}

	alias := ""

	if t := p.peek(); t.kind == tokenWord {
		if _, _, ok := splitLabel(t.text); ok {
			return ErrSyntax.At(p.at(t.line)).With(
				slog.String("name", name),
				slog.String("expected", "'['"),
				slog.String("found", t.text),
				slog.String("reason", "missing attribute list"),
			)
		}

		p.next()

		alias = strings.ToLower(t.text)
		if !isIdent(alias) {
			return ErrSyntax.At(p.at(t.line)).With(slog.String("reason", "invalid alias"), slog.String("alias", t.text))
		}

		if alias == name {
			return ErrDuplicate.At(p.at(t.line)).With(
				slog.String("name", name),
				slog.String("alias", alias),
			)
		}

		if err := p.checkName(alias, t.line); err != nil {
			return err
		}

		if err := p.checkDuplicate(alias, t.line, false); err != nil {
			return err
		}
	}

	if t := p.peek(); t.kind != tokenOpen {
		return ErrSyntax.At(p.at(t.line)).With(
			slog.String("name", name),
			slog.String("expected", "'['"),
			slog.String("found", t.kind.String()),
		)
	}

	first := len(p.g.decls)
	assocNames := make([]string, 0, len(desc.Assoc))

	for _, a := range desc.Assoc {
		if err := p.checkDuplicate(a.Name, line, true); err != nil {
			return err
		}

		ad := p.newDecl(types.LevelQualifier, a.Type, a.Name, line)
		ad.Kind, _ = p.g.registry.Lookup(a.Type)

		if a.Default != "" {
			ad.Attrs = append(ad.Attrs, Attr{Name: types.AttrDefault, Value: a.Default})
		}

		if a.Help != "" {
			ad.Attrs = append(ad.Attrs, Attr{Name: types.AttrInformation, Value: a.Help})
		}

		p.g.add(ad)
		assocNames = append(assocNames, a.Name)
	}

	d := p.newDecl(types.LevelQualifier, desc.Name, name, line)
	d.Kind = kind
	d.Token = alias
	d.AssocFirst = first
	d.AssocCount = len(desc.Assoc)

	p.g.add(d)

	for _, a := range p.g.Assoc(d) {
		a.Master = d.Index
	}

	return p.attrs(d, assocNames)
}

func (p *parser) optionalAttrs(d *Decl) error {
	if p.peek().kind != tokenOpen {
		return nil
	}

	return p.attrs(d, nil)
}

// attrs reads a bracketed attribute list into d.
func (p *parser) attrs(d *Decl, assocNames []string) error {
	open := p.next()
	if open.kind != tokenOpen {
		return ErrSyntax.At(p.at(open.line)).With(slog.String("expected", "'['"))
	}

	schema := p.g.Schema(d)

	for {
		t := p.next()

		switch t.kind {
		case tokenClose:
			return nil
		case tokenEOF:
			return ErrSyntax.At(p.at(open.line)).With(
				slog.String("name", d.Name),
				slog.String("reason", "unmatched '['"),
			)
		case tokenOpen, tokenString:
			return ErrSyntax.At(p.at(t.line)).With(
				slog.String("name", d.Name),
				slog.String("expected", "attribute name"),
				slog.String("found", t.kind.String()),
			)
		}

		name, rest, ok := splitLabel(t.text)
		if !ok {
			if !isIdent(t.text) || !strings.HasPrefix(p.peek().text, ":") || p.peek().kind != tokenWord {
				return ErrSyntax.At(p.at(t.line)).With(
					slog.String("name", d.Name),
					slog.String("expected", "attribute name:"),
					slog.String("found", t.text),
				)
			}

			name, rest = t.text, p.colon()
		}

		value := rest
		if value == "" {
			v := p.peek()
			if v.kind != tokenString && v.kind != tokenWord {
				return ErrAttribute.At(p.at(t.line)).With(
					slog.String("name", d.Name),
					slog.String("attribute", name),
					slog.String("reason", "missing value"),
				)
			}

			p.next()

			value = v.text
		}

		canon, isAssoc, err := resolveAttr(name, schema, assocNames)
		if err != nil {
			return pkg.WrapError(err).At(p.at(t.line)).With(slog.String("name", d.Name))
		}

		if isAssoc {
			p.g.AssocNamed(d, canon).SetAttr(types.AttrDefault, value)
			d.Attrs = append(d.Attrs, Attr{Name: canon, Value: value, Assoc: true})

			continue
		}

		def, _ := schema.Find(canon)

		if prev, exists := d.Attr(canon); exists {
			if !def.Multi {
				return ErrAttribute.At(p.at(t.line)).With(
					slog.String("name", d.Name),
					slog.String("attribute", canon),
					slog.String("reason", "given more than once"),
				)
			}

			d.SetAttr(canon, prev+" "+value)

			continue
		}

		d.Attrs = append(d.Attrs, Attr{Name: canon, Value: value})
	}
}
