package cmdline

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/log"
)

// maxSuggestions bounds the "did you mean" list of an unknown qualifier.
const maxSuggestions = 3

// held is an instance-numbered associated value waiting for its parameter.
type held struct {
	decl  *lang.Decl
	value string
	null  bool
}

// Matcher assigns command-line tokens to declarations. It carries the
// current master across tokens so associated qualifiers given without an
// instance number bind to the most recently matched master.
type Matcher struct {
	g        *lang.Graph
	logger   log.Logger
	controls Controls

	params  []*lang.Decl
	master  *lang.Decl
	pending map[int][]held
	line    []string
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger for match tracing.
func WithLogger(logger log.Logger) Option {
	return func(m *Matcher) {
		m.logger = logger
	}
}

// WithControls sets the controls in effect before any token is read.
func WithControls(c Controls) Option {
	return func(m *Matcher) {
		m.controls = c
	}
}

// New returns a Matcher for g.
func New(g *lang.Graph, opts ...Option) *Matcher {
	m := &Matcher{
		g:        g,
		controls: DefaultControls(),
		pending:  make(map[int][]held),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Controls returns the controls after matching.
func (m *Matcher) Controls() Controls { return m.controls }

// CommandLine returns the canonical form of the matched command line.
func (m *Matcher) CommandLine() string { return strings.Join(m.line, " ") }

// Match assigns args to the declarations of the graph, processing the graph
// first if needed. Matched declarations are flagged defined and
// user-defined with their raw input recorded.
func (m *Matcher) Match(ctx context.Context, args []string) error {
	if err := m.g.Process(ctx); err != nil {
		return err
	}

	m.params = m.g.Params()

	positional := false

	for i := 0; i < len(args); i++ {
		tok := args[i]

		if !positional && tok == "--" {
			positional = true

			continue
		}

		ref, ok := ParseQualRef(tok)
		if positional || !ok {
			if err := m.assignParam(ctx, tok); err != nil {
				return err
			}

			continue
		}

		var next *string
		if i+1 < len(args) {
			next = &args[i+1]
		}

		used, err := m.qualifier(ctx, ref, next)
		if err != nil {
			return err
		}

		if used {
			i++
		}
	}

	for _, d := range m.params {
		m.release(ctx, d.Param)
	}

	for k := range m.pending {
		m.release(ctx, k)
	}

	m.logger.DebugContext(ctx, "command line", slog.String("line", m.CommandLine()))

	return nil
}

// qualifier handles one qualifier token and reports whether the lookahead
// token was consumed as its value.
func (m *Matcher) qualifier(ctx context.Context, ref QualRef, next *string) (bool, error) {
	if used, ok, err := m.control(ref, next); ok {
		return used, err
	}

	d, ref, err := m.resolve(ref)
	if err != nil {
		return false, err
	}

	desc := m.g.Descriptor(d)

	var (
		value string
		null  bool
		used  bool
	)

	switch {
	case ref.Negated:
		if ref.HasValue {
			return false, ErrUnconsumed.With(
				slog.String("qualifier", ref.Raw),
				slog.String("value", ref.Value),
				slog.String("reason", "negated qualifier takes no value"),
			)
		}

		if desc.IsBool() {
			value = "N"
		} else {
			null = true
		}

	case desc.IsBool():
		value = "Y"

		switch {
		case ref.HasValue:
			value = ref.Value
		case next != nil && isBoolLiteral(*next):
			value, used = *next, true
		}

	case ref.HasValue:
		value = ref.Value

	case next != nil:
		value, used = *next, true

	default:
		missing, _ := d.Attr("missing")
		if ok, _ := config.ParseBool(missing); !ok && !desc.Nullable {
			return false, ErrMissingValue.With(
				slog.String("qualifier", ref.Raw),
				slog.String("name", d.Name),
			)
		}
	}

	if d.IsAssoc() && ref.Instance > 0 {
		master := m.g.Master(d)
		if master.Param == ref.Instance && !master.Has(lang.FlagDefined) {
			m.pending[ref.Instance] = append(m.pending[ref.Instance], held{decl: d, value: value, null: null})

			m.logger.TraceContext(ctx, "held for parameter",
				slog.String("name", d.Name),
				slog.Int("parameter", ref.Instance),
				slog.String("value", value))

			return used, nil
		}
	}

	m.assign(ctx, d, value, null)

	if d.AssocCount > 0 {
		m.master = d
	}

	if d.Param > 0 {
		m.release(ctx, d.Param)
	}

	return used, nil
}

// control sets a control from ref. ok is false when ref names no control.
func (m *Matcher) control(ref QualRef, next *string) (used, ok bool, err error) {
	if ref.Master != "" {
		return false, false, nil
	}

	name, on := ref.Full(), true

	if m.controls.field(name) == nil {
		base, negated := ref.Unnegated()
		if !negated || m.controls.field(base.Full()) == nil {
			return false, false, nil
		}

		name, on = base.Full(), false
	}

	switch {
	case ref.HasValue && !on:
		return false, true, ErrUnconsumed.With(
			slog.String("qualifier", ref.Raw),
			slog.String("value", ref.Value),
		)
	case ref.HasValue:
		v, perr := config.ParseBool(ref.Value)
		if perr != nil {
			return false, true, ErrUnconsumed.With(
				slog.String("qualifier", ref.Raw),
				slog.String("value", ref.Value),
			)
		}

		on = v
	case on && next != nil && isBoolLiteral(*next):
		on, _ = config.ParseBool(*next)
		used = true
	}

	m.controls.Set(name, on)

	return used, true, nil
}

// assignParam gives tok to the next parameter not yet defined.
func (m *Matcher) assignParam(ctx context.Context, tok string) error {
	for _, d := range m.params {
		if d.Has(lang.FlagDefined) {
			continue
		}

		m.assign(ctx, d, tok, false)

		if d.AssocCount > 0 {
			m.master = d
		}

		m.release(ctx, d.Param)

		return nil
	}

	return ErrTooManyParams.With(
		slog.String("value", tok),
		slog.Int("parameters", len(m.params)),
	)
}

// assign records a matched value on d.
func (m *Matcher) assign(ctx context.Context, d *lang.Decl, value string, null bool) {
	d.Input = value
	d.Mark(lang.FlagDefined | lang.FlagUser)

	if null {
		d.Input = ""
		d.Mark(lang.FlagNull)
	} else {
		d.Clear(lang.FlagNull)
	}

	m.line = append(m.line, m.canonical(d, value, null))

	m.logger.TraceContext(ctx, "matched",
		slog.String("name", d.Name),
		slog.String("value", value),
		slog.Bool("null", null))
}

// release applies the held values of parameter k whose associated
// qualifier is still unset.
func (m *Matcher) release(ctx context.Context, k int) {
	hs, ok := m.pending[k]
	if !ok {
		return
	}

	delete(m.pending, k)

	for _, h := range hs {
		if h.decl.Has(lang.FlagDefined) {
			continue
		}

		m.assign(ctx, h.decl, h.value, h.null)
	}
}

// canonical renders one matched declaration for command-line replay.
func (m *Matcher) canonical(d *lang.Decl, value string, null bool) string {
	name := d.Name
	if d.IsAssoc() {
		name += "_" + m.g.Master(d).Name
	}

	desc := m.g.Descriptor(d)

	switch {
	case null:
		return "-no" + name
	case desc != nil && desc.IsBool():
		if ok, err := config.ParseBool(value); err == nil && !ok {
			return "-no" + name
		}

		return "-" + name
	case value == "" || strings.ContainsAny(value, " \t\"'"):
		return "-" + name + " " + strconv.Quote(value)
	default:
		return "-" + name + " " + value
	}
}

// resolve finds the declaration ref names, trying the negated form first
// and then the ordinary one.
func (m *Matcher) resolve(ref QualRef) (*lang.Decl, QualRef, error) {
	if ref.Instance > 0 {
		if d := m.exact(ref.Full()); d != nil {
			ref.Name, ref.Instance = ref.Full(), 0

			return d, ref, nil
		}
	}

	var negErr error

	if base, ok := ref.Unnegated(); ok && m.exact(ref.Name) == nil {
		d, err := m.lookup(base)
		if d != nil {
			desc := m.g.Descriptor(d)
			if desc.IsBool() || desc.Nullable {
				return d, base, nil
			}
		}

		negErr = err
	}

	d, err := m.lookup(ref)
	if err != nil {
		return nil, ref, err
	}

	if d == nil && negErr != nil {
		return nil, ref, negErr
	}

	if d == nil {
		return nil, ref, ErrUnknown.With(
			slog.String("qualifier", ref.Raw),
			slog.Any("suggestions", lang.Suggest(ref.Name, m.names(), maxSuggestions)),
		)
	}

	return d, ref, nil
}

// lookup applies the fallback order: explicit master, instance number,
// current master, top-level declarations, then every master's associated
// qualifiers. It returns nil without error when nothing matches.
func (m *Matcher) lookup(ref QualRef) (*lang.Decl, error) {
	if ref.Master != "" {
		master, err := pick(ref.Master, m.g.Masters())
		if err != nil {
			return nil, err
		}

		if master == nil {
			return nil, ErrUnknown.With(
				slog.String("qualifier", ref.Raw),
				slog.String("master", ref.Master),
			)
		}

		if d, err := pick(ref.Name, m.g.Assoc(master)); d != nil || err != nil {
			return d, err
		}
	}

	if ref.Instance > len(m.params) {
		return nil, ErrUnknown.With(
			slog.String("qualifier", ref.Raw),
			slog.Int("instance", ref.Instance),
			slog.Int("parameters", len(m.params)),
		)
	}

	if ref.Instance > 0 {
		if d, err := pick(ref.Name, m.g.Assoc(m.params[ref.Instance-1])); d != nil || err != nil {
			return d, err
		}
	}

	if m.master != nil && ref.Master == "" {
		if d, err := pick(ref.Name, m.g.Assoc(m.master)); d != nil || err != nil {
			return d, err
		}
	}

	if d, err := pick(ref.Name, m.g.Qualifiers()); d != nil || err != nil {
		return d, err
	}

	var assoc []*lang.Decl
	for _, master := range m.g.Masters() {
		assoc = append(assoc, m.g.Assoc(master)...)
	}

	return pick(ref.Name, sameNameFirst(assoc))
}

// exact returns the qualifier or associated qualifier named name exactly.
func (m *Matcher) exact(name string) *lang.Decl {
	for _, d := range m.g.All() {
		if d.IsQualifier() && d.Matches(name) {
			return d
		}
	}

	return nil
}

// names returns every matchable name for suggestions.
func (m *Matcher) names() []string {
	var out []string

	for _, d := range m.g.All() {
		if !d.IsQualifier() {
			continue
		}

		out = append(out, d.Name)

		if d.Token != "" {
			out = append(out, d.Token)
		}
	}

	out = append(out, ControlNames()...)
	slices.Sort(out)

	return slices.Compact(out)
}

// pick resolves name among decls: an exact name or token wins, then a
// unique prefix. Several prefix matches are ambiguous.
func pick(name string, decls []*lang.Decl) (*lang.Decl, error) {
	var found []*lang.Decl

	for _, d := range decls {
		if d.Matches(name) {
			return d, nil
		}

		if hasPrefixFold(d.Name, name) || hasPrefixFold(d.Token, name) {
			found = append(found, d)
		}
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	}

	names := make([]string, len(found))
	for i, d := range found {
		names[i] = d.Name
	}

	return nil, ErrAmbiguous.With(
		slog.String("qualifier", name),
		slog.Any("candidates", names),
	)
}

// sameNameFirst keeps the first associated qualifier of each name, so a
// name shared by several masters binds to the earliest.
func sameNameFirst(decls []*lang.Decl) []*lang.Decl {
	seen := make(map[string]bool, len(decls))

	return slices.DeleteFunc(decls, func(d *lang.Decl) bool {
		key := strings.ToLower(d.Name)
		if seen[key] {
			return true
		}

		seen[key] = true

		return false
	})
}

func hasPrefixFold(s, prefix string) bool {
	return s != "" && len(prefix) <= len(s) && strings.EqualFold(s[:len(prefix)], prefix)
}
