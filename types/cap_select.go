package types

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ardnew/acd/pkg"
)

// Choice is one entry of a list or selection menu.
type Choice struct {
	Code string
	Desc string
}

// Lister is implemented by capabilities that choose from a menu, so
// prompters can display it.
type Lister interface {
	Choices(ctx SetContext) ([]Choice, error)
}

type listCap struct{}

func (listCap) Choices(ctx SetContext) ([]Choice, error) {
	values, err := ctx.Attr("values")
	if err != nil {
		return nil, err
	}

	delim, err := ctx.Attr("delimiter")
	if err != nil {
		return nil, err
	}

	codeDelim, err := ctx.Attr("codedelimiter")
	if err != nil {
		return nil, err
	}

	if delim == "" {
		delim = ";"
	}

	if codeDelim == "" {
		codeDelim = ":"
	}

	var choices []Choice

	for _, item := range strings.Split(values, delim) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		code, desc, ok := strings.Cut(item, codeDelim)
		if !ok {
			desc = code
		}

		choices = append(choices, Choice{
			Code: strings.TrimSpace(code),
			Desc: strings.TrimSpace(desc),
		})
	}

	return choices, nil
}

func (c listCap) Set(ctx SetContext, input string) (Value, error) {
	choices, err := c.Choices(ctx)
	if err != nil {
		return Value{}, err
	}

	codes, err := choose(ctx, choices, input, func(string) (int, bool) {
		return -1, false
	})
	if err != nil {
		return Value{}, err
	}

	return Value{Native: codes, Text: strings.Join(codes, ",")}, nil
}

func (listCap) Prompt(ctx SetContext) string {
	if h, _ := ctx.Attr("header"); h != "" {
		return h
	}

	return "Select from list"
}

func (c listCap) Describe(ctx SetContext) string {
	choices, _ := c.Choices(ctx)

	codes := make([]string, len(choices))
	for i, ch := range choices {
		codes[i] = ch.Code
	}

	return "Choose from: " + strings.Join(codes, ", ")
}

type selectionCap struct{}

func (selectionCap) Choices(ctx SetContext) ([]Choice, error) {
	values, err := ctx.Attr("values")
	if err != nil {
		return nil, err
	}

	delim, err := ctx.Attr("delimiter")
	if err != nil {
		return nil, err
	}

	if delim == "" {
		delim = ";"
	}

	var choices []Choice

	for _, item := range strings.Split(values, delim) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		choices = append(choices, Choice{Code: strconv.Itoa(len(choices) + 1), Desc: item})
	}

	return choices, nil
}

func (c selectionCap) Set(ctx SetContext, input string) (Value, error) {
	choices, err := c.Choices(ctx)
	if err != nil {
		return Value{}, err
	}

	codes, err := choose(ctx, choices, input, func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(choices) {
			return -1, false
		}

		return n - 1, true
	})
	if err != nil {
		return Value{}, err
	}

	descs := make([]string, len(codes))

	for i, code := range codes {
		n, _ := strconv.Atoi(code)
		descs[i] = choices[n-1].Desc
	}

	return Value{Native: descs, Text: strings.Join(descs, ",")}, nil
}

func (selectionCap) Prompt(ctx SetContext) string {
	if h, _ := ctx.Attr("header"); h != "" {
		return h
	}

	return "Select from list"
}

func (c selectionCap) Describe(ctx SetContext) string {
	choices, _ := c.Choices(ctx)

	descs := make([]string, len(choices))
	for i, ch := range choices {
		descs[i] = ch.Desc
	}

	return "Choose from: " + strings.Join(descs, ", ")
}

// choose matches each field of input against the menu: an exact code, then
// an index accepted by byIndex, then an unambiguous prefix of a code, then an
// unambiguous prefix of a description. The number of selections must lie
// within the minimum and maximum attributes.
func choose(
	ctx SetContext,
	choices []Choice,
	input string,
	byIndex func(string) (int, bool),
) ([]string, error) {
	caseSensitive, err := ctx.Bool("casesensitive", false)
	if err != nil {
		return nil, err
	}

	lo, err := ctx.Int("minimum", 1)
	if err != nil {
		return nil, err
	}

	hi, err := ctx.Int("maximum", 1)
	if err != nil {
		return nil, err
	}

	fields := []string{strings.TrimSpace(input)}
	if hi > 1 {
		fields = splitFields(input)
	} else if fields[0] == "" {
		fields = nil
	}

	fold := func(s string) string {
		if caseSensitive {
			return s
		}

		return strings.ToLower(s)
	}

	var codes []string

	for _, f := range fields {
		i, err := pick(choices, fold(f), fold, byIndex)
		if err != nil {
			return nil, err.With(slog.String("name", ctx.Name()), slog.String("value", f))
		}

		codes = append(codes, choices[i].Code)
	}

	if len(codes) < lo || len(codes) > hi {
		return nil, ErrSelection.With(
			slog.String("name", ctx.Name()),
			slog.String("value", input),
			slog.Int("minimum", lo),
			slog.Int("maximum", hi),
		)
	}

	ctx.SetCalc("count", strconv.Itoa(len(codes)))

	return codes, nil
}

func pick(
	choices []Choice,
	f string,
	fold func(string) string,
	byIndex func(string) (int, bool),
) (int, *pkg.Error) {
	for i, c := range choices {
		if fold(c.Code) == f {
			return i, nil
		}
	}

	if i, ok := byIndex(f); ok {
		return i, nil
	}

	for _, key := range []func(Choice) string{
		func(c Choice) string { return c.Code },
		func(c Choice) string { return c.Desc },
	} {
		var (
			match []int
			names []string
		)

		for i, c := range choices {
			if strings.HasPrefix(fold(key(c)), f) {
				match = append(match, i)
				names = append(names, key(c))
			}
		}

		switch len(match) {
		case 0:
			continue
		case 1:
			return match[0], nil
		default:
			return -1, ErrSelection.With(slog.Any("candidates", names))
		}
	}

	return -1, ErrSelection
}

type regexpCap struct{}

func applyCase(ctx SetContext, s string) (string, error) {
	upper, err := ctx.Bool("upper", false)
	if err != nil {
		return "", err
	}

	lower, err := ctx.Bool("lower", false)
	if err != nil {
		return "", err
	}

	switch {
	case upper:
		return strings.ToUpper(s), nil
	case lower:
		return strings.ToLower(s), nil
	default:
		return s, nil
	}
}

func (regexpCap) Set(ctx SetContext, input string) (Value, error) {
	s, err := applyCase(ctx, strings.TrimSpace(input))
	if err != nil {
		return Value{}, err
	}

	if s == "" {
		return Value{}, ErrNull.With(slog.String("name", ctx.Name()))
	}

	if err := checkLength(ctx, s); err != nil {
		return Value{}, err
	}

	expr := s

	if t, _ := ctx.Attr("type"); t == "protein" || t == "nucleotide" {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Value{}, ErrPattern.With(slog.String("name", ctx.Name()), slog.String("value", s)).Wrap(err)
	}

	name, _ := ctx.Assoc("pname")

	return Value{Native: &Regexp{Regexp: re, Name: name}, Text: s}, nil
}

func (regexpCap) Prompt(SetContext) string { return "Regular expression pattern" }

func (regexpCap) Describe(SetContext) string { return "Regular expression pattern" }

type patternCap struct{}

//nolint:gochecknoglobals
var patternSyntax = regexp.MustCompile(`^[A-Za-z0-9\-\[\]{}()<>,.*?x]+$`)

func (patternCap) Set(ctx SetContext, input string) (Value, error) {
	s, err := applyCase(ctx, strings.TrimSpace(input))
	if err != nil {
		return Value{}, err
	}

	if s == "" {
		return Value{}, ErrNull.With(slog.String("name", ctx.Name()))
	}

	if err := checkLength(ctx, s); err != nil {
		return Value{}, err
	}

	if t, _ := ctx.Attr("type"); t == "protein" || t == "nucleotide" {
		if !patternSyntax.MatchString(s) {
			return Value{}, ErrPattern.With(slog.String("name", ctx.Name()), slog.String("value", s))
		}
	}

	p := Pattern{Text: s}
	p.Name, _ = ctx.Assoc("pname")

	if m, ok := ctx.Assoc("pmismatch"); ok {
		n, err := parseInt(m)
		if err != nil || n < 0 {
			return Value{}, badValue(ctx, m, err).With(slog.String("qualifier", "pmismatch"))
		}

		p.Mismatch = n
	}

	return Value{Native: p, Text: s}, nil
}

func (patternCap) Prompt(SetContext) string { return "Pattern" }

func (patternCap) Describe(SetContext) string { return "Property value pattern" }
