package types

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/pkg"
)

// Defaulter is implemented by capabilities that derive a default value when
// the declaration gives none, such as generated output file names.
type Defaulter interface {
	Default(ctx SetContext) (string, error)
}

// outOfRange reports a value outside [minimum, maximum]. Unless failrange
// is set the value is clamped, with a warning when warnrange is set.
func outOfRange(ctx SetContext, value, limit string) error {
	fail, err := ctx.Bool("failrange", false)
	if err != nil {
		return err
	}

	if fail {
		return ErrRange.With(
			slog.String("name", ctx.Name()),
			slog.String("value", value),
			slog.String("limit", limit),
		)
	}

	warn, err := ctx.Bool("warnrange", true)
	if err != nil {
		return err
	}

	if warn {
		ctx.Warn("value out of range, limit applied",
			slog.String("name", ctx.Name()),
			slog.String("value", value),
			slog.String("limit", limit),
		)
	}

	return nil
}

func badValue(ctx SetContext, input string, err error) *pkg.Error {
	e := ErrBadValue.With(slog.String("name", ctx.Name()), slog.String("value", input))
	if err != nil {
		return e.Wrap(err)
	}

	return e
}

// YesNo renders a boolean the way declaration files spell it.
func YesNo(b bool) string {
	if b {
		return "Y"
	}

	return "N"
}

type boolCap struct{ toggle bool }

func (c boolCap) Set(ctx SetContext, input string) (Value, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Value{Native: false, Text: "N"}, nil
	}

	b, err := config.ParseBool(s)
	if err != nil {
		return Value{}, badValue(ctx, input, err)
	}

	return Value{Native: b, Text: YesNo(b)}, nil
}

func (c boolCap) Prompt(SetContext) string {
	if c.toggle {
		return "Toggle value"
	}

	return "Boolean value"
}

func (c boolCap) Describe(SetContext) string {
	if c.toggle {
		return "Toggle value Yes/No"
	}

	return "Boolean value Yes/No"
}

type intCap struct{}

func parseInt(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")

	n, err := strconv.Atoi(s)
	if err == nil {
		return n, nil
	}

	// Accept integral floating-point spellings such as "1e3" or "5.0".
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, err
	}

	return int(f), nil
}

func (intCap) Set(ctx SetContext, input string) (Value, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		s = "0"
	}

	n, err := parseInt(s)
	if err != nil {
		return Value{}, badValue(ctx, input, err)
	}

	lo, err := ctx.Int("minimum", math.MinInt)
	if err != nil {
		return Value{}, err
	}

	hi, err := ctx.Int("maximum", math.MaxInt)
	if err != nil {
		return Value{}, err
	}

	trueMin, err := ctx.Bool("trueminimum", false)
	if err != nil {
		return Value{}, err
	}

	if trueMin && lo == math.MinInt {
		lo = 1
	}

	switch {
	case n < lo:
		if err := outOfRange(ctx, s, strconv.Itoa(lo)); err != nil {
			return Value{}, err
		}

		n = lo
	case n > hi:
		if err := outOfRange(ctx, s, strconv.Itoa(hi)); err != nil {
			return Value{}, err
		}

		n = hi
	}

	return Value{Native: n, Text: strconv.Itoa(n)}, nil
}

func (intCap) Prompt(SetContext) string { return "Integer value" }

func (intCap) Describe(ctx SetContext) string {
	return describeBounds(ctx, "Integer", "Any integer value")
}

func describeBounds(ctx SetContext, noun, fallback string) string {
	lo, _ := ctx.Attr("minimum")
	hi, _ := ctx.Attr("maximum")

	switch {
	case lo != "" && hi != "":
		return noun + " from " + lo + " to " + hi
	case lo != "":
		return noun + " " + lo + " or more"
	case hi != "":
		return noun + " up to " + hi
	default:
		return fallback
	}
}

type floatCap struct{}

func (floatCap) Set(ctx SetContext, input string) (Value, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		s = "0"
	}

	f, err := strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
	if err != nil || math.IsNaN(f) {
		return Value{}, badValue(ctx, input, err)
	}

	prec, err := ctx.Int("precision", 3)
	if err != nil {
		return Value{}, err
	}

	lo, err := ctx.Float("minimum", math.Inf(-1))
	if err != nil {
		return Value{}, err
	}

	hi, err := ctx.Float("maximum", math.Inf(1))
	if err != nil {
		return Value{}, err
	}

	switch {
	case f < lo:
		if err := outOfRange(ctx, s, formatFloat(lo, prec)); err != nil {
			return Value{}, err
		}

		f = lo
	case f > hi:
		if err := outOfRange(ctx, s, formatFloat(hi, prec)); err != nil {
			return Value{}, err
		}

		f = hi
	}

	return Value{Native: f, Text: formatFloat(f, prec)}, nil
}

func formatFloat(f float64, prec int) string {
	if prec < 0 {
		prec = -1
	}

	return strconv.FormatFloat(f, 'f', prec, 64)
}

func (floatCap) Prompt(SetContext) string { return "Number" }

func (floatCap) Describe(ctx SetContext) string {
	return describeBounds(ctx, "Floating point number", "Any numeric value")
}

type stringCap struct{}

func (stringCap) Set(ctx SetContext, input string) (Value, error) {
	s := input

	upper, err := ctx.Bool("upper", false)
	if err != nil {
		return Value{}, err
	}

	lower, err := ctx.Bool("lower", false)
	if err != nil {
		return Value{}, err
	}

	switch {
	case upper:
		s = strings.ToUpper(s)
	case lower:
		s = strings.ToLower(s)
	}

	if err := checkLength(ctx, s); err != nil {
		return Value{}, err
	}

	word, err := ctx.Bool("word", false)
	if err != nil {
		return Value{}, err
	}

	if word && strings.ContainsAny(s, " \t\n") {
		return Value{}, badValue(ctx, input, nil).With(slog.String("reason", "whitespace not allowed"))
	}

	pattern, err := ctx.Attr("pattern")
	if err != nil {
		return Value{}, err
	}

	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Value{}, ErrPattern.With(slog.String("pattern", pattern)).Wrap(err)
		}

		if !re.MatchString(s) {
			return Value{}, badValue(ctx, input, nil).With(slog.String("pattern", pattern))
		}
	}

	return Value{Native: s, Text: s}, nil
}

func checkLength(ctx SetContext, s string) error {
	lo, err := ctx.Int("minlength", 0)
	if err != nil {
		return err
	}

	hi, err := ctx.Int("maxlength", math.MaxInt)
	if err != nil {
		return err
	}

	n := len([]rune(s))

	switch {
	case n == 0 && lo > 0:
		return ErrNull.With(slog.String("name", ctx.Name()))
	case n < lo:
		return ErrBadValue.With(
			slog.String("name", ctx.Name()),
			slog.String("value", s),
			slog.Int("minlength", lo),
		)
	case n > hi:
		return ErrBadValue.With(
			slog.String("name", ctx.Name()),
			slog.String("value", s),
			slog.Int("maxlength", hi),
		)
	}

	return nil
}

func (stringCap) Prompt(SetContext) string { return "String value" }

func (stringCap) Describe(ctx SetContext) string {
	lo, _ := ctx.Int("minlength", 0)
	hi, _ := ctx.Int("maxlength", 0)

	switch {
	case lo > 0 && hi > 0:
		return "A string from " + strconv.Itoa(lo) + " to " + strconv.Itoa(hi) + " characters"
	case lo > 0:
		return "A string of at least " + strconv.Itoa(lo) + " characters"
	case hi > 0:
		return "A string of up to " + strconv.Itoa(hi) + " characters"
	default:
		return "Any string"
	}
}

//nolint:gochecknoglobals
var listSplit = regexp.MustCompile(`[\s,;]+`)

func splitFields(s string) []string {
	var out []string

	for _, f := range listSplit.Split(strings.TrimSpace(s), -1) {
		if f != "" {
			out = append(out, f)
		}
	}

	return out
}

type arrayCap struct{}

func (arrayCap) Set(ctx SetContext, input string) (Value, error) {
	fields := splitFields(input)
	if len(fields) == 0 {
		nullok, err := ctx.Bool("nullok", false)
		if err != nil {
			return Value{}, err
		}

		if nullok {
			return NullValue(), nil
		}

		return Value{}, ErrNull.With(slog.String("name", ctx.Name()))
	}

	prec, err := ctx.Int("precision", 3)
	if err != nil {
		return Value{}, err
	}

	lo, err := ctx.Float("minimum", math.Inf(-1))
	if err != nil {
		return Value{}, err
	}

	hi, err := ctx.Float("maximum", math.Inf(1))
	if err != nil {
		return Value{}, err
	}

	size, err := ctx.Int("size", 0)
	if err != nil {
		return Value{}, err
	}

	if size > 0 && len(fields) != size {
		return Value{}, badValue(ctx, input, nil).With(
			slog.Int("size", size), slog.Int("count", len(fields)))
	}

	vals := make([]float64, len(fields))
	text := make([]string, len(fields))

	var sum float64

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Value{}, badValue(ctx, input, err)
		}

		switch {
		case v < lo:
			if err := outOfRange(ctx, f, formatFloat(lo, prec)); err != nil {
				return Value{}, err
			}

			v = lo
		case v > hi:
			if err := outOfRange(ctx, f, formatFloat(hi, prec)); err != nil {
				return Value{}, err
			}

			v = hi
		}

		vals[i], text[i] = v, formatFloat(v, prec)
		sum += v
	}

	if target, err := ctx.Attr("sum"); err != nil {
		return Value{}, err
	} else if target != "" {
		want, err := ctx.Float("sum", 0)
		if err != nil {
			return Value{}, err
		}

		tol, err := ctx.Float("tolerance", 0.01)
		if err != nil {
			return Value{}, err
		}

		if math.Abs(sum-want) > tol {
			return Value{}, badValue(ctx, input, nil).With(
				slog.Float64("sum", sum), slog.Float64("expected", want))
		}
	}

	return Value{Native: vals, Text: strings.Join(text, ",")}, nil
}

func (arrayCap) Prompt(SetContext) string { return "List of numbers" }

func (arrayCap) Describe(ctx SetContext) string {
	return describeBounds(ctx, "List of floating point numbers", "List of floating point numbers")
}

type rangeCap struct{}

//nolint:gochecknoglobals
var rangeNumber = regexp.MustCompile(`\d+`)

func (rangeCap) Set(ctx SetContext, input string) (Value, error) {
	s := strings.TrimSpace(input)

	nums := rangeNumber.FindAllString(s, -1)
	if len(nums) == 0 {
		nullok, err := ctx.Bool("nullok", false)
		if err != nil {
			return Value{}, err
		}

		if nullok {
			return NullValue(), nil
		}

		return Value{Native: Range{}, Text: ""}, nil
	}

	if len(nums)%2 != 0 {
		return Value{}, badValue(ctx, input, nil).With(slog.String("reason", "unpaired position"))
	}

	lo, err := ctx.Int("minimum", 1)
	if err != nil {
		return Value{}, err
	}

	hi, err := ctx.Int("maximum", math.MaxInt)
	if err != nil {
		return Value{}, err
	}

	r := make(Range, 0, len(nums)/2)

	for i := 0; i < len(nums); i += 2 {
		start, _ := strconv.Atoi(nums[i])
		end, _ := strconv.Atoi(nums[i+1])

		if start > end {
			return Value{}, badValue(ctx, input, nil).With(slog.String("reason", "start after end"))
		}

		if start < lo || end > hi {
			return Value{}, ErrRange.With(
				slog.String("name", ctx.Name()),
				slog.String("value", nums[i]+"-"+nums[i+1]),
			)
		}

		r = append(r, RangePair{Start: start, End: end})
	}

	size, err := ctx.Int("size", 0)
	if err != nil {
		return Value{}, err
	}

	minSize, err := ctx.Int("minsize", 0)
	if err != nil {
		return Value{}, err
	}

	if (size > 0 && len(r) != size) || len(r) < minSize {
		return Value{}, badValue(ctx, input, nil).With(slog.Int("count", len(r)))
	}

	return Value{Native: r, Text: r.String()}, nil
}

func (rangeCap) Prompt(SetContext) string { return "Range(s)" }

func (rangeCap) Describe(SetContext) string { return "Sequence range" }
