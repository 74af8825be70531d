package eval

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/acd/config"
)

var errDivideByZero = errors.New("division by zero")

// form is one kind of expression. eval reports whether text has the form.
type form struct {
	name string
	eval func(r *Resolver, text string) (string, bool, error)
}

//nolint:gochecknoglobals
var forms = []form{
	{"arithmetic", evalArithmetic},
	{"comparison", evalComparison},
	{"boolean", evalBoolean},
	{"conditional", evalConditional},
	{"membership", evalMembership},
	{"case", evalCase},
	{"filename", evalFilename},
	{"exists", evalExists},
	{"value", evalValue},
}

const number = `[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`

//nolint:gochecknoglobals
var (
	reArithmetic  = regexp.MustCompile(`^(` + number + `)\s*([-+*/])\s*(` + number + `)$`)
	reInteger     = regexp.MustCompile(`^[+-]?\d+$`)
	reComparison  = regexp.MustCompile(`^(\S+)\s*(==|!=|<|>)\s*(\S+)$`)
	reNot         = regexp.MustCompile(`^!\s*(\S+)$`)
	reLogic       = regexp.MustCompile(`^(\S+)\s*([&|])\s*(\S+)$`)
	reConditional = regexp.MustCompile(`^(\S+)\s*\?\s*(.*?)\s*:\s*(.*?)$`)
	reMembership  = regexp.MustCompile(`^(\S+)\s*=\s*\{(.*)\}$`)
	reCase        = regexp.MustCompile(`^(\S+)\s*=\s*(.+)$`)
	reFilename    = regexp.MustCompile(`^filename:\s*(.*)$`)
	reExists      = regexp.MustCompile(`^exists:\s*(.*)$`)
	reValue       = regexp.MustCompile(`^value:\s*(.*)$`)
	reListSep     = regexp.MustCompile(`[,\s]+`)
)

// programs caches compiled expr-lang programs by source and operand types.
//
//nolint:gochecknoglobals
var programs sync.Map

// run compiles source against the operand types in env, caching the
// program, and runs it.
func run(source string, env map[string]any) (any, error) {
	key := source
	for _, name := range []string{"a", "b", "c", "x", "y", "l"} {
		if v, ok := env[name]; ok {
			key += fmt.Sprintf("|%s:%T", name, v)
		}
	}

	if p, ok := programs.Load(key); ok {
		return vm.Run(p.(*vm.Program), env)
	}

	p, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, err
	}

	programs.Store(key, p)

	return vm.Run(p, env)
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}

	return "N"
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// integers parses both operands as ints when both are integral and the
// result of op fits in an int.
func integers(a, b, op string) (x, y int, ok bool) {
	if !reInteger.MatchString(a) || !reInteger.MatchString(b) {
		return 0, 0, false
	}

	x, errA := strconv.Atoi(strings.TrimPrefix(a, "+"))
	y, errB := strconv.Atoi(strings.TrimPrefix(b, "+"))

	if errA != nil || errB != nil {
		return 0, 0, false
	}

	switch op {
	case "+":
		ok = (y <= 0 || x <= math.MaxInt-y) && (y >= 0 || x >= math.MinInt-y)
	case "-":
		ok = (y >= 0 || x <= math.MaxInt+y) && (y <= 0 || x >= math.MinInt+y)
	case "*":
		ok = x == 0 || y == 0 ||
			(x != -1 || y != math.MinInt) && (y != -1 || x != math.MinInt) && x*y/x == y
	case "/":
		ok = x != math.MinInt || y != -1
	}

	return x, y, ok
}

func evalArithmetic(_ *Resolver, text string) (string, bool, error) {
	m := reArithmetic.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}

	a, op, b := m[1], m[2], m[3]
	src := "a " + op + " b"

	if x, y, ok := integers(a, b, op); ok {
		if op == "/" {
			if y == 0 {
				return "", true, errDivideByZero
			}

			src = "int(a / b)"
		}

		v, err := run(src, map[string]any{"a": x, "b": y})
		if err != nil {
			return "", true, err
		}

		return formatNumber(v), true, nil
	}

	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)

	if err := errors.Join(errA, errB); err != nil {
		return "", true, err
	}

	if op == "/" && y == 0 {
		return "", true, errDivideByZero
	}

	v, err := run(src, map[string]any{"a": x, "b": y})
	if err != nil {
		return "", true, err
	}

	return formatNumber(v), true, nil
}

func evalComparison(_ *Resolver, text string) (string, bool, error) {
	m := reComparison.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}

	src := "a " + m[2] + " b"

	var env map[string]any

	x, errA := strconv.ParseFloat(m[1], 64)
	y, errB := strconv.ParseFloat(m[3], 64)

	if errA == nil && errB == nil {
		env = map[string]any{"a": x, "b": y}
	} else {
		env = map[string]any{"a": m[1], "b": m[3]}
	}

	v, err := run(src, env)
	if err != nil {
		return "", true, err
	}

	b, _ := v.(bool)

	return yesNo(b), true, nil
}

func evalBoolean(_ *Resolver, text string) (string, bool, error) {
	if m := reNot.FindStringSubmatch(text); m != nil {
		a, err := config.ParseBool(m[1])
		if err != nil {
			return "", false, nil
		}

		v, err := run("!a", map[string]any{"a": a})
		if err != nil {
			return "", true, err
		}

		return yesNo(v.(bool)), true, nil
	}

	m := reLogic.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}

	a, errA := config.ParseBool(m[1])
	b, errB := config.ParseBool(m[3])

	if errA != nil || errB != nil {
		return "", false, nil
	}

	src := "a && b"
	if m[2] == "|" {
		src = "a || b"
	}

	v, err := run(src, map[string]any{"a": a, "b": b})
	if err != nil {
		return "", true, err
	}

	return yesNo(v.(bool)), true, nil
}

func evalConditional(_ *Resolver, text string) (string, bool, error) {
	m := reConditional.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}

	c, err := config.ParseBool(m[1])
	if err != nil {
		return "", false, nil
	}

	v, err := run("c ? x : y", map[string]any{"c": c, "x": unquote(m[2]), "y": unquote(m[3])})
	if err != nil {
		return "", true, err
	}

	return fmt.Sprint(v), true, nil
}

// unquote strips one pair of matching quotes surrounding s.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}

func evalMembership(_ *Resolver, text string) (string, bool, error) {
	m := reMembership.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}

	var items []string

	for _, s := range reListSep.Split(strings.TrimSpace(m[2]), -1) {
		if s != "" {
			items = append(items, strings.ToLower(s))
		}
	}

	v, err := run("a in l", map[string]any{"a": strings.ToLower(m[1]), "l": items})
	if err != nil {
		return "", true, err
	}

	return yesNo(v.(bool)), true, nil
}

// evalCase selects the value following the label matching the subject, or
// the value labelled "else".
func evalCase(_ *Resolver, text string) (string, bool, error) {
	m := reCase.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}

	type branch struct {
		label string
		value []string
	}

	var branches []branch

	// A label is a word followed by a colon, with or without space between.
	// The word is the last value of the branch before it.
	var words []string

	for _, f := range strings.Fields(m[2]) {
		if f == ":" || (strings.HasPrefix(f, ":") && len(words) > 0) {
			if len(words) == 0 {
				return "", false, nil
			}

			words[len(words)-1] += ":"
			f = f[1:]

			if f == "" {
				continue
			}
		}

		words = append(words, f)
	}

	for _, f := range words {
		if label, ok := strings.CutSuffix(f, ":"); ok && label != "" {
			branches = append(branches, branch{label: label})

			continue
		}

		if len(branches) == 0 {
			return "", false, nil
		}

		b := &branches[len(branches)-1]
		b.value = append(b.value, f)
	}

	if len(branches) == 0 {
		return "", false, nil
	}

	fallback := -1

	for i, b := range branches {
		if strings.EqualFold(b.label, m[1]) {
			return strings.Join(b.value, " "), true, nil
		}

		if strings.EqualFold(b.label, "else") {
			fallback = i
		}
	}

	if fallback < 0 {
		return "", false, nil
	}

	return strings.Join(branches[fallback].value, " "), true, nil
}

// evalFilename reduces a file name or database query to a lower-case base
// name without directory, database prefix, or extension.
func evalFilename(_ *Resolver, text string) (string, bool, error) {
	m := reFilename.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}

	name := strings.TrimSpace(m[1])
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}

	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	if name == "." || name == string(filepath.Separator) {
		name = ""
	}

	return strings.ToLower(name), true, nil
}

func evalExists(_ *Resolver, text string) (string, bool, error) {
	m := reExists.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}

	return yesNo(strings.TrimSpace(m[1]) != ""), true, nil
}

func evalValue(r *Resolver, text string) (string, bool, error) {
	m := reValue.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}

	if r.values != nil {
		if v, ok := r.values(strings.TrimSpace(m[1])); ok {
			return v, true, nil
		}
	}

	return "", true, nil
}
