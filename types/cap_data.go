package types

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

type dataCap struct{ kind string }

func (c dataCap) Set(ctx SetContext, input string) (Value, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return nullOrRequired(ctx)
	}

	loader := ctx.Loader()
	if loader == nil {
		return Value{}, ErrLoad.With(slog.String("name", ctx.Name()), slog.String("kind", c.kind))
	}

	loaded, err := loader.Load(ctx, c.kind, query)
	if err != nil {
		return Value{}, ErrLoad.With(
			slog.String("name", ctx.Name()),
			slog.String("query", query),
		).Wrap(err)
	}

	for k, v := range loaded.Calc {
		ctx.SetCalc(k, v)
	}

	if loaded.Name != "" {
		ctx.SetCalc("name", loaded.Name)
		ctx.SetSeed(loaded.Name)
	}

	if IsSequenceKind(c.kind) {
		if err := c.positions(ctx, loaded.Calc); err != nil {
			return Value{}, err
		}
	}

	data := &Data{Kind: c.kind, Query: query, Name: loaded.Name, Object: loaded.Object}

	return Value{Native: data, Text: query, Owned: true}, nil
}

// checkCount enforces minseqs and maxseqs when the loader reported how
// many sequences it read.
func (dataCap) checkCount(ctx SetContext, calc map[string]string) error {
	s, ok := calc["count"]
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}

	count, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return badValue(ctx, s, err).With(slog.String("calculated", "count"))
	}

	minSeqs, err := ctx.Int("minseqs", 1)
	if err != nil {
		return err
	}

	maxSeqs, err := ctx.Int("maxseqs", math.MaxInt)
	if err != nil {
		return err
	}

	if count < minSeqs || count > maxSeqs {
		return ErrBadValue.With(
			slog.String("name", ctx.Name()),
			slog.Int("count", count),
			slog.Int("minseqs", minSeqs),
			slog.Int("maxseqs", maxSeqs),
		)
	}

	return nil
}

// positions derives the begin and end calculated attributes from the
// sbegin/send associated qualifiers, a range in the query, or the sequence
// length, in that order. Negative positions count back from the end.
func (c dataCap) positions(ctx SetContext, calc map[string]string) error {
	length, _ := strconv.Atoi(calc["length"])

	if err := c.checkCount(ctx, calc); err != nil {
		return err
	}

	pos := func(assoc, calcKey string, def int) int {
		s, ok := ctx.Assoc(assoc)
		if !ok || s == "" || s == "0" {
			s = calc[calcKey]
		}

		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n == 0 {
			return def
		}

		if n < 0 {
			n = length + n + 1
		}

		return max(1, min(n, max(length, 1)))
	}

	begin := pos("sbegin", "begin", 1)
	end := pos("send", "end", length)

	if length > 0 && begin > end {
		ctx.Warn("begin position after end, swapped",
			slog.String("name", ctx.Name()),
			slog.Int("begin", begin),
			slog.Int("end", end))

		begin, end = end, begin
	}

	ctx.SetCalc("begin", strconv.Itoa(begin))
	ctx.SetCalc("end", strconv.Itoa(end))

	if p, ok := ctx.Assoc("sprotein"); ok && p == "Y" {
		ctx.SetCalc("protein", "Y")
	}

	if n, ok := ctx.Assoc("snucleotide"); ok && n == "Y" {
		ctx.SetCalc("nucleic", "Y")
	}

	return nil
}

func (c dataCap) Delete(v Value) error {
	if d, ok := v.Native.(*Data); ok {
		return d.Close()
	}

	return nil
}

func (c dataCap) Prompt(SetContext) string {
	switch c.kind {
	case "sequence":
		return "Input sequence"
	case "seqall", "seqset", "seqsetall":
		return "Input sequence set"
	case "features":
		return "Input features"
	default:
		return "Input " + c.kind + " file"
	}
}

func (c dataCap) Describe(SetContext) string {
	return "Readable " + c.kind
}
