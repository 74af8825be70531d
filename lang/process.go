package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/pkg"
	"github.com/ardnew/acd/types"
)

// Process is the post-parse pass. It checks that every declaration's kind
// agrees with its level, fixes the parameter attribute, and numbers the
// parameters in file order. Process is idempotent.
func (g *Graph) Process(ctx context.Context) error {
	if g.processed {
		return nil
	}

	for _, d := range g.decls {
		if err := g.checkLevel(d); err != nil {
			return err
		}

		if !d.Level.IsQualifier() {
			continue
		}

		g.registry.Use(d.Kind)

		raw, ok := d.Attr(types.AttrParameter)
		if !ok {
			continue
		}

		param, err := config.ParseBool(raw)
		if err != nil {
			return ErrAttribute.At(g.pos(d)).With(
				slog.String("name", d.Name),
				slog.String("attribute", types.AttrParameter),
				slog.String("value", raw),
				slog.String("reason", "must be a literal boolean"),
			)
		}

		if !param {
			continue
		}

		if d.IsAssoc() {
			return ErrDefinition.At(g.pos(d)).With(
				slog.String("name", d.Name),
				slog.String("reason", "associated qualifier cannot be a parameter"),
			)
		}

		g.params++
		d.Param = g.params
		d.Level = types.LevelParameter

		g.logger.TraceContext(ctx, "parameter",
			slog.String("name", d.Name),
			slog.Int("number", d.Param))
	}

	for _, d := range g.decls {
		desc := g.registry.Descriptor(d.Kind)
		if desc == nil || d.IsAssoc() || d.Section == "" || desc.Section == "" {
			continue
		}

		// Only input and output placement is checked.
		if d.Section == desc.Section ||
			(d.Section != types.SectionInput && d.Section != types.SectionOutput) {
			continue
		}

		g.logger.DebugContext(ctx, "declaration outside its expected section",
			slog.String("name", d.Name),
			slog.String("section", d.Section),
			slog.String("expected", desc.Section))
	}

	g.processed = true

	g.logger.DebugContext(ctx, "processed declarations",
		slog.String("application", g.Program),
		slog.Int("declarations", len(g.decls)),
		slog.Int("parameters", g.params))

	return nil
}

// checkLevel verifies that d's kind indexes a registry entry matching its
// level: a descriptor for qualifiers, a keyword for everything else.
func (g *Graph) checkLevel(d *Decl) error {
	if d.Level.IsQualifier() {
		desc := g.registry.Descriptor(d.Kind)
		if desc == nil || desc.Name != d.Type {
			return ErrDefinition.At(g.pos(d)).With(
				slog.String("name", d.Name),
				slog.String("type", d.Type),
				slog.String("reason", "unknown type"),
			)
		}

		return nil
	}

	kw, ok := g.registry.Keyword(d.Type)
	if !ok || kw.Level != d.Level || d.Kind != types.KindNone {
		return ErrDefinition.At(g.pos(d)).With(
			slog.String("name", d.Name),
			slog.String("keyword", d.Type),
			slog.String("level", d.Level.String()),
		)
	}

	return nil
}

// ParamCount returns the number of parameters assigned by Process.
func (g *Graph) ParamCount() int { return g.params }

func (g *Graph) pos(d *Decl) pkg.Position { return pkg.Position{File: g.File, Line: d.Line} }
