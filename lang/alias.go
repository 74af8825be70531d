package lang

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/acd/types"
)

// attrAlias maps older or abbreviated attribute names to their current
// equivalent.
//
//nolint:gochecknoglobals
var attrAlias = map[string]string{
	"req":       types.AttrStandard,
	"required":  types.AttrStandard,
	"opt":       types.AttrAdditional,
	"optional":  types.AttrAdditional,
	"def":       types.AttrDefault,
	"info":      types.AttrInformation,
	"param":     types.AttrParameter,
	"min":       "minimum",
	"max":       "maximum",
	"prompts":   types.AttrPrompt,
	"doc":       "documentation",
	"expect":    types.AttrExpected,
	"relation":  types.AttrRelations,
	"qualifier": types.AttrQualifier,
}

// Schema returns the attributes d accepts: the shared default attributes
// plus the kind's own for qualifiers, or the keyword's for everything else.
func (g *Graph) Schema(d *Decl) types.Schema {
	if d.Level.IsQualifier() {
		desc := g.registry.Descriptor(d.Kind)
		if desc == nil {
			return types.DefaultAttrs()
		}

		return append(types.DefaultAttrs(), desc.Attrs...)
	}

	if kw, ok := g.registry.Keyword(d.Type); ok {
		return kw.Attrs
	}

	return nil
}

// resolveAttr maps an attribute name as written to its schema name. The
// alias table is consulted first, then exact schema names, then the
// associated qualifier names, then unambiguous schema prefixes. assoc
// reports that the name is an associated qualifier.
func resolveAttr(name string, schema types.Schema, assocNames []string) (string, bool, error) {
	n := strings.ToLower(name)

	if a, ok := attrAlias[n]; ok {
		if _, ok := schema.Find(a); ok {
			n = a
		}
	}

	if def, ok := schema.Find(n); ok {
		return def.Name, false, nil
	}

	if i := slices.IndexFunc(assocNames, func(s string) bool {
		return strings.EqualFold(s, n)
	}); i >= 0 {
		return assocNames[i], true, nil
	}

	var match []string

	for _, s := range schema.Names() {
		if strings.HasPrefix(s, n) {
			match = append(match, s)
		}
	}

	switch len(match) {
	case 1:
		return match[0], false, nil
	case 0:
		return "", false, ErrAttribute.With(
			slog.String("attribute", name),
			slog.Any("suggestions", Suggest(n, append(schema.Names(), assocNames...), 3)),
		)
	default:
		return "", false, ErrAttribute.With(
			slog.String("attribute", name),
			slog.String("reason", "ambiguous"),
			slog.Any("candidates", match),
		)
	}
}
