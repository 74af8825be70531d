package engine

import (
	"context"

	"github.com/ardnew/acd/config"
	"github.com/ardnew/acd/lang"
	"github.com/ardnew/acd/types"
)

// Usage categories, in display order.
const (
	UsageRequired   = "Required"
	UsageAdditional = "Additional"
	UsageAdvanced   = "Advanced"
	UsageAssociated = "Associated"
)

// UsageEntry describes one qualifier for help output.
type UsageEntry struct {
	Category string
	Name     string
	Master   string
	Type     string
	Param    int
	Info     string
	Accepts  string
	Default  string
}

// Flag returns the command-line spelling of the qualifier.
func (u UsageEntry) Flag() string {
	if u.Master != "" {
		return "-" + u.Name + "_" + u.Master
	}

	if u.Param > 0 {
		return "[-" + u.Name + "]"
	}

	return "-" + u.Name
}

// Usage describes every qualifier in file order. Defaults are resolved as
// if no value had been given; a default that cannot be resolved is shown
// unresolved.
func (e *Engine) Usage(ctx context.Context) ([]UsageEntry, error) {
	if err := e.g.Process(ctx); err != nil {
		return nil, err
	}

	saved := e.current
	e.current = e.g.Len()

	defer func() { e.current = saved }()

	var out []UsageEntry

	for _, d := range e.g.All() {
		if !d.IsQualifier() {
			continue
		}

		u, err := e.usage(ctx, d)
		if err != nil {
			return nil, err
		}

		out = append(out, u)
	}

	return out, nil
}

func (e *Engine) usage(ctx context.Context, d *lang.Decl) (UsageEntry, error) {
	desc := e.g.Descriptor(d)
	sc := e.setContext(ctx, d)

	u := UsageEntry{
		Name:    d.Name,
		Type:    d.Type,
		Param:   d.Param,
		Accepts: desc.Cap.Describe(sc),
	}

	if d.IsAssoc() {
		u.Master = e.g.Master(d).Name
	}

	info, err := e.promptText(ctx, d, sc, desc)
	if err != nil {
		return u, err
	}

	u.Info = info

	if def, err := e.Attr(ctx, d, types.AttrDefault); err == nil {
		u.Default = def
	} else if raw, _, ok := e.raw(d, types.AttrDefault); ok {
		u.Default = raw
	}

	if desc.IsBool() {
		if b, err := config.ParseBool(u.Default); err == nil {
			u.Default = types.YesNo(b)
		}
	}

	switch {
	case d.IsAssoc():
		u.Category = UsageAssociated
	default:
		req, err := e.required(ctx, d)
		if err != nil {
			return u, err
		}

		add, err := e.Bool(ctx, d, types.AttrAdditional, false)
		if err != nil {
			return u, err
		}

		switch {
		case req:
			u.Category = UsageRequired
		case add:
			u.Category = UsageAdditional
		default:
			u.Category = UsageAdvanced
		}
	}

	return u, nil
}
