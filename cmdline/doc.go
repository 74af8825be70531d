// Package cmdline matches command-line tokens against the qualifiers and
// parameters of a processed declaration graph.
//
// A qualifier token has the shape
//
//	-name[instance][_master][=value] [value]
//
// and is decomposed once by [ParseQualRef]. Names match by unambiguous
// prefix. Boolean qualifiers take an optional value and accept a "no"
// prefix; nullable kinds given in negated form are cleared. Bare tokens are
// assigned to parameters in file order.
//
// A fixed control vocabulary ([Controls]) is recognised before any
// declaration is consulted.
//
//	m := cmdline.New(g, cmdline.WithLogger(logger))
//	if err := m.Match(ctx, os.Args[1:]); err != nil {
//		return err
//	}
package cmdline
