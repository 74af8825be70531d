// Package engine runs a processed declaration graph against a command line:
// it matches the arguments, then visits every declaration in file order,
// resolving attributes, prompting for required values, and setting the
// final typed value of each one.
//
// # Attributes
//
// An attribute of a declaration is looked up in three tiers: the kind's own
// attributes, the attributes shared by every qualifier, and the calculated
// attributes recorded once the value is set. Unset attributes take their
// schema default. Values are resolved for $(name.attr) and @(...) markers
// before use.
//
// # Results
//
//	res, err := engine.New(g, engine.WithPrompter(p)).Run(ctx, args)
//	if err != nil {
//		return err
//	}
//	defer res.Close()
//
//	width, err := res.Int("width")
package engine
