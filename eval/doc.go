// Package eval resolves the variable references and function expressions
// embedded in attribute values.
//
// A variable reference is written $(name) or $(name.attribute) and is
// replaced with the value a [Lookup] reports for it; the attribute defaults
// to "default". An expression is written @(...) and is replaced with its
// result. Expressions are tried in this order, first match wins:
//
//	@(a + b)  @(a - b)  @(a * b)  @(a / b)    arithmetic over integers or floats
//	@(a == b) @(a != b) @(a > b)  @(a < b)    comparison of numbers or strings
//	@(!a)     @(a & b)  @(a | b)              boolean logic
//	@(c ? x : y)                              conditional
//	@(a = {x, y, z})                          set membership
//	@(a = x: v1 y: v2 else: v3)               case selection
//	@(filename: path)                         base name without extension
//	@(exists: text)                           Y when text is not empty
//	@(value: NAME)                            named configuration value
//
// Booleans are rendered Y and N. Expressions nest, innermost first, and the
// text produced by one pass is scanned again until no markers remain.
package eval
