// Package lang reads declaration files into an ordered graph of typed
// declarations.
//
// # Syntax
//
// A declaration file is a sequence of entries. Each entry starts with a
// keyword followed by a colon and a name:
//
//	application: water [
//	  documentation: "Smith-Waterman local alignment"
//	  groups: "Alignment:Local"
//	]
//
//	section: input [
//	  information: "Input section"
//	  type: "page"
//	]
//
//	  sequence: asequence [
//	    parameter: "Y"
//	    type: "any"
//	  ]
//
//	endsection: input
//
//	variable: gapdefault "@($(asequence.protein) ? 10.0 : 15.0)"
//
// The keyword is "application", "variable", "relation", "section",
// "endsection", or the name of a type from the [types.Registry]; any
// unambiguous prefix is accepted. "#" at the start of a word begins a
// comment. Attribute values are quoted with single or double quotes or are
// bare words. Inside quotes a backslash at the end of a line forces a line
// break in formatted output.
//
// # Graph
//
// [ParseString] returns a [Graph] holding one [Decl] per entry in file
// order. Declarations of a type with associated qualifiers (the begin and end
// positions of a sequence, the directory of an output file, ...) are
// preceded by one generated declaration per associated qualifier. An
// attribute in the master's list naming an associated qualifier sets that
// qualifier's default.
//
// [Graph.Process] assigns parameter numbers and must run before the graph is
// matched against a command line.
package lang
