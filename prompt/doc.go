// Package prompt asks the user for declaration values.
//
// [Line] reads answers one line at a time and suits pipes and dumb
// terminals. [TUI] runs a small Bubble Tea program per question with an
// editable input, the default as placeholder, and recall of earlier
// answers from a [History]. [New] picks one based on whether both streams
// are terminals.
package prompt
