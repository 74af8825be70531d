package eval

import (
	"regexp"
	"strings"
)

type segmentKind int

const (
	segmentText segmentKind = iota
	segmentVar
	segmentExpr
)

// segment is one piece of attribute text: literal text, a variable
// reference, or an expression whose body is itself a segment list.
type segment struct {
	kind  segmentKind
	text  string
	name  string
	attr  string
	inner []segment
}

//nolint:gochecknoglobals
var varRef = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)(?:\.([A-Za-z_][A-Za-z0-9_]*))?\s*$`)

// hasMarkers reports whether s contains a variable or expression marker.
func hasMarkers(s string) bool {
	return strings.Contains(s, "$(") || strings.Contains(s, "@(")
}

// parseSegments splits s into segments. Markers without a closing
// parenthesis, and variable references that are not names, are literal.
func parseSegments(s string) []segment {
	var (
		out []segment
		lit strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, segment{kind: segmentText, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		if i+1 < len(s) && s[i+1] == '(' && (s[i] == '$' || s[i] == '@') {
			end := closing(s, i+2)
			if end < 0 {
				lit.WriteString(s[i:])

				break
			}

			body := s[i+2 : end]

			switch s[i] {
			case '$':
				m := varRef.FindStringSubmatch(body)
				if m == nil {
					lit.WriteString(s[i : end+1])
				} else {
					flush()
					out = append(out, segment{kind: segmentVar, name: m[1], attr: m[2], text: s[i : end+1]})
				}
			case '@':
				flush()
				out = append(out, segment{kind: segmentExpr, text: s[i : end+1], inner: parseSegments(body)})
			}

			i = end + 1

			continue
		}

		lit.WriteByte(s[i])
		i++
	}

	flush()

	return out
}

// closing returns the index of the parenthesis closing the one opened just
// before start, or -1.
func closing(s string, start int) int {
	depth := 1

	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
