package lang

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/ardnew/acd/pkg"
)

// tokenKind classifies a lexical token of a declaration file.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenWord
	tokenString
	tokenOpen
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of file"
	case tokenWord:
		return "word"
	case tokenString:
		return "quoted string"
	case tokenOpen:
		return "'['"
	case tokenClose:
		return "']'"
	default:
		return "unknown"
	}
}

// token is one lexical unit with the line it starts on.
type token struct {
	kind  tokenKind
	text  string
	line  int
	quote rune
}

// lexer splits declaration source into tokens. "#" at the start of a token
// begins a comment running to the end of the line; "[" and "]" are tokens of
// their own unless escaped with a backslash; quoted strings may span lines.
type lexer struct {
	src  []rune
	pos  int
	line int
	file string
}

func newLexer(file, src string) *lexer {
	return &lexer{src: []rune(src), line: 1, file: file}
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	return l.src[l.pos]
}

func (l *lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.src) {
		return 0
	}

	return l.src[l.pos+n]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++

	if r == '\n' {
		l.line++
	}

	return r
}

func (l *lexer) position() pkg.Position {
	return pkg.Position{File: l.file, Line: l.line}
}

func (l *lexer) skipSpaceAndComments() {
	for !l.eof() {
		r := l.peek()

		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '#':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// next returns the next token.
func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()

	if l.eof() {
		return token{kind: tokenEOF, line: l.line}, nil
	}

	line := l.line

	switch r := l.peek(); r {
	case '[':
		l.advance()

		return token{kind: tokenOpen, text: "[", line: line}, nil

	case ']':
		l.advance()

		return token{kind: tokenClose, text: "]", line: line}, nil

	case '"', '\'':
		return l.quoted()

	default:
		return l.word(), nil
	}
}

// word scans a bare word. A word ending in ':' directly followed by a quote
// ends there, so `default:"10"` reads as a label and a string.
func (l *lexer) word() token {
	var sb strings.Builder

	line := l.line

	for !l.eof() {
		r := l.peek()

		if unicode.IsSpace(r) || r == '[' || r == ']' {
			break
		}

		if r == '\\' && (l.peekAt(1) == '[' || l.peekAt(1) == ']') {
			l.advance()
			sb.WriteRune(l.advance())

			continue
		}

		if (r == '"' || r == '\'') && strings.HasSuffix(sb.String(), ":") {
			break
		}

		sb.WriteRune(l.advance())
	}

	return token{kind: tokenWord, text: sb.String(), line: line}
}

// quoted scans a quoted string. A backslash before the closing quote
// character escapes it. A backslash immediately before the end of a line
// forces a line break; other line breaks, along with the indentation that
// follows them, read as a single space.
func (l *lexer) quoted() (token, error) {
	line := l.line
	quote := l.advance()

	var sb strings.Builder

	for !l.eof() {
		r := l.advance()

		switch {
		case r == quote:
			return token{kind: tokenString, text: sb.String(), line: line, quote: quote}, nil

		case r == '\\' && (l.peek() == quote || l.peek() == '\\'):
			sb.WriteRune(l.advance())

		case r == '\\' && (l.peek() == '\n' || (l.peek() == '\r' && l.peekAt(1) == '\n')):
			for l.peek() != '\n' {
				l.advance()
			}

			l.advance()
			l.skipIndent()
			sb.WriteByte('\n')

		case r == '\n' || (r == '\r' && l.peek() == '\n'):
			if r == '\r' {
				l.advance()
			}

			l.skipIndent()

			if s := sb.String(); s != "" && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n") {
				sb.WriteByte(' ')
			}

		default:
			sb.WriteRune(r)
		}
	}

	return token{}, ErrSyntax.At(pkg.Position{File: l.file, Line: line}).
		With(slog.String("reason", "unterminated quoted string"))
}

func (l *lexer) skipIndent() {
	for !l.eof() && (l.peek() == ' ' || l.peek() == '\t') {
		l.advance()
	}
}

// tokenize returns every token of src.
func tokenize(file, src string) ([]token, error) {
	l := newLexer(file, src)

	var toks []token

	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, t)

		if t.kind == tokenEOF {
			return toks, nil
		}
	}
}

// isIdent reports whether s is a declaration or attribute name.
func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

// splitLabel splits a word of the form "name:" or "name:value" at the first
// colon when name is an identifier.
func splitLabel(s string) (name, rest string, ok bool) {
	name, rest, ok = strings.Cut(s, ":")
	if !ok || !isIdent(name) {
		return "", "", false
	}

	return name, rest, true
}
