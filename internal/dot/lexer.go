package dot

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tkEOF tokenKind = iota
	tkIdent
	tkLBrace
	tkRBrace
	tkLBracket
	tkRBracket
	tkSemi
	tkComma
	tkEq
	tkArrow   // ->
	tkUndirop // --
)

type token struct {
	kind   tokenKind
	text   string
	quoted bool
	line   int
	col    int
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) errf(line, col int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

// tokens scans the whole input up front. DOT sources are small enough that
// a token slice beats threading lexer state through the parser.
func (l *lexer) tokens() ([]token, *ParseError) {
	var out []token
	for {
		if err := l.skipBlanks(); err != nil {
			return nil, err
		}
		line, col := l.line, l.col
		if l.pos >= len(l.src) {
			out = append(out, token{kind: tkEOF, line: line, col: col})
			return out, nil
		}
		c := l.peek()
		switch {
		case c == '{':
			l.advance()
			out = append(out, token{kind: tkLBrace, text: "{", line: line, col: col})
		case c == '}':
			l.advance()
			out = append(out, token{kind: tkRBrace, text: "}", line: line, col: col})
		case c == '[':
			l.advance()
			out = append(out, token{kind: tkLBracket, text: "[", line: line, col: col})
		case c == ']':
			l.advance()
			out = append(out, token{kind: tkRBracket, text: "]", line: line, col: col})
		case c == ';':
			l.advance()
			out = append(out, token{kind: tkSemi, text: ";", line: line, col: col})
		case c == ',':
			l.advance()
			out = append(out, token{kind: tkComma, text: ",", line: line, col: col})
		case c == '=':
			l.advance()
			out = append(out, token{kind: tkEq, text: "=", line: line, col: col})
		case c == '-':
			l.advance()
			switch l.peek() {
			case '>':
				l.advance()
				out = append(out, token{kind: tkArrow, text: "->", line: line, col: col})
			case '-':
				l.advance()
				out = append(out, token{kind: tkUndirop, text: "--", line: line, col: col})
			default:
				return nil, l.errf(line, col, "unexpected character %q", '-')
			}
		case c == '"':
			text, err := l.quotedString()
			if err != nil {
				return nil, err
			}
			out = append(out, token{kind: tkIdent, text: text, quoted: true, line: line, col: col})
		case isIdentRune(rune(c)) || c >= utf8.RuneSelf:
			out = append(out, token{kind: tkIdent, text: l.bareIdent(), line: line, col: col})
		default:
			return nil, l.errf(line, col, "unexpected character %q", rune(c))
		}
	}
}

func (l *lexer) skipBlanks() *ParseError {
	for l.pos < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#':
			l.skipLine()
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			l.skipLine()
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			line, col := l.line, l.col
			l.advance()
			l.advance()
			closed := false
			for l.pos < len(l.src) {
				if l.peek() == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return l.errf(line, col, "unterminated block comment")
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) skipLine() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

func (l *lexer) quotedString() (string, *ParseError) {
	line, col := l.line, l.col
	l.advance() // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.advance()
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if l.pos >= len(l.src) {
				return "", l.errf(line, col, "unterminated quoted string")
			}
			esc := l.advance()
			switch esc {
			case '"', '\\':
				b.WriteByte(esc)
			case '\n':
				// line continuation, drop both
			default:
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", l.errf(line, col, "unterminated quoted string")
}

func (l *lexer) bareIdent() string {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentRune(r) {
			break
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
	}
	return l.src[start:l.pos]
}

// Bare identifiers cover DOT names and numerals plus the dotted resource
// addresses produced by infrastructure-graph exporters (aws_instance.web).
func isIdentRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
