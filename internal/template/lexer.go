// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package template

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-configtpl/models"
)

const (
	openDelim  = "${"
	escapeSeq  = "$${"
	closeDelim = '}'
)

type tokenType uint8

const (
	tokEOF tokenType = iota
	tokText
	tokOpen
	tokClose
	tokIdent
	tokNumber
	tokString
	tokDot
	tokPipe
	tokLParen
	tokRParen
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokText:
		return "text"
	case tokOpen:
		return `"${"`
	case tokClose:
		return `"}"`
	case tokIdent:
		return "name"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokDot:
		return `"."`
	case tokPipe:
		return `"|"`
	case tokLParen:
		return `"("`
	case tokRParen:
		return `")"`
	default:
		return "token"
	}
}

type token struct {
	typ  tokenType
	val  string
	span models.Span
}

// position tracks the scan cursor. col counts runes from the start of line.
type position struct {
	off  int
	line int
	col  int
}

// lexer splits template source into tokens. In text mode it yields text
// runs and "${"; after "${" it switches to expression mode until "}".
type lexer struct {
	src    string
	pos    position
	inExpr bool
	// open is the position of the "${" of the current expression.
	open   position
	peeked *token
}

func newLexer(src string) *lexer {
	return &lexer{src: src, pos: position{line: 1}}
}

func (l *lexer) peek() (token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.scan()
	if err != nil {
		return token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

func (l *lexer) next() (token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

func (l *lexer) scan() (token, error) {
	if l.inExpr {
		return l.scanExpr()
	}
	return l.scanText()
}

func (l *lexer) rest() string {
	return l.src[l.pos.off:]
}

// advance moves the cursor over one rune and returns it.
func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.rest())
	l.pos.off += size
	if r == '\n' {
		l.pos.line++
		l.pos.col = 0
	} else {
		l.pos.col++
	}
	return r
}

func (l *lexer) spanFrom(start position) models.Span {
	return models.Span{Line: start.line, Start: start.col, End: l.pos.col}
}

func (l *lexer) scanText() (token, error) {
	if l.pos.off >= len(l.src) {
		return token{typ: tokEOF, span: l.spanFrom(l.pos)}, nil
	}

	if strings.HasPrefix(l.rest(), openDelim) {
		start := l.pos
		l.advance()
		l.advance()
		l.inExpr = true
		l.open = start
		return token{typ: tokOpen, val: openDelim, span: l.spanFrom(start)}, nil
	}

	start := l.pos
	var sb strings.Builder
	for l.pos.off < len(l.src) {
		rest := l.rest()
		if strings.HasPrefix(rest, escapeSeq) {
			l.advance()
			l.advance()
			l.advance()
			sb.WriteString(openDelim)
			continue
		}
		if strings.HasPrefix(rest, openDelim) {
			break
		}
		end := l.pos.col + 1
		r := l.advance()
		sb.WriteRune(r)
		if r == '\n' {
			// the span stays on the line where the run started
			return token{
				typ:  tokText,
				val:  sb.String(),
				span: models.Span{Line: start.line, Start: start.col, End: end},
			}, nil
		}
	}

	return token{typ: tokText, val: sb.String(), span: l.spanFrom(start)}, nil
}

func (l *lexer) scanExpr() (token, error) {
	for l.pos.off < len(l.src) {
		c := l.src[l.pos.off]
		if c != ' ' && c != '\t' && c != '\r' {
			break
		}
		l.advance()
	}

	if l.pos.off >= len(l.src) || l.src[l.pos.off] == '\n' {
		return token{}, newError(ErrParse, l.spanFrom(l.open), l.src, "unterminated expression, expected %q", string(closeDelim))
	}

	start := l.pos
	r, _ := utf8.DecodeRuneInString(l.rest())
	switch {
	case r == closeDelim:
		l.advance()
		l.inExpr = false
		return token{typ: tokClose, val: "}", span: l.spanFrom(start)}, nil
	case r == '.':
		l.advance()
		return token{typ: tokDot, val: ".", span: l.spanFrom(start)}, nil
	case r == '|':
		l.advance()
		return token{typ: tokPipe, val: "|", span: l.spanFrom(start)}, nil
	case r == '(':
		l.advance()
		return token{typ: tokLParen, val: "(", span: l.spanFrom(start)}, nil
	case r == ')':
		l.advance()
		return token{typ: tokRParen, val: ")", span: l.spanFrom(start)}, nil
	case r == '"':
		return l.scanString(start)
	case isDigit(r) || r == '-':
		return l.scanNumber(start)
	case isIdentStart(r):
		for l.pos.off < len(l.src) {
			r, _ := utf8.DecodeRuneInString(l.rest())
			if !isIdentPart(r) {
				break
			}
			l.advance()
		}
		return token{typ: tokIdent, val: l.src[start.off:l.pos.off], span: l.spanFrom(start)}, nil
	default:
		l.advance()
		return token{}, newError(ErrParse, l.spanFrom(start), l.src, "illegal character %q in expression", r)
	}
}

func (l *lexer) scanNumber(start position) (token, error) {
	if l.src[l.pos.off] == '-' {
		l.advance()
	}
	digits := 0
	for l.pos.off < len(l.src) && isDigit(rune(l.src[l.pos.off])) {
		l.advance()
		digits++
	}
	// a fraction only follows when a digit comes after the dot, so "a.0.b"
	// keeps lexing as separate segments
	if l.pos.off+1 < len(l.src) && l.src[l.pos.off] == '.' && digits > 0 && l.isLiteralContext(start) && isDigit(rune(l.src[l.pos.off+1])) {
		l.advance()
		for l.pos.off < len(l.src) && isDigit(rune(l.src[l.pos.off])) {
			l.advance()
		}
	}
	if digits == 0 {
		return token{}, newError(ErrParse, l.spanFrom(start), l.src, "malformed number")
	}
	return token{typ: tokNumber, val: l.src[start.off:l.pos.off], span: l.spanFrom(start)}, nil
}

// isLiteralContext reports whether the number starting at start is a filter
// argument, i.e. directly preceded by "(" ignoring blanks.
func (l *lexer) isLiteralContext(start position) bool {
	i := start.off - 1
	for i >= 0 && (l.src[i] == ' ' || l.src[i] == '\t') {
		i--
	}
	return i >= 0 && l.src[i] == '('
}

func (l *lexer) scanString(start position) (token, error) {
	l.advance()
	for l.pos.off < len(l.src) {
		c := l.src[l.pos.off]
		switch c {
		case '\\':
			l.advance()
			if l.pos.off < len(l.src) && l.src[l.pos.off] != '\n' {
				l.advance()
			}
			continue
		case '\n':
			return token{}, newError(ErrParse, l.spanFrom(start), l.src, "unterminated string literal")
		case '"':
			l.advance()
			raw := l.src[start.off:l.pos.off]
			val, err := strconv.Unquote(raw)
			if err != nil {
				return token{}, newError(ErrParse, l.spanFrom(start), l.src, "invalid string literal %s", raw)
			}
			return token{typ: tokString, val: val, span: l.spanFrom(start)}, nil
		}
		l.advance()
	}
	return token{}, newError(ErrParse, l.spanFrom(start), l.src, "unterminated string literal")
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '-'
}
