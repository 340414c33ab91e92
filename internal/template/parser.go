// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package template

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-configtpl/models"
)

// HasTemplate reports whether s contains an expression opener. Strings
// without one render to themselves and need not be parsed.
func HasTemplate(s string) bool {
	return strings.Contains(s, openDelim)
}

// Parse converts source into a Template. Parsing is pure: it only looks at
// source. Syntax errors are returned as *Error with kind ErrParse.
func Parse(source string) (*Template, error) {
	p := &parser{lex: newLexer(source), src: source}
	nodes, err := p.parseTemplate()
	if err != nil {
		return nil, err
	}
	return &Template{Source: source, Nodes: nodes}, nil
}

type parser struct {
	lex *lexer
	src string
}

func (p *parser) errorf(span models.Span, format string, args ...any) error {
	return newError(ErrParse, span, p.src, format, args...)
}

func (p *parser) parseTemplate() ([]Node, error) {
	var nodes []Node
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}

		switch tok.typ {
		case tokEOF:
			return nodes, nil
		case tokText:
			nodes = append(nodes, &TextNode{Span: tok.span, Text: tok.val})
		case tokOpen:
			expr, err := p.parseExpr(tok)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, expr)
		default:
			return nil, p.errorf(tok.span, "unexpected %s", tok.typ)
		}
	}
}

func (p *parser) parseExpr(open token) (*ExprNode, error) {
	first, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if first.typ == tokClose {
		p.lex.next()
		return nil, p.errorf(models.Span{Line: open.span.Line, Start: open.span.Start, End: first.span.End}, "empty variable path")
	}

	ref, err := p.parseVarRef()
	if err != nil {
		return nil, err
	}

	expr := &ExprNode{Var: ref}
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}

		switch tok.typ {
		case tokClose:
			expr.Span = models.Span{Line: open.span.Line, Start: open.span.Start, End: tok.span.End}
			return expr, nil
		case tokPipe:
			filter, err := p.parseFilter(tok)
			if err != nil {
				return nil, err
			}
			expr.Filters = append(expr.Filters, filter)
		default:
			return nil, p.errorf(tok.span, "unexpected %s in expression, expected %q or %q", tok.typ, "|", "}")
		}
	}
}

func (p *parser) parseVarRef() (*VarRef, error) {
	seg, err := p.parseSegment()
	if err != nil {
		return nil, err
	}
	ref := &VarRef{Span: seg.span, Segments: []string{seg.val}}

	for {
		tok, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if tok.typ != tokDot {
			return ref, nil
		}
		p.lex.next()

		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		ref.Segments = append(ref.Segments, seg.val)
		ref.Span.End = seg.span.End
	}
}

func (p *parser) parseSegment() (token, error) {
	tok, err := p.lex.next()
	if err != nil {
		return token{}, err
	}

	switch tok.typ {
	case tokIdent:
		return tok, nil
	case tokNumber:
		if strings.HasPrefix(tok.val, "-") {
			return token{}, p.errorf(tok.span, "list index %s must not be negative", tok.val)
		}
		return tok, nil
	case tokClose:
		return token{}, p.errorf(tok.span, "empty variable path segment")
	default:
		return token{}, p.errorf(tok.span, "unexpected %s, expected a variable name", tok.typ)
	}
}

func (p *parser) parseFilter(pipe token) (*Filter, error) {
	name, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if name.typ != tokIdent {
		return nil, p.errorf(name.span, "expected filter name after %q", pipe.val)
	}

	spec, ok := filters[name.val]
	if !ok {
		return nil, p.errorf(name.span, "unknown filter %q", name.val)
	}

	f := &Filter{Span: name.span, Name: name.val}

	next, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if next.typ == tokLParen {
		p.lex.next()
		arg, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		closing, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if closing.typ != tokRParen {
			return nil, p.errorf(closing.span, "expected %q after filter argument", ")")
		}
		f.Arg = arg
		f.HasArg = true
		f.Span.End = closing.span.End
	}

	if spec.needsArg && !f.HasArg {
		return nil, p.errorf(f.Span, "filter %q requires an argument", f.Name)
	}
	if !spec.needsArg && f.HasArg {
		return nil, p.errorf(f.Span, "filter %q takes no argument", f.Name)
	}

	return f, nil
}

func (p *parser) parseLiteral() (models.Value, error) {
	tok, err := p.lex.next()
	if err != nil {
		return models.Value{}, err
	}

	switch tok.typ {
	case tokString:
		return models.String(tok.val), nil
	case tokNumber:
		if i, err := strconv.ParseInt(tok.val, 10, 64); err == nil {
			return models.Int(i), nil
		}
		f, err := strconv.ParseFloat(tok.val, 64)
		if err != nil {
			return models.Value{}, p.errorf(tok.span, "invalid number %s", tok.val)
		}
		return models.Float(f), nil
	case tokIdent:
		switch tok.val {
		case "true":
			return models.Bool(true), nil
		case "false":
			return models.Bool(false), nil
		case "null":
			return models.Null(), nil
		}
	}

	return models.Value{}, p.errorf(tok.span, "expected a literal argument, got %s", tok.typ)
}
