// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package template

import (
	"strings"

	"github.com/MKhiriev/go-configtpl/models"
)

// Node is one element of a parsed template.
type Node interface {
	Pos() models.Span
	node()
}

// TextNode is a run of literal text. Text runs never cross a line break;
// a run ends right after its newline.
type TextNode struct {
	Span models.Span
	Text string
}

// ExprNode is one "${...}" region. Span covers the region including its
// delimiters.
type ExprNode struct {
	Span    models.Span
	Var     *VarRef
	Filters []*Filter
}

// VarRef is the dotted variable path of an expression. Span covers the path
// characters only.
type VarRef struct {
	Span     models.Span
	Segments []string
}

// Filter is a "| name" or "| name(arg)" application. Span covers the name
// and the optional argument list.
type Filter struct {
	Span   models.Span
	Name   string
	Arg    models.Value
	HasArg bool
}

func (n *TextNode) Pos() models.Span { return n.Span }
func (n *ExprNode) Pos() models.Span { return n.Span }

func (*TextNode) node() {}
func (*ExprNode) node() {}

// Path returns the segments joined with ".".
func (v *VarRef) Path() string {
	return strings.Join(v.Segments, ".")
}

// Template is a parsed template source. It is immutable and may be rendered
// concurrently against different scopes.
type Template struct {
	Source string
	Nodes  []Node
}

// IsSingleExpr reports whether the template consists of exactly one
// expression region with no surrounding text.
func (t *Template) IsSingleExpr() bool {
	if len(t.Nodes) != 1 {
		return false
	}
	_, ok := t.Nodes[0].(*ExprNode)
	return ok
}
