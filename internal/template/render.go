// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package template

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-configtpl/models"
)

// Render evaluates t against scope and returns the resulting text. Scope is
// expected to be a map; any other value behaves like an empty map. Neither
// t nor scope is modified.
func (t *Template) Render(scope models.Value) (string, error) {
	var sb strings.Builder
	for _, n := range t.Nodes {
		switch node := n.(type) {
		case *TextNode:
			sb.WriteString(node.Text)
		case *ExprNode:
			v, err := t.eval(node, scope)
			if err != nil {
				return "", err
			}
			text, ok := v.Text()
			if !ok {
				return "", newError(ErrType, node.Span, t.Source, "%s %q cannot be interpolated into text", v.Kind(), node.Var.Path())
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}

// RenderValue evaluates t against scope and returns a typed result. A
// template made of a single expression with no surrounding text yields the
// resolved value itself, so "${port}" keeps an integer an integer; every
// other template yields a String.
func (t *Template) RenderValue(scope models.Value) (models.Value, error) {
	if t.IsSingleExpr() {
		v, err := t.eval(t.Nodes[0].(*ExprNode), scope)
		if err != nil {
			return models.Value{}, err
		}
		return v.Clone(), nil
	}

	text, err := t.Render(scope)
	if err != nil {
		return models.Value{}, err
	}
	return models.String(text), nil
}

func (t *Template) eval(node *ExprNode, scope models.Value) (models.Value, error) {
	chain := node.Filters
	v, err := t.resolve(node.Var, scope)
	if err != nil {
		i := indexOfDefault(chain)
		if i < 0 {
			return models.Value{}, err
		}
		v = chain[i].Arg
		chain = chain[i+1:]
	}

	for _, f := range chain {
		out, ok := lookupFilter(f.Name).apply(v, f.Arg)
		if !ok {
			return models.Value{}, newError(ErrType, f.Span, t.Source, "filter %q cannot be applied to a %s", f.Name, v.Kind())
		}
		v = out
	}

	return v, nil
}

// resolve steps through scope along ref. A path that does not resolve
// yields an ErrUndefinedVariable error spanning the whole reference.
func (t *Template) resolve(ref *VarRef, scope models.Value) (models.Value, error) {
	cur := scope
	if !cur.IsMap() {
		cur = models.EmptyMap()
	}

	for i, seg := range ref.Segments {
		switch cur.Kind() {
		case models.KindMap:
			m, _ := cur.AsMap()
			next, ok := m.Get(seg)
			if !ok {
				return models.Value{}, t.undefined(ref, "%q is not defined", prefixPath(ref, i+1))
			}
			cur = next
		case models.KindList:
			items, _ := cur.AsList()
			idx, convErr := strconv.Atoi(seg)
			if convErr != nil {
				return models.Value{}, t.undefined(ref, "%q is a list, cannot access %q", prefixPath(ref, i), seg)
			}
			if idx < 0 || idx >= len(items) {
				return models.Value{}, t.undefined(ref, "index %d out of range for %q of length %d", idx, prefixPath(ref, i), len(items))
			}
			cur = items[idx]
		default:
			return models.Value{}, t.undefined(ref, "%q is a %s, cannot access %q", prefixPath(ref, i), cur.Kind(), seg)
		}
	}

	return cur, nil
}

func (t *Template) undefined(ref *VarRef, format string, args ...any) error {
	return newError(ErrUndefinedVariable, ref.Span, t.Source, format, args...)
}

func prefixPath(ref *VarRef, n int) string {
	return strings.Join(ref.Segments[:n], ".")
}

func indexOfDefault(fs []*Filter) int {
	for i, f := range fs {
		if f.Name == "default" {
			return i
		}
	}
	return -1
}

func lookupFilter(name string) filterSpec {
	return filters[name]
}
