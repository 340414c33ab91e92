// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import (
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/MKhiriev/go-configtpl/internal/merge"
	"github.com/MKhiriev/go-configtpl/models"
)

// HCL decodes HCL native syntax. Attributes become map entries in source
// order; a block becomes a nested map under its type, then under each of
// its labels. Repeated blocks of the same address are merged.
//
// Expressions are evaluated without variables or functions, so
// configuration templates inside HCL strings must be written with HCL's
// own escape, "$${name}", to reach the loader as "${name}".
type HCL struct {
	// Filename is used in diagnostics only.
	Filename string
}

// Decode implements [Decoder].
func (d HCL) Decode(data []byte) (models.Value, error) {
	file, diags := hclsyntax.ParseConfig(data, d.Filename, hcl.InitialPos)
	if diags.HasErrors() {
		return models.Value{}, errorf("hcl: %s", diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return models.Value{}, errorf("hcl: unexpected body type %T", file.Body)
	}

	return decodeHCLBody(body)
}

type hclItem struct {
	offset int
	attr   *hclsyntax.Attribute
	block  *hclsyntax.Block
}

func decodeHCLBody(body *hclsyntax.Body) (models.Value, error) {
	items := make([]hclItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		items = append(items, hclItem{offset: attr.SrcRange.Start.Byte, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, hclItem{offset: block.TypeRange.Start.Byte, block: block})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].offset < items[j].offset })

	out := models.EmptyMap()
	for _, item := range items {
		if item.attr != nil {
			val, diags := item.attr.Expr.Value(nil)
			if diags.HasErrors() {
				return models.Value{}, errorf("hcl: %s", diags.Error())
			}
			v, err := fromCty(val)
			if err != nil {
				return models.Value{}, errorf("hcl: %s: %s", item.attr.Name, err)
			}
			m, _ := out.AsMap()
			m.Set(item.attr.Name, v)
			continue
		}

		inner, err := decodeHCLBody(item.block.Body)
		if err != nil {
			return models.Value{}, err
		}
		for i := len(item.block.Labels) - 1; i >= 0; i-- {
			inner = models.MapOf(models.NewMapFrom(models.Entry{Name: item.block.Labels[i], Value: inner}))
		}
		out = merge.Merge(out, models.MapOf(models.NewMapFrom(models.Entry{Name: item.block.Type, Value: inner})))
	}

	return out, nil
}

// fromCty converts an evaluated HCL value. Unknown values are treated as
// null; object attributes come out sorted by name.
func fromCty(v cty.Value) (models.Value, error) {
	if v.IsNull() || !v.IsKnown() {
		return models.Null(), nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return models.String(v.AsString()), nil
	case ty == cty.Bool:
		return models.Bool(v.True()), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return models.Int(i), nil
			}
		}
		f, _ := bf.Float64()
		return models.Float(f), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		items := make([]models.Value, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			item, err := fromCty(elem)
			if err != nil {
				return models.Value{}, err
			}
			items = append(items, item)
		}
		return models.List(items...), nil
	case ty.IsObjectType() || ty.IsMapType():
		m := models.NewMap()
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			item, err := fromCty(elem)
			if err != nil {
				return models.Value{}, err
			}
			m.Set(key.AsString(), item)
		}
		return models.MapOf(m), nil
	}

	return models.Value{}, errorf("unsupported value type %s", ty.FriendlyName())
}
