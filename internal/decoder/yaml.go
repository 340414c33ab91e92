// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-configtpl/internal/merge"
	"github.com/MKhiriev/go-configtpl/models"
)

// maxAliasExpansions bounds how many times aliases may be expanded while
// decoding one document.
const maxAliasExpansions = 10000

// YAML decodes YAML documents. A stream of several documents is folded in
// order with the usual merge rules.
type YAML struct{}

// yamlWalker converts a node graph into a Value. Aliases are expanded in
// place; an alias that refers to an enclosing anchor is rejected.
type yamlWalker struct {
	active     map[*yaml.Node]bool
	expansions int
}

func newYAMLWalker() *yamlWalker {
	return &yamlWalker{active: make(map[*yaml.Node]bool)}
}

// Decode implements [Decoder].
func (YAML) Decode(data []byte) (models.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	acc := models.Null()
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Value{}, wrap("yaml", err)
		}

		v, err := newYAMLWalker().fromYAML(&doc)
		if err != nil {
			return models.Value{}, err
		}
		v, err = requireMap(v, "yaml")
		if err != nil {
			return models.Value{}, err
		}
		acc = merge.Merge(acc, v)
	}

	return requireMap(acc, "yaml")
}

// YAMLValue decodes the first document of data into a Value of any kind.
// Empty input yields Null.
func YAMLValue(data []byte) (models.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return models.Value{}, wrap("yaml", err)
	}
	if doc.Kind == 0 {
		return models.Null(), nil
	}
	return newYAMLWalker().fromYAML(&doc)
}

func (w *yamlWalker) fromYAML(n *yaml.Node) (models.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return models.Null(), nil
		}
		return w.fromYAML(n.Content[0])
	case yaml.AliasNode:
		return w.fromAlias(n)
	case yaml.SequenceNode:
		items := make([]models.Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := w.fromYAML(child)
			if err != nil {
				return models.Value{}, err
			}
			items = append(items, item)
		}
		return models.List(items...), nil
	case yaml.MappingNode:
		return w.fromYAMLMapping(n)
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}

	return models.Value{}, errorf("yaml: line %d: unsupported node", n.Line)
}

func (w *yamlWalker) fromAlias(n *yaml.Node) (models.Value, error) {
	target := n.Alias
	if target == nil {
		return models.Value{}, errorf("yaml: line %d: alias %q has no anchor", n.Line, n.Value)
	}
	if w.active[target] {
		return models.Value{}, errorf("yaml: line %d: alias %q refers to itself", n.Line, n.Value)
	}
	w.expansions++
	if w.expansions > maxAliasExpansions {
		return models.Value{}, errorf("yaml: line %d: document expands more than %d aliases", n.Line, maxAliasExpansions)
	}

	w.active[target] = true
	defer delete(w.active, target)
	return w.fromYAML(target)
}

func (w *yamlWalker) fromYAMLMapping(n *yaml.Node) (models.Value, error) {
	m := models.NewMap()
	inherited := models.Null()

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]

		value, err := w.fromYAML(valueNode)
		if err != nil {
			return models.Value{}, err
		}

		if keyNode.ShortTag() == "!!merge" {
			// "<<: *base" or "<<: [*a, *b]"; explicit keys win
			if items, ok := value.AsList(); ok {
				for _, item := range items {
					inherited = merge.Merge(inherited, item)
				}
			} else {
				inherited = merge.Merge(inherited, value)
			}
			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return models.Value{}, errorf("yaml: line %d: map keys must be scalars", keyNode.Line)
		}
		m.Set(keyNode.Value, value)
	}

	if inherited.IsNull() {
		return models.MapOf(m), nil
	}
	if !inherited.IsMap() {
		return models.Value{}, errorf("yaml: line %d: merge key requires maps", n.Line)
	}
	return merge.Merge(inherited, models.MapOf(m)), nil
}

func fromYAMLScalar(n *yaml.Node) (models.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return models.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return models.Value{}, wrap("yaml", err)
		}
		return models.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			var f float64
			if ferr := n.Decode(&f); ferr != nil {
				return models.Value{}, wrap("yaml", err)
			}
			return models.Float(f), nil
		}
		return models.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return models.Value{}, wrap("yaml", err)
		}
		return models.Float(f), nil
	default:
		return models.String(n.Value), nil
	}
}
