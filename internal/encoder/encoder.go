// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package encoder writes a resolved configuration tree in one of the output
// formats of the CLI. Map entries are written in tree order.
package encoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-configtpl/models"
)

// Output format names.
const (
	FormatYAML  = "yaml"
	FormatJSON  = "json"
	FormatPairs = "pairs"
)

// ErrUnknownFormat is returned by ForFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// Encoder writes v to w.
type Encoder func(w io.Writer, v models.Value) error

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatYAML, FormatJSON, FormatPairs}
}

// ForFormat returns the encoder for name.
func ForFormat(name string) (Encoder, error) {
	switch name {
	case FormatYAML:
		return YAML, nil
	case FormatJSON:
		return func(w io.Writer, v models.Value) error { return JSON(w, v, "  ") }, nil
	case FormatPairs:
		return Pairs, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// YAML writes v as a YAML document with two-space indentation.
func YAML(w io.Writer, v models.Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(v)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func toNode(v models.Value) *yaml.Node {
	switch v.Kind() {
	case models.KindMap:
		m, _ := v.AsMap()
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range m.Entries() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
				toNode(e.Value))
		}
		return n
	case models.KindList:
		items, _ := v.AsList()
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	case models.KindBool:
		text, _ := v.Text()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: text}
	case models.KindInt:
		text, _ := v.Text()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: text}
	case models.KindFloat:
		f, _ := v.AsFloat()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(f)}
	case models.KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	text, _ := models.Float(f).Text()
	return text
}

// JSON writes v as JSON followed by a newline. A non-empty indent
// pretty-prints with that indent per level.
func JSON(w io.Writer, v models.Value, indent string) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	if indent != "" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", indent); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		data = buf.Bytes()
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Pairs writes one key=value line per scalar leaf of v.
func Pairs(w io.Writer, v models.Value) error {
	for _, kv := range models.Flatten(v) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return nil
}
