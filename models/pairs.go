// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strconv"

// KeyValue is one flattened configuration entry.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Flatten walks v depth-first and returns one pair per scalar leaf. Map
// members are joined with ".", list items are addressed as "[i]". Empty
// lists and maps produce no pairs. A scalar root yields a single pair with
// an empty key.
func Flatten(v Value) []KeyValue {
	var out []KeyValue
	flatten(v, "", &out)
	return out
}

func flatten(v Value, prefix string, out *[]KeyValue) {
	switch v.Kind() {
	case KindMap:
		m, _ := v.AsMap()
		for _, e := range m.Entries() {
			key := e.Name
			if prefix != "" {
				key = prefix + "." + e.Name
			}
			flatten(e.Value, key, out)
		}
	case KindList:
		items, _ := v.AsList()
		for i, item := range items {
			flatten(item, prefix+"["+strconv.Itoa(i)+"]", out)
		}
	default:
		text, _ := v.Text()
		*out = append(*out, KeyValue{Key: prefix, Value: text})
	}
}
