// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package merge combines configuration trees.
//
// Maps merge key by key, recursively. Every other pairing is decided by the
// overlay: it replaces the base wholesale, lists included. A Null overlay is
// the identity, so absent sources and empty keys leave the base untouched.
//
// Results are always fresh trees; inputs are never modified.
package merge

import "github.com/MKhiriev/go-configtpl/models"

// Merge returns overlay merged on top of base.
func Merge(base, overlay models.Value) models.Value {
	if overlay.IsNull() {
		return base.Clone()
	}

	baseMap, baseIsMap := base.AsMap()
	overlayMap, overlayIsMap := overlay.AsMap()
	if !baseIsMap || !overlayIsMap {
		return overlay.Clone()
	}

	return models.MapOf(mergeMaps(baseMap, overlayMap))
}

func mergeMaps(base, overlay *models.Map) *models.Map {
	out := models.NewMap()
	for _, e := range base.Entries() {
		if ov, ok := overlay.Get(e.Name); ok {
			out.Set(e.Name, Merge(e.Value, ov))
			continue
		}
		out.Set(e.Name, e.Value.Clone())
	}

	for _, e := range overlay.Entries() {
		if !base.Has(e.Name) {
			out.Set(e.Name, e.Value.Clone())
		}
	}

	return out
}

// Fold merges values left to right, each overlaying the accumulated result.
// With no values it returns an empty map.
func Fold(values ...models.Value) models.Value {
	acc := models.EmptyMap()
	for _, v := range values {
		acc = Merge(acc, v)
	}
	return acc
}
