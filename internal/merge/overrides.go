// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package merge

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-configtpl/models"
)

// PathSeparator separates segments of an override key.
const PathSeparator = "."

// ApplyOverrides returns a copy of tree with every override applied in
// order. Each key is a dotted path; missing intermediate maps are created
// and the target is replaced by the override value as is. A path that
// steps through a non-map fails with ErrInvalidOverridePath.
//
// A non-map tree is treated as an empty map.
func ApplyOverrides(tree models.Value, overrides *models.Map) (models.Value, error) {
	root, ok := tree.AsMap()
	if ok {
		root = root.Clone()
	} else {
		root = models.NewMap()
	}

	for _, e := range overrides.Entries() {
		if err := SetPath(root, e.Name, e.Value.Clone()); err != nil {
			return models.Value{}, err
		}
	}

	return models.MapOf(root), nil
}

// SetPath stores v at the dotted path key inside root.
func SetPath(root *models.Map, key string, v models.Value) error {
	segments, err := SplitPath(key)
	if err != nil {
		return err
	}

	cur := root
	for i, seg := range segments[:len(segments)-1] {
		next, ok := cur.Get(seg)
		if !ok {
			child := models.NewMap()
			cur.Set(seg, models.MapOf(child))
			cur = child
			continue
		}

		child, isMap := next.AsMap()
		if !isMap {
			return fmt.Errorf("%w: %q: %q is a %s",
				ErrInvalidOverridePath, key, strings.Join(segments[:i+1], PathSeparator), next.Kind())
		}
		cur = child
	}

	cur.Set(segments[len(segments)-1], v)
	return nil
}

// GetPath reads the value at the dotted path key.
func GetPath(tree models.Value, key string) (models.Value, bool) {
	segments, err := SplitPath(key)
	if err != nil {
		return models.Value{}, false
	}

	cur := tree
	for _, seg := range segments {
		m, ok := cur.AsMap()
		if !ok {
			return models.Value{}, false
		}
		cur, ok = m.Get(seg)
		if !ok {
			return models.Value{}, false
		}
	}
	return cur, true
}

// SplitPath splits a dotted key into segments. Empty keys and empty
// segments are rejected with ErrInvalidOverridePath.
func SplitPath(key string) ([]string, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidOverridePath)
	}
	segments := strings.Split(key, PathSeparator)
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidOverridePath, key)
		}
	}
	return segments, nil
}
