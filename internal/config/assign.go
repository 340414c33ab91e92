// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-configtpl/internal/decoder"
	"github.com/MKhiriev/go-configtpl/internal/merge"
	"github.com/MKhiriev/go-configtpl/models"
)

// ParseAssignment splits a key=value entry. The value is read as a YAML
// flow scalar or collection, so "port=8080" yields an Int, "tags=[a, b]" a
// List and "db={host: h}" a Map in the order written. Anything that does
// not parse stays a String.
// The key must be a valid dotted path.
func ParseAssignment(s string) (string, models.Value, error) {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", models.Value{}, fmt.Errorf("%w: %q", ErrInvalidAssignment, s)
	}
	if _, err := merge.SplitPath(key); err != nil {
		return "", models.Value{}, fmt.Errorf("%w: %q: %w", ErrInvalidAssignment, s, err)
	}

	if strings.TrimSpace(raw) == "" {
		return key, models.String(raw), nil
	}
	v, err := decoder.YAMLValue([]byte(raw))
	if err != nil {
		return key, models.String(raw), nil
	}
	return key, v, nil
}

// Assignments parses every entry into a map of dotted keys, in order.
func Assignments(entries []string) (*models.Map, error) {
	m := models.NewMap()
	for _, s := range entries {
		key, v, err := ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	return m, nil
}
