// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ingest turns prefixed process environment variables into a nested
// configuration fragment.
//
// With prefix "MY_APP", the variable MY_APP_SUB_KEY=5 becomes
// {sub: {key: "5"}}. Values are never type-converted; they stay strings
// until a later merge replaces or keeps them.
package ingest

import (
	"os"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/MKhiriev/go-configtpl/models"
)

// Separator splits variable names into key path segments.
const Separator = "_"

// Ingestor reads a snapshot of environment variables.
type Ingestor struct {
	environ func() []string
}

// New returns an Ingestor that reads the process environment.
func New() *Ingestor {
	return &Ingestor{environ: os.Environ}
}

// NewWithEnviron returns an Ingestor reading from environ instead of the
// process environment. environ is called once per Ingest.
func NewWithEnviron(environ func() []string) *Ingestor {
	if environ == nil {
		environ = os.Environ
	}
	return &Ingestor{environ: environ}
}

// Ingest returns the fragment built from variables whose names start with
// prefix. An empty prefix or no matching variables yield an empty map.
func (in *Ingestor) Ingest(prefix string) models.Value {
	out := models.NewMap()
	if prefix == "" {
		return models.MapOf(out)
	}

	vars := env.ToMap(in.environ())
	names := make([]string, 0, len(vars))
	for name := range vars {
		if matches(name, prefix) {
			names = append(names, name)
		}
	}
	// sorted so that "P_A" is placed before "P_A_B" and the result is stable
	sort.Strings(names)

	for _, name := range names {
		path := KeyPath(strings.TrimPrefix(name, prefix))
		if len(path) == 0 {
			continue
		}
		set(out, path, models.String(vars[name]))
	}

	return models.MapOf(out)
}

// matches reports whether name starts with prefix at a segment boundary, so
// prefix "APP" selects APP_PORT but not APPLE.
func matches(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := name[len(prefix):]
	return strings.HasSuffix(prefix, Separator) || strings.HasPrefix(rest, Separator)
}

// KeyPath splits the remainder of a variable name into lower-cased key
// segments. Empty segments are dropped.
func KeyPath(rest string) []string {
	parts := strings.Split(rest, Separator)
	path := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		path = append(path, strings.ToLower(p))
	}
	return path
}

// set stores v at path, creating maps along the way. A scalar found where a
// map is needed is replaced by a map.
func set(m *models.Map, path []string, v models.Value) {
	cur := m
	for _, seg := range path[:len(path)-1] {
		next, ok := cur.Get(seg)
		nextMap, isMap := next.AsMap()
		if !ok || !isMap {
			nextMap = models.NewMap()
			cur.Set(seg, models.MapOf(nextMap))
		}
		cur = nextMap
	}

	leaf := path[len(path)-1]
	if existing, ok := cur.Get(leaf); ok && existing.IsMap() {
		// a deeper variable already claimed this key
		return
	}
	cur.Set(leaf, v)
}
