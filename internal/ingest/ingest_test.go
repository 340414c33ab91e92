// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ingest

import (
	"testing"

	"github.com/MKhiriev/go-configtpl/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

// TestIngest_PrefixAndNesting verifies the canonical example: a prefixed
// variable is nested by "_" and unrelated variables are excluded.
func TestIngest_PrefixAndNesting(t *testing.T) {
	in := NewWithEnviron(environ("MY_APP_SUB_KEY=5", "OTHER=1"))

	got := in.Ingest("MY_APP")

	want := models.MustFromAny(map[string]any{"sub": map[string]any{"key": "5"}})
	assert.True(t, want.Equal(got), "got %s", got)
}

// TestIngest_ValuesStayStrings verifies that no type inference happens.
func TestIngest_ValuesStayStrings(t *testing.T) {
	in := NewWithEnviron(environ("APP_PORT=8080", "APP_DEBUG=true", "APP_EMPTY="))

	got := in.Ingest("APP")
	m, ok := got.AsMap()
	require.True(t, ok)

	port, _ := m.Get("port")
	assert.Equal(t, models.KindString, port.Kind())
	debug, _ := m.Get("debug")
	assert.True(t, models.String("true").Equal(debug))
	empty, _ := m.Get("empty")
	assert.True(t, models.String("").Equal(empty))
}

// TestIngest_EmptyPrefix verifies that an absent prefix yields an empty map.
func TestIngest_EmptyPrefix(t *testing.T) {
	in := NewWithEnviron(environ("A_B=1"))

	got := in.Ingest("")

	m, ok := got.AsMap()
	require.True(t, ok)
	assert.Equal(t, 0, m.Len())
}

// TestIngest_NoMatches verifies that no matches yields an empty map, not an
// error.
func TestIngest_NoMatches(t *testing.T) {
	in := NewWithEnviron(environ("OTHER=1"))

	m, ok := in.Ingest("MY_APP").AsMap()
	require.True(t, ok)
	assert.Equal(t, 0, m.Len())
}

// TestIngest_SegmentBoundary verifies that the prefix must end at a
// separator.
func TestIngest_SegmentBoundary(t *testing.T) {
	in := NewWithEnviron(environ("APPLE=1", "APP=2", "APP_X=3"))

	got := in.Ingest("APP")

	want := models.MustFromAny(map[string]any{"x": "3"})
	assert.True(t, want.Equal(got), "got %s", got)
}

// TestIngest_TrailingSeparatorPrefix verifies prefixes given with their
// separator.
func TestIngest_TrailingSeparatorPrefix(t *testing.T) {
	in := NewWithEnviron(environ("APP_DB_HOST=h"))

	got := in.Ingest("APP_")

	want := models.MustFromAny(map[string]any{"db": map[string]any{"host": "h"}})
	assert.True(t, want.Equal(got), "got %s", got)
}

// TestIngest_ScalarThenNested verifies that a deeper variable wins over a
// scalar at the same key, deterministically.
func TestIngest_ScalarThenNested(t *testing.T) {
	in := NewWithEnviron(environ("P_A_B=2", "P_A=1", "P_C__D=3"))

	got := in.Ingest("P")

	want := models.MustFromAny(map[string]any{
		"a": map[string]any{"b": "2"},
		"c": map[string]any{"d": "3"},
	})
	assert.True(t, want.Equal(got), "got %s", got)
}

// TestIngest_ReadsProcessEnvironment verifies the default constructor.
func TestIngest_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("CONFIGTPL_TEST_INGEST_VALUE", "yes")

	got := New().Ingest("CONFIGTPL_TEST_INGEST")

	want := models.MustFromAny(map[string]any{"value": "yes"})
	assert.True(t, want.Equal(got), "got %s", got)
}

// TestKeyPath verifies segment splitting and normalization.
func TestKeyPath(t *testing.T) {
	assert.Equal(t, []string{"sub", "key"}, KeyPath("_SUB_KEY"))
	assert.Equal(t, []string{"a", "b"}, KeyPath("A__B_"))
	assert.Empty(t, KeyPath(""))
}
