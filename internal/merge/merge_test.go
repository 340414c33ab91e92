// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package merge

import (
	"testing"

	"github.com/MKhiriev/go-configtpl/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x any) models.Value {
	return models.MustFromAny(x)
}

func overridesOf(entries ...models.Entry) *models.Map {
	return models.NewMapFrom(entries...)
}

// ── Merge ─────────────────────────────────────────────────────────────────────

// TestMerge_Maps verifies key-wise recursive merge of maps.
func TestMerge_Maps(t *testing.T) {
	base := v(map[string]any{
		"first_one":  123,
		"shared_two": map[string]any{"first_two_one": nil},
	})
	overlay := v(map[string]any{
		"second_one": "Hello",
		"shared_two": map[string]any{"second_two_one": true},
	})

	got := Merge(base, overlay)

	want := v(map[string]any{
		"first_one":  123,
		"second_one": "Hello",
		"shared_two": map[string]any{"first_two_one": nil, "second_two_one": true},
	})
	assert.True(t, want.Equal(got), "got %s", got)
}

// TestMerge_OverlayReplaces verifies wholesale replacement for every
// non-map pairing.
func TestMerge_OverlayReplaces(t *testing.T) {
	tests := []struct {
		name    string
		base    models.Value
		overlay models.Value
	}{
		{"scalar over scalar", models.Int(1), models.String("x")},
		{"scalar over map", v(map[string]any{"a": 1}), models.Int(2)},
		{"map over scalar", models.Int(2), v(map[string]any{"a": 1})},
		{"list over list", v([]any{1, 2}), v([]any{3})},
		{"list over map", v(map[string]any{"a": 1}), v([]any{3})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.base, tt.overlay)
			assert.True(t, tt.overlay.Equal(got), "got %s", got)
		})
	}
}

// TestMerge_ListsNotConcatenated verifies lists nested in maps are replaced.
func TestMerge_ListsNotConcatenated(t *testing.T) {
	got := Merge(
		v(map[string]any{"hosts": []any{"a", "b"}}),
		v(map[string]any{"hosts": []any{"c"}}),
	)

	assert.True(t, v(map[string]any{"hosts": []any{"c"}}).Equal(got))
}

// TestMerge_Identity verifies that Null and empty-map overlays return base.
func TestMerge_Identity(t *testing.T) {
	bases := []models.Value{
		v(map[string]any{"a": 1, "b": map[string]any{"c": []any{1}}}),
		models.Int(7),
		models.EmptyMap(),
	}

	for _, base := range bases {
		assert.True(t, base.Equal(Merge(base, models.Null())), "null overlay on %s", base)
		if base.IsMap() {
			assert.True(t, base.Equal(Merge(base, models.EmptyMap())), "empty overlay on %s", base)
		}
	}
}

// TestMerge_NotCommutative guards against a merge that ignores order.
func TestMerge_NotCommutative(t *testing.T) {
	a := v(map[string]any{"k": 1})
	b := v(map[string]any{"k": 2})

	assert.False(t, Merge(a, b).Equal(Merge(b, a)))
	assert.True(t, b.Equal(Merge(a, b)))
}

// TestMerge_PreservesOrder verifies base order first, then new overlay keys.
func TestMerge_PreservesOrder(t *testing.T) {
	base := models.MapOf(models.NewMapFrom(
		models.Entry{Name: "z", Value: models.Int(1)},
		models.Entry{Name: "a", Value: models.Int(2)},
	))
	overlay := models.MapOf(models.NewMapFrom(
		models.Entry{Name: "m", Value: models.Int(3)},
		models.Entry{Name: "z", Value: models.Int(4)},
	))

	got, ok := Merge(base, overlay).AsMap()
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, got.Keys())
}

// TestMerge_DoesNotMutateInputs verifies that results are fresh trees.
func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := v(map[string]any{"a": map[string]any{"b": 1}})
	overlay := v(map[string]any{"a": map[string]any{"c": 2}})
	baseCopy, overlayCopy := base.Clone(), overlay.Clone()

	got := Merge(base, overlay)
	m, _ := got.AsMap()
	inner, _ := m.Get("a")
	innerMap, _ := inner.AsMap()
	innerMap.Set("b", models.Int(100))

	assert.True(t, baseCopy.Equal(base))
	assert.True(t, overlayCopy.Equal(overlay))
}

// TestFold verifies left-to-right precedence across many sources.
func TestFold(t *testing.T) {
	got := Fold(
		v(map[string]any{"a": 1}),
		v(map[string]any{"a": 2, "b": 3}),
		models.Null(),
		v(map[string]any{"c": 4}),
	)

	assert.True(t, v(map[string]any{"a": 2, "b": 3, "c": 4}).Equal(got), "got %s", got)
	assert.True(t, models.EmptyMap().Equal(Fold()))
}

// ── ApplyOverrides ────────────────────────────────────────────────────────────

// TestApplyOverrides_ReadBack verifies every override reads back exactly,
// whatever the base held.
func TestApplyOverrides_ReadBack(t *testing.T) {
	base := v(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1, "keep": true}},
		"x": []any{1, 2},
		"s": "scalar",
	})
	overrides := overridesOf(
		models.Entry{Name: "a.b.c", Value: v(map[string]any{"deep": "map"})},
		models.Entry{Name: "x", Value: models.String("replaced list")},
		models.Entry{Name: "s", Value: v(map[string]any{"now": "map"})},
		models.Entry{Name: "new.branch.leaf", Value: models.Int(9)},
		models.Entry{Name: "nil", Value: models.Null()},
	)

	got, err := ApplyOverrides(base, overrides)
	require.NoError(t, err)

	for _, e := range overrides.Entries() {
		read, ok := GetPath(got, e.Name)
		require.True(t, ok, e.Name)
		assert.True(t, e.Value.Equal(read), "%s: got %s", e.Name, read)
	}

	keep, ok := GetPath(got, "a.b.keep")
	require.True(t, ok)
	assert.True(t, models.Bool(true).Equal(keep))
}

// TestApplyOverrides_InvalidPath verifies traversal through non-maps fails.
func TestApplyOverrides_InvalidPath(t *testing.T) {
	base := v(map[string]any{"a": "scalar", "l": []any{1}})

	tests := []string{"a.b", "l.0", "", "a..b", ".a"}
	for _, key := range tests {
		_, err := ApplyOverrides(base, overridesOf(models.Entry{Name: key, Value: models.Int(1)}))
		assert.ErrorIs(t, err, ErrInvalidOverridePath, key)
	}
}

// TestApplyOverrides_DoesNotMutateBase verifies the base tree is untouched.
func TestApplyOverrides_DoesNotMutateBase(t *testing.T) {
	base := v(map[string]any{"a": map[string]any{"b": 1}})
	before := base.Clone()

	_, err := ApplyOverrides(base, overridesOf(models.Entry{Name: "a.b", Value: models.Int(2)}))
	require.NoError(t, err)
	assert.True(t, before.Equal(base))
}

// TestApplyOverrides_EndToEnd verifies defaults, a file and overrides
// folded in precedence order.
func TestApplyOverrides_EndToEnd(t *testing.T) {
	acc := Fold(v(map[string]any{"a": 1}), v(map[string]any{"a": 2, "b": 3}))

	got, err := ApplyOverrides(acc, overridesOf(models.Entry{Name: "b", Value: models.Int(99)}))
	require.NoError(t, err)

	assert.True(t, v(map[string]any{"a": 2, "b": 99}).Equal(got), "got %s", got)
}
