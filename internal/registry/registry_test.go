// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-configtpl/internal/builder"
	"github.com/MKhiriev/go-configtpl/models"
)

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("session-%d", g.n)
}

func newInitialized(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r := New(opts...)
	require.NoError(t, r.Init())
	return r
}

// ── lifecycle ─────────────────────────────────────────────────────────────────

// TestRegistry_BeforeInit verifies every session operation fails before Init.
func TestRegistry_BeforeInit(t *testing.T) {
	r := New()

	_, err := r.NewSession()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, r.Release("x"), ErrNotInitialized)
	assert.ErrorIs(t, r.WithSession("x", func(*builder.Session) error { return nil }), ErrNotInitialized)

	res := r.Build("x", models.BuildArgs{})
	assert.Equal(t, models.StatusErrorUnknown, res.Status)
	assert.Contains(t, res.ErrorMsg, ErrNotInitialized.Error())
}

// TestRegistry_InitTeardownIdempotent verifies repeated calls are harmless.
func TestRegistry_InitTeardownIdempotent(t *testing.T) {
	r := New()
	assert.NoError(t, r.Teardown())
	assert.NoError(t, r.Init())
	assert.NoError(t, r.Init())
	assert.NoError(t, r.Teardown())
	assert.NoError(t, r.Teardown())

	_, err := r.NewSession()
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, r.Init())
	_, err = r.NewSession()
	assert.NoError(t, err)
}

// TestRegistry_TeardownWithLiveSessions verifies teardown refuses while
// sessions are alive and succeeds once they are released.
func TestRegistry_TeardownWithLiveSessions(t *testing.T) {
	r := newInitialized(t)
	id, err := r.NewSession()
	require.NoError(t, err)

	assert.ErrorIs(t, r.Teardown(), ErrSessionsAlive)

	require.NoError(t, r.Release(id))
	assert.NoError(t, r.Teardown())
}

// ── sessions ──────────────────────────────────────────────────────────────────

// TestRegistry_NewSession_UUIDv7 verifies default identifiers are UUIDv7.
func TestRegistry_NewSession_UUIDv7(t *testing.T) {
	r := newInitialized(t)
	id, err := r.NewSession()
	require.NoError(t, err)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, 1, r.Len())
}

// TestRegistry_Build_Success verifies the result carries the tree and pairs.
func TestRegistry_Build_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 2\nb: 3\nl: [x]\n"), 0o600))

	r := newInitialized(t, WithIDGenerator(&sequenceIDs{}))
	id, err := r.NewSession()
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)

	over := models.NewMap()
	over.Set("b", models.Int(99))

	res := r.Build(id, models.BuildArgs{
		Defaults:  models.MustFromAny(map[string]any{"a": 1}),
		Paths:     []string{path},
		Overrides: over,
	})
	require.True(t, res.OK(), res.ErrorMsg)
	assert.True(t, models.MustFromAny(map[string]any{"a": 2, "b": 99, "l": []any{"x"}}).Equal(res.Output))
	assert.Equal(t, []models.KeyValue{
		{Key: "a", Value: "2"},
		{Key: "b", Value: "99"},
		{Key: "l[0]", Value: "x"},
	}, res.Pairs)
	assert.Empty(t, res.ErrorMsg)
	assert.Nil(t, res.Location)
}

// TestRegistry_Build_ErrorBuilding verifies render failures report the
// template location.
func TestRegistry_Build_ErrorBuilding(t *testing.T) {
	r := newInitialized(t)
	id, err := r.NewSession()
	require.NoError(t, err)

	res := r.Build(id, models.BuildArgs{
		Defaults: models.MustFromAny(map[string]any{"a": "${missing.path}"}),
	})
	assert.Equal(t, models.StatusErrorBuilding, res.Status)
	assert.True(t, res.Output.IsNull())
	assert.Contains(t, res.ErrorMsg, `"missing" is not defined`)
	require.NotNil(t, res.Location)
	assert.Equal(t, models.Span{Line: 1, Start: 2, End: 14}, *res.Location)
}

// TestRegistry_Build_FileError verifies non-template failures carry no location.
func TestRegistry_Build_FileError(t *testing.T) {
	r := newInitialized(t)
	id, err := r.NewSession()
	require.NoError(t, err)

	res := r.Build(id, models.BuildArgs{Paths: []string{filepath.Join(t.TempDir(), "absent.yaml")}})
	assert.Equal(t, models.StatusErrorBuilding, res.Status)
	assert.Nil(t, res.Location)
	assert.Contains(t, res.ErrorMsg, "absent.yaml")
}

// TestRegistry_Build_ReleasedSession verifies a released identifier never
// yields a previous result.
func TestRegistry_Build_ReleasedSession(t *testing.T) {
	r := newInitialized(t)
	id, err := r.NewSession()
	require.NoError(t, err)

	args := models.BuildArgs{Defaults: models.MustFromAny(map[string]any{"a": 1})}
	require.True(t, r.Build(id, args).OK())

	require.NoError(t, r.Release(id))
	res := r.Build(id, args)
	assert.Equal(t, models.StatusErrorInvalidHandle, res.Status)
	assert.True(t, res.Output.IsNull())
	assert.Empty(t, res.Pairs)

	assert.ErrorIs(t, r.Release(id), builder.ErrInvalidHandle)
	assert.Equal(t, 0, r.Len())
}

// TestRegistry_Build_UnknownSession verifies unknown identifiers are
// rejected as invalid handles.
func TestRegistry_Build_UnknownSession(t *testing.T) {
	r := newInitialized(t)
	res := r.Build("nope", models.BuildArgs{})
	assert.Equal(t, models.StatusErrorInvalidHandle, res.Status)
}

// TestRegistry_WithSession verifies incremental accumulation through the registry.
func TestRegistry_WithSession(t *testing.T) {
	r := newInitialized(t, WithEnviron(func() []string { return []string{"SVC_PORT=80"} }))
	id, err := r.NewSession()
	require.NoError(t, err)

	require.NoError(t, r.WithSession(id, func(s *builder.Session) error {
		if err := s.SetContextValue("name", models.String("api")); err != nil {
			return err
		}
		if err := s.SetDefaults(models.MustFromAny(map[string]any{"id": "${name}"})); err != nil {
			return err
		}
		return s.SetEnvPrefix("SVC")
	}))

	res := r.Build(id, models.BuildArgs{})
	require.True(t, res.OK(), res.ErrorMsg)
	assert.True(t, models.MustFromAny(map[string]any{"id": "api", "port": "80"}).Equal(res.Output))

	assert.ErrorIs(t, r.WithSession("nope", func(*builder.Session) error { return nil }), builder.ErrInvalidHandle)
}

// TestRegistry_ConcurrentSessions verifies independent sessions build in parallel.
func TestRegistry_ConcurrentSessions(t *testing.T) {
	r := newInitialized(t)

	var wg sync.WaitGroup
	results := make([]models.BuildResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := r.NewSession()
			if err != nil {
				return
			}
			defer r.Release(id) //nolint:errcheck
			results[i] = r.Build(id, models.BuildArgs{
				Context:  models.MustFromAny(map[string]any{"i": i}),
				Defaults: models.MustFromAny(map[string]any{"v": "${i}"}),
			})
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.True(t, res.OK(), res.ErrorMsg)
		assert.True(t, models.MustFromAny(map[string]any{"v": i}).Equal(res.Output))
	}
	assert.Equal(t, 0, r.Len())
	assert.NoError(t, r.Teardown())
}

// TestUUIDGenerator_Unique verifies generated identifiers do not repeat.
func TestUUIDGenerator_Unique(t *testing.T) {
	g := NewUUIDGenerator()
	seen := make(map[string]struct{})
	for range 100 {
		id := g.Generate()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
