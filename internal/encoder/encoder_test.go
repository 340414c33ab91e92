// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package encoder

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-configtpl/internal/decoder"
	"github.com/MKhiriev/go-configtpl/models"
)

func sample() models.Value {
	db := models.NewMap()
	db.Set("port", models.Int(5432))
	db.Set("host", models.String("localhost"))

	m := models.NewMap()
	m.Set("name", models.String("app"))
	m.Set("db", models.MapOf(db))
	m.Set("ratio", models.Float(2))
	m.Set("debug", models.Bool(false))
	m.Set("tags", models.List(models.String("a"), models.String("42")))
	m.Set("none", models.Null())
	return models.MapOf(m)
}

// ── YAML ──────────────────────────────────────────────────────────────────────

// TestYAML_PreservesOrderAndTypes verifies key order and that numeric-looking
// strings stay strings.
func TestYAML_PreservesOrderAndTypes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, sample()))

	want := `name: app
db:
  port: 5432
  host: localhost
ratio: 2.0
debug: false
tags:
  - a
  - "42"
none: null
`
	assert.Equal(t, want, buf.String())
}

// TestYAML_RoundTrip verifies the YAML decoder reads back an equal tree.
func TestYAML_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, sample()))

	got, err := decoder.YAML{}.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, sample().Equal(got), "got %s", got)
}

// TestYAML_SpecialFloats verifies infinities and NaN use YAML spelling.
func TestYAML_SpecialFloats(t *testing.T) {
	m := models.NewMap()
	m.Set("inf", models.Float(math.Inf(1)))
	m.Set("nan", models.Float(math.NaN()))

	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, models.MapOf(m)))
	assert.Equal(t, "inf: .inf\nnan: .nan\n", buf.String())
}

// ── JSON ──────────────────────────────────────────────────────────────────────

// TestJSON_Compact verifies ordered compact output.
func TestJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sample(), ""))
	assert.Equal(t,
		`{"name":"app","db":{"port":5432,"host":"localhost"},"ratio":2,"debug":false,"tags":["a","42"],"none":null}`+"\n",
		buf.String())
}

// TestJSON_Indented verifies pretty-printing.
func TestJSON_Indented(t *testing.T) {
	m := models.NewMap()
	m.Set("a", models.List(models.Int(1)))

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, models.MapOf(m), "  "))
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}\n", buf.String())
}

// ── Pairs ─────────────────────────────────────────────────────────────────────

// TestPairs verifies dotted and indexed keys with canonical text values.
func TestPairs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pairs(&buf, sample()))

	want := `name=app
db.port=5432
db.host=localhost
ratio=2.0
debug=false
tags[0]=a
tags[1]=42
none=null
`
	assert.Equal(t, want, buf.String())
}

// ── ForFormat ─────────────────────────────────────────────────────────────────

// TestForFormat verifies every listed format resolves and unknown names fail.
func TestForFormat(t *testing.T) {
	for _, name := range Formats() {
		enc, err := ForFormat(name)
		require.NoError(t, err, name)

		var buf bytes.Buffer
		require.NoError(t, enc(&buf, sample()), name)
		assert.NotEmpty(t, buf.String(), name)
	}

	_, err := ForFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
