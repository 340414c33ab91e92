// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "settings.json")

	jsonBody := `{
		"build": {
			"paths": ["base.yaml", "prod.yaml"],
			"env_prefix": "MY_APP",
			"defaults_file": "defaults.yaml",
			"context_files": ["ctx.yaml"],
			"context": ["env=prod"],
			"set": ["db.port=5432"]
		},
		"output": { "format": "json", "query": "db" },
		"log": { "level": "info", "format": "json" }
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"base.yaml", "prod.yaml"}, cfg.Build.Paths)
	assert.Equal(t, "MY_APP", cfg.Build.EnvPrefix)
	assert.Equal(t, "defaults.yaml", cfg.Build.DefaultsFile)
	assert.Equal(t, []string{"ctx.yaml"}, cfg.Build.ContextFiles)
	assert.Equal(t, []string{"env=prod"}, cfg.Build.Context)
	assert.Equal(t, []string{"db.port=5432"}, cfg.Build.Overrides)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "db", cfg.Output.Query)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte("{not valid json"), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

// TestParseJSON_UnknownField verifies misspelt settings are reported.
func TestParseJSON_UnknownField(t *testing.T) {
	p := filepath.Join(t.TempDir(), "typo.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"output": {"fromat": "json"}}`), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(p, []byte(`{}`), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}
