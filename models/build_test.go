// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgs_Builders(t *testing.T) {
	paths := []string{"a.yaml"}
	over := NewMap()
	args := BuildArgs{}.
		WithEnvVarsPrefix("APP").
		WithContext(EmptyMap()).
		WithDefaults(Int(1)).
		WithOverrides(over).
		WithPaths(paths...)

	assert.Equal(t, "APP", args.EnvVarsPrefix)
	assert.True(t, args.Context.IsMap())
	assert.Equal(t, Int(1), args.Defaults)
	assert.Same(t, over, args.Overrides)
	assert.Equal(t, []string{"a.yaml"}, args.Paths)

	paths[0] = "changed"
	assert.Equal(t, []string{"a.yaml"}, args.Paths)
}

func TestBuildArgs_WithPathsSeparated(t *testing.T) {
	sep := string(os.PathListSeparator)
	args := BuildArgs{}.WithPathsSeparated(strings.Join([]string{"a.yaml", "", "b.yaml"}, sep))
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, args.Paths)

	assert.Nil(t, BuildArgs{}.WithPathsSeparated("").Paths)
}

func TestBuildStatus_String(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "invalid handle", StatusErrorInvalidHandle.String())
	assert.Equal(t, "error building", StatusErrorBuilding.String())
	assert.Equal(t, "unknown error", StatusErrorUnknown.String())
	assert.Equal(t, "unknown error", BuildStatus(7).String())
}

func TestBuildResult_OK(t *testing.T) {
	assert.True(t, BuildResult{Status: StatusSuccess}.OK())
	assert.False(t, BuildResult{Status: StatusErrorBuilding}.OK())
}

func TestSpan(t *testing.T) {
	s := Span{Line: 1, Start: 2, End: 14}
	assert.Equal(t, 12, s.Width())
	assert.Equal(t, "1:2-14", s.String())
}

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("v1", "2026-01-01", "abc")
	assert.Equal(t, "v1", info.BuildVersion())
	assert.Equal(t, "2026-01-01", info.BuildDate())
	assert.Equal(t, "abc", info.BuildCommit())
}
