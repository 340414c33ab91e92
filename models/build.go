// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "path/filepath"

// BuildArgs is a single build request.
//
// Context participates in template rendering of every source but is never
// merged into the resulting configuration. Defaults are applied first,
// then each of Paths in order, then environment variables selected by
// EnvVarsPrefix, and Overrides last.
type BuildArgs struct {
	// EnvVarsPrefix selects environment variables to ingest. Empty disables
	// environment ingestion.
	EnvVarsPrefix string
	// Context is the variable scope for templates. Values that are not maps
	// are ignored.
	Context Value
	// Defaults is the lowest-precedence source.
	Defaults Value
	// Paths lists configuration files; later files overlay earlier ones.
	Paths []string
	// Overrides maps dotted key paths to replacement values; applied last.
	Overrides *Map
}

// WithContext returns a copy of a with Context set.
func (a BuildArgs) WithContext(ctx Value) BuildArgs {
	a.Context = ctx
	return a
}

// WithDefaults returns a copy of a with Defaults set.
func (a BuildArgs) WithDefaults(defaults Value) BuildArgs {
	a.Defaults = defaults
	return a
}

// WithOverrides returns a copy of a with Overrides set.
func (a BuildArgs) WithOverrides(overrides *Map) BuildArgs {
	a.Overrides = overrides
	return a
}

// WithEnvVarsPrefix returns a copy of a with EnvVarsPrefix set.
func (a BuildArgs) WithEnvVarsPrefix(prefix string) BuildArgs {
	a.EnvVarsPrefix = prefix
	return a
}

// WithPaths returns a copy of a with Paths set.
func (a BuildArgs) WithPaths(paths ...string) BuildArgs {
	a.Paths = append([]string(nil), paths...)
	return a
}

// WithPathsSeparated returns a copy of a with Paths parsed from a list
// separated by the OS path list separator (':' on Unix, ';' on Windows).
func (a BuildArgs) WithPathsSeparated(list string) BuildArgs {
	var paths []string
	for _, p := range filepath.SplitList(list) {
		if p != "" {
			paths = append(paths, p)
		}
	}
	a.Paths = paths
	return a
}

// BuildStatus is the outcome of a build call at the embedding boundary.
type BuildStatus int

const (
	StatusSuccess BuildStatus = 0
	// StatusErrorInvalidHandle means the session is unknown or released.
	StatusErrorInvalidHandle BuildStatus = 1
	// StatusErrorBuilding means the pipeline failed; see ErrorMsg.
	StatusErrorBuilding BuildStatus = 200
	StatusErrorUnknown  BuildStatus = 255
)

// String returns the status name.
func (s BuildStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusErrorInvalidHandle:
		return "invalid handle"
	case StatusErrorBuilding:
		return "error building"
	default:
		return "unknown error"
	}
}

// BuildResult is returned by the session registry for every build call.
type BuildResult struct {
	Status BuildStatus `json:"status"`
	// Output is the resolved configuration map on success, Null otherwise.
	Output Value `json:"output"`
	// Pairs is Output flattened into key/value strings.
	Pairs []KeyValue `json:"pairs,omitempty"`
	// ErrorMsg describes the failure.
	ErrorMsg string `json:"error_msg,omitempty"`
	// Location points at the failing template characters when known.
	Location *Span `json:"location,omitempty"`
}

// OK reports whether the build succeeded.
func (r BuildResult) OK() bool {
	return r.Status == StatusSuccess
}
