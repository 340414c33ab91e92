// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and the
// assignment parser.
var (
	// ErrInvalidOutputFormat indicates an output format no encoder handles.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidLogLevel indicates a level name zerolog does not know.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat indicates a log format other than console or json.
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidQuery indicates an output query that is not a dotted path.
	ErrInvalidQuery = errors.New("invalid output query")
	// ErrNoInput indicates a build with nothing to read: no paths, no
	// defaults file, no environment prefix and no overrides.
	ErrNoInput = errors.New("no configuration input given")
	// ErrInvalidAssignment indicates a --set or --ctx entry that is not of
	// the form key=value.
	ErrInvalidAssignment = errors.New("invalid key=value assignment")
)
