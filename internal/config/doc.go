// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides settings loading, merging, and validation for
// the configtpl command.
//
// Settings are assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables prefixed with CONFIGTPL_
//  3. JSON settings file
//  4. Command-line flags
//
// The main entry point is [GetStructuredConfig].
package config
