// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli wires the configtpl command: it turns the merged CLI
// settings into a build session, runs it through the session registry and
// writes the resolved configuration in the requested format.
//
// Exit codes returned by [Main]:
//
//	0  success, help or version output
//	1  the build failed
//	2  invalid settings or flags
package cli
