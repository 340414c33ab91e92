// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package template implements the expression language embedded in
// configuration string values.
//
// A template is literal text interleaved with "${...}" regions. A region
// holds a dotted variable path, optionally followed by filters:
//
//	host: "${env.host}"
//	url:  "https://${env.host}:${ports.0}/"
//	name: "${user.name | default(\"anonymous\") | upper}"
//
// "$${" produces a literal "${". Regions may not span lines.
//
// Every node records a [models.Span] with its line and character columns,
// and every failure is an *[Error] pointing at the offending characters, so
// callers can print an underlined excerpt of exactly the failing token.
package template
