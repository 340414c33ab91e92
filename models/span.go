// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Span identifies a contiguous run of characters on one line of a source
// text. Line is 1-based; Start and End are 0-based character (rune) columns
// with End exclusive.
type Span struct {
	Line  int `json:"line"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Width returns the number of characters covered by s.
func (s Span) Width() int {
	return s.End - s.Start
}

// String formats s as "line:start-end".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Line, s.Start, s.End)
}
