// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package template

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-configtpl/models"
)

// Error kinds. Every *Error unwraps to exactly one of them.
var (
	// ErrParse indicates malformed template syntax.
	ErrParse = errors.New("template parse error")
	// ErrUndefinedVariable indicates a variable path that does not resolve
	// against the render scope.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrType indicates a value that cannot be used where it appears, such
	// as a map interpolated into text.
	ErrType = errors.New("template type error")
)

// Error is a positioned template failure. Span points at the offending
// characters of Source.
type Error struct {
	Kind   error
	Span   models.Span
	Msg    string
	Source string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Span.Line, e.Span.Start+1, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, span models.Span, source string, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Span:   span,
		Msg:    fmt.Sprintf(format, args...),
		Source: source,
	}
}

// AsError returns the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var tplErr *Error
	if errors.As(err, &tplErr) {
		return tplErr, true
	}
	return nil, false
}
