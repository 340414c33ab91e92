// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import (
	"errors"
	"fmt"
)

// ErrDecode wraps every failure to decode file contents.
var ErrDecode = errors.New("decode error")

func errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDecode, fmt.Sprintf(format, args...))
}

func wrap(format string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDecode, format, err)
}
