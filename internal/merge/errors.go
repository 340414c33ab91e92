// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package merge

import "errors"

// ErrInvalidOverridePath indicates an override key that is malformed or
// steps through a value that is not a map.
var ErrInvalidOverridePath = errors.New("invalid override path")
