// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package builder

import "errors"

// ErrInvalidHandle is returned by every operation on a released session.
var ErrInvalidHandle = errors.New("invalid handle: session is released")
