// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import "errors"

var (
	ErrNotInitialized = errors.New("registry is not initialized")
	ErrSessionsAlive  = errors.New("registry still owns live sessions")
)
