// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import "errors"

// ErrQueryNotFound indicates that --query names no node of the built tree.
var ErrQueryNotFound = errors.New("query matched nothing")
