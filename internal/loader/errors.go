// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import "errors"

var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrIO           = errors.New("cannot read configuration file")
)
