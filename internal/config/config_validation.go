// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-configtpl/internal/encoder"
	"github.com/MKhiriev/go-configtpl/internal/merge"
)

// validate checks that the final merged [StructuredConfig] can drive a
// build. A version request skips the input check.
//
// Returns nil if the configuration is valid, or the joined validation
// errors otherwise.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if !slices.Contains(encoder.Formats(), cfg.Output.Format) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidOutputFormat, cfg.Output.Format))
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil || cfg.Log.Level == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level))
	}

	if cfg.Log.Format != LogFormatConsole && cfg.Log.Format != LogFormatJSON {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogFormat, cfg.Log.Format))
	}

	if cfg.Output.Query != "" {
		if _, err := merge.SplitPath(cfg.Output.Query); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidQuery, err))
		}
	}

	if !cfg.ShowVersion && !cfg.Build.hasInput() {
		errs = append(errs, ErrNoInput)
	}

	for _, kv := range cfg.Build.Context {
		if _, _, err := ParseAssignment(kv); err != nil {
			errs = append(errs, err)
		}
	}
	for _, kv := range cfg.Build.Overrides {
		if _, _, err := ParseAssignment(kv); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (b Build) hasInput() bool {
	return len(b.Paths) > 0 || b.DefaultsFile != "" || b.EnvPrefix != "" || len(b.Overrides) > 0
}
