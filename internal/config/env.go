// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/MKhiriev/go-configtpl/models"
)

// EnvPrefix is prepended to every settings variable name.
const EnvPrefix = "CONFIGTPL_"

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types, under [EnvPrefix].
//
// Returns a wrapped error if env.ParseWithOptions fails (e.g. a value
// cannot be converted to the target type).
func parseEnv(cfg *StructuredConfig) error {
	err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.Build.PathList != "" {
		cfg.Build.Paths = models.BuildArgs{}.WithPathsSeparated(cfg.Build.PathList).Paths
		cfg.Build.PathList = ""
	}

	return nil
}
