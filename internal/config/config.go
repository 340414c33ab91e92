// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// StructuredConfig is the top-level settings container of the configtpl
// CLI. It is populated by merging defaults, environment variables, an
// optional JSON settings file and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
//
// Every variable name is additionally prefixed with [EnvPrefix].
type StructuredConfig struct {
	// Build holds the inputs of the configuration build.
	Build Build `envPrefix:"BUILD_" json:"build"`

	// Output selects how the resolved tree is written.
	Output Output `envPrefix:"OUTPUT_" json:"output"`

	// Log controls diagnostic logging on stderr.
	Log Log `envPrefix:"LOG_" json:"log"`

	// SettingsFile is the optional path to a JSON settings file.
	// Env: CONFIGTPL_SETTINGS, flag: --settings.
	SettingsFile string `env:"SETTINGS" json:"-"`

	// ShowVersion prints build information and exits. Flag only.
	ShowVersion bool `json:"-"`
}

// Build holds the inputs handed to the configuration builder.
type Build struct {
	// Paths lists configuration files in increasing precedence.
	// Env: CONFIGTPL_BUILD_PATHS, separated by the OS path list separator.
	Paths []string `json:"paths"`

	// PathList is the raw form of Paths read from the environment.
	PathList string `env:"PATHS" json:"-"`

	// EnvPrefix selects environment variables merged above the files.
	// Env: CONFIGTPL_BUILD_ENV_PREFIX
	EnvPrefix string `env:"ENV_PREFIX" json:"env_prefix"`

	// DefaultsFile is a configuration file used as the lowest-precedence
	// source.
	// Env: CONFIGTPL_BUILD_DEFAULTS
	DefaultsFile string `env:"DEFAULTS" json:"defaults_file"`

	// ContextFiles are decoded and merged into the render-only context.
	// Env: CONFIGTPL_BUILD_CONTEXT_FILES, comma separated.
	ContextFiles []string `env:"CONTEXT_FILES" envSeparator:"," json:"context_files"`

	// Context holds key=value context entries; keys may be dotted.
	// Env: CONFIGTPL_BUILD_CONTEXT, comma separated.
	Context []string `env:"CONTEXT" envSeparator:"," json:"context"`

	// Overrides holds key=value overrides applied last.
	// Env: CONFIGTPL_BUILD_SET, comma separated.
	Overrides []string `env:"SET" envSeparator:"," json:"set"`
}

// Output selects the encoder for the resolved configuration.
type Output struct {
	// Format is one of "yaml", "json" or "pairs".
	// Env: CONFIGTPL_OUTPUT_FORMAT
	Format string `env:"FORMAT" json:"format"`

	// Query is a dotted key path; when set only that subtree is written.
	// Env: CONFIGTPL_OUTPUT_QUERY
	Query string `env:"QUERY" json:"query"`
}

// Log controls the CLI logger.
type Log struct {
	// Level is a zerolog level name such as "debug" or "warn".
	// Env: CONFIGTPL_LOG_LEVEL
	Level string `env:"LEVEL" json:"level"`

	// Format is "console" for readable lines or "json" for one object per
	// entry. Env: CONFIGTPL_LOG_FORMAT
	Format string `env:"FORMAT" json:"format"`
}

// Defaults applied before any other source.
const (
	DefaultOutputFormat = "yaml"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = LogFormatConsole
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Output: Output{Format: DefaultOutputFormat},
		Log:    Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// GetStructuredConfig loads, merges, and validates the CLI settings from
// all available sources in the following priority order (later sources
// win for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. JSON settings file (path from the flags, else from the environment)
//  4. Command-line flags, parsed from args
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation. A request for help
// returns [pflag.ErrHelp].
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	flagsCfg, err := ParseFlags(args)
	if err != nil {
		return nil, err
	}

	return newConfigBuilder().
		withDefaults().
		withEnv().
		withJSON(flagsCfg.SettingsFile).
		withFlags(flagsCfg).
		build()
}
