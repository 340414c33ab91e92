// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"io"

	"github.com/spf13/pflag"
)

// newFlagSet binds every settings flag to cfg.
//
// Flags:
//
//	--settings       JSON settings file path
//	-e/--env-prefix  environment prefix to ingest
//	-d/--defaults    defaults configuration file
//	--context-file   context file (repeatable)
//	-c/--ctx         context entry key=value (repeatable)
//	-s/--set         override key=value (repeatable)
//	-o/--output      output format: yaml, json or pairs
//	-q/--query       write only the subtree at a dotted key path
//	--log-level      log level
//	--log-format     log format: console or json
//	--version        print build information
func newFlagSet(cfg *StructuredConfig) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("configtpl", pflag.ContinueOnError)
	flagSet.SortFlags = false
	flagSet.SetOutput(io.Discard)

	flagSet.StringVar(&cfg.SettingsFile, "settings", "", "JSON settings file path")
	flagSet.StringVarP(&cfg.Build.EnvPrefix, "env-prefix", "e", "", "merge environment variables with this prefix")
	flagSet.StringVarP(&cfg.Build.DefaultsFile, "defaults", "d", "", "configuration file used as defaults")
	flagSet.StringArrayVar(&cfg.Build.ContextFiles, "context-file", nil, "file merged into the template context (repeatable)")
	flagSet.StringArrayVarP(&cfg.Build.Context, "ctx", "c", nil, "template context entry `key=value` (repeatable)")
	flagSet.StringArrayVarP(&cfg.Build.Overrides, "set", "s", nil, "override `key=value` applied last (repeatable)")
	flagSet.StringVarP(&cfg.Output.Format, "output", "o", "", "output format: yaml, json or pairs")
	flagSet.StringVarP(&cfg.Output.Query, "query", "q", "", "write only the subtree at this dotted `key`")
	flagSet.StringVar(&cfg.Log.Level, "log-level", "", "log level: debug, info, warn, error")
	flagSet.StringVar(&cfg.Log.Format, "log-format", "", "log format: console or json")
	flagSet.BoolVar(&cfg.ShowVersion, "version", false, "print build information and exit")

	return flagSet
}

// ParseFlags parses args (without the program name). Positional arguments
// become configuration paths. A -h/--help request returns [pflag.ErrHelp].
func ParseFlags(args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	flagSet := newFlagSet(cfg)

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	if paths := flagSet.Args(); len(paths) > 0 {
		cfg.Build.Paths = paths
	}

	return cfg, nil
}

// Usage returns the flag help text.
func Usage() string {
	return newFlagSet(&StructuredConfig{}).FlagUsages()
}
