// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-configtpl/internal/builder"
	"github.com/MKhiriev/go-configtpl/internal/config"
	"github.com/MKhiriev/go-configtpl/internal/decoder"
	"github.com/MKhiriev/go-configtpl/internal/diagnostic"
	"github.com/MKhiriev/go-configtpl/internal/encoder"
	"github.com/MKhiriev/go-configtpl/internal/logger"
	"github.com/MKhiriev/go-configtpl/internal/merge"
	"github.com/MKhiriev/go-configtpl/internal/registry"
	"github.com/MKhiriev/go-configtpl/models"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitBuild    = 1
	ExitSettings = 2
)

// App runs one build described by a validated [config.StructuredConfig].
type App struct {
	cfg      *config.StructuredConfig
	registry *registry.Registry
	encode   encoder.Encoder
	stdout   io.Writer
	log      *logger.Logger
	readFile func(string) ([]byte, error)
}

// NewApp prepares an App writing the result to stdout.
func NewApp(cfg *config.StructuredConfig, stdout io.Writer, log *logger.Logger) (*App, error) {
	encode, err := encoder.ForFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		registry: registry.New(registry.WithLogger(log)),
		encode:   encode,
		stdout:   stdout,
		log:      log,
		readFile: os.ReadFile,
	}, nil
}

// Run builds the configuration and writes it. The registry is torn down
// before Run returns, whatever the outcome.
func (a *App) Run() (err error) {
	if err = a.registry.Init(); err != nil {
		return fmt.Errorf("init registry: %w", err)
	}
	defer func() {
		err = errors.Join(err, a.registry.Teardown())
	}()

	id, err := a.registry.NewSession()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer func() {
		err = errors.Join(err, a.registry.Release(id))
	}()

	if err = a.registry.WithSession(id, a.accumulate); err != nil {
		return err
	}

	ctx, err := a.context()
	if err != nil {
		return err
	}

	var tree models.Value
	err = a.registry.WithSession(id, func(s *builder.Session) error {
		var buildErr error
		tree, buildErr = s.Build(models.BuildArgs{Context: ctx})
		return buildErr
	})
	if err != nil {
		return err
	}

	if q := a.cfg.Output.Query; q != "" {
		sub, ok := merge.GetPath(tree, q)
		if !ok {
			return fmt.Errorf("%w: %q", ErrQueryNotFound, q)
		}
		tree = sub
	}

	a.log.Debug().Str("format", a.cfg.Output.Format).Msg("writing configuration")
	return a.encode(a.stdout, tree)
}

// context merges the context files in order and applies the --ctx
// entries on top.
func (a *App) context() (models.Value, error) {
	ctx := models.EmptyMap()
	for _, path := range a.cfg.Build.ContextFiles {
		file, err := a.decodeFile(path)
		if err != nil {
			return models.Value{}, fmt.Errorf("context file: %w", err)
		}
		ctx = merge.Merge(ctx, file)
		a.log.Debug().Str("path", path).Msg("context file loaded")
	}

	m, _ := ctx.AsMap()
	for _, kv := range a.cfg.Build.Context {
		key, v, err := config.ParseAssignment(kv)
		if err != nil {
			return models.Value{}, err
		}
		if err := merge.SetPath(m, key, v); err != nil {
			return models.Value{}, err
		}
	}
	return ctx, nil
}

// accumulate feeds the build inputs other than the context into the session.
func (a *App) accumulate(s *builder.Session) error {
	if a.cfg.Build.DefaultsFile != "" {
		defaults, err := a.decodeFile(a.cfg.Build.DefaultsFile)
		if err != nil {
			return fmt.Errorf("defaults file: %w", err)
		}
		if err := s.SetDefaults(defaults); err != nil {
			return err
		}
	}

	if err := s.AddPaths(a.cfg.Build.Paths...); err != nil {
		return err
	}
	if err := s.SetEnvPrefix(a.cfg.Build.EnvPrefix); err != nil {
		return err
	}

	overrides, err := config.Assignments(a.cfg.Build.Overrides)
	if err != nil {
		return err
	}
	for _, e := range overrides.Entries() {
		if err := s.SetOverride(e.Name, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// decodeFile reads path without rendering templates.
func (a *App) decodeFile(path string) (models.Value, error) {
	data, err := a.readFile(path)
	if err != nil {
		return models.Value{}, err
	}
	v, err := decoder.ForPath(path).Decode(data)
	if err != nil {
		return models.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Main is the whole command: it parses args, runs the build and reports
// failures on stderr. It returns the process exit code.
func Main(args []string, stdout, stderr io.Writer, info models.AppBuildInfo) int {
	cfg, err := config.GetStructuredConfig(args)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintf(stdout, "Usage: configtpl [flags] [file ...]\n\n%s", config.Usage())
		return ExitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, describe(stderr, err))
		return ExitSettings
	}

	if cfg.ShowVersion {
		printBuildInfo(stdout, info)
		return ExitOK
	}

	log := newLogger(cfg.Log, stderr)
	log.Debug().Any("config", cfg).Msg("received configs")

	app, err := NewApp(cfg, stdout, log)
	if err != nil {
		fmt.Fprintln(stderr, describe(stderr, err))
		return ExitSettings
	}
	if err := app.Run(); err != nil {
		fmt.Fprintln(stderr, describe(stderr, err))
		return ExitBuild
	}
	return ExitOK
}

func newLogger(cfg config.Log, w io.Writer) *logger.Logger {
	level, _ := zerolog.ParseLevel(cfg.Level)
	if cfg.Format == config.LogFormatJSON {
		return logger.NewLogger("configtpl", w, level)
	}
	return logger.NewConsoleLogger("configtpl", w, level)
}

// describe renders err for w: styled on a terminal, plain otherwise.
func describe(w io.Writer, err error) string {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return diagnostic.Styled(err)
	}
	return diagnostic.Format(err)
}

func printBuildInfo(w io.Writer, info models.AppBuildInfo) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(info.BuildVersion()))
	fmt.Fprintf(w, "Build date: %s\n", orNA(info.BuildDate()))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(info.BuildCommit()))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
