// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package builder assembles a configuration tree from layered sources.
//
// A Session accumulates inputs and folds them on Build in a fixed order of
// increasing precedence: defaults, files, environment, overrides. The
// context never appears in the result; it only feeds template rendering.
// Every source is rendered before it is merged, against the context
// overlaid on the configuration merged so far.
//
// A string value made of exactly one ${...} expression takes the type of
// what it resolves to: "${port}" stays an Int and "${db}" inserts the
// whole db map. Any surrounding text renders the result to a string.
package builder

import (
	"fmt"

	"github.com/MKhiriev/go-configtpl/internal/ingest"
	"github.com/MKhiriev/go-configtpl/internal/loader"
	"github.com/MKhiriev/go-configtpl/internal/logger"
	"github.com/MKhiriev/go-configtpl/internal/merge"
	"github.com/MKhiriev/go-configtpl/internal/template"
	"github.com/MKhiriev/go-configtpl/models"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateCreated State = iota
	StateAccumulating
	StateBuilt
	StateReleased
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateAccumulating:
		return "accumulating"
	case StateBuilt:
		return "built"
	case StateReleased:
		return "released"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session accumulates build inputs and produces one resolved tree per
// Build call. A built session may be built again; a released one rejects
// every operation with ErrInvalidHandle.
//
// A Session is not safe for concurrent use. Independent sessions share no
// mutable state.
type Session struct {
	state State

	paths     []string
	context   *models.Map
	overrides *models.Map
	defaults  models.Value
	envPrefix string

	logger  *logger.Logger
	loader  *loader.Loader
	cache   *template.Cache
	environ func() []string
}

// New returns an empty session in StateCreated.
func New(opts ...Option) *Session {
	s := &Session{
		context:   models.NewMap(),
		overrides: models.NewMap(),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loader == nil {
		s.loader = loader.New(nil, nil, s.cache)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

func (s *Session) accumulate() error {
	if s.state == StateReleased {
		return ErrInvalidHandle
	}
	if s.state == StateCreated {
		s.state = StateAccumulating
	}
	return nil
}

// AddPath appends a configuration file. Files are applied in the order added.
func (s *Session) AddPath(path string) error {
	if err := s.accumulate(); err != nil {
		return err
	}
	s.paths = append(s.paths, path)
	return nil
}

// AddPaths appends several configuration files.
func (s *Session) AddPaths(paths ...string) error {
	if err := s.accumulate(); err != nil {
		return err
	}
	s.paths = append(s.paths, paths...)
	return nil
}

// SetContextValue sets a context variable. key may be a dotted path, in
// which case intermediate maps are created.
func (s *Session) SetContextValue(key string, v models.Value) error {
	if err := s.accumulate(); err != nil {
		return err
	}
	return merge.SetPath(s.context, key, v.Clone())
}

// SetOverride records an override for the dotted key path. Setting the same
// path twice keeps the last value.
func (s *Session) SetOverride(path string, v models.Value) error {
	if err := s.accumulate(); err != nil {
		return err
	}
	if _, err := merge.SplitPath(path); err != nil {
		return err
	}
	s.overrides.Set(path, v.Clone())
	return nil
}

// SetDefaults replaces the accumulated defaults.
func (s *Session) SetDefaults(v models.Value) error {
	if err := s.accumulate(); err != nil {
		return err
	}
	s.defaults = v.Clone()
	return nil
}

// SetEnvPrefix sets the environment prefix used when BuildArgs omits one.
func (s *Session) SetEnvPrefix(prefix string) error {
	if err := s.accumulate(); err != nil {
		return err
	}
	s.envPrefix = prefix
	return nil
}

// Release invalidates the session. Releasing twice returns ErrInvalidHandle.
func (s *Session) Release() error {
	if s.state == StateReleased {
		return ErrInvalidHandle
	}
	s.state = StateReleased
	s.paths = nil
	s.context = nil
	s.overrides = nil
	s.defaults = models.Null()
	return nil
}

// Build runs the pipeline over the accumulated inputs combined with args
// and returns the resolved map. Inputs given in args take precedence over
// accumulated ones of the same kind. On failure no partial tree is returned.
func (s *Session) Build(args models.BuildArgs) (models.Value, error) {
	if s.state == StateReleased {
		return models.Value{}, ErrInvalidHandle
	}

	log := s.logger.GetChildLogger()

	scope := merge.Merge(models.MapOf(s.context), mapOrEmpty(args.Context))

	defaults := merge.Merge(mapOrEmpty(s.defaults), mapOrEmpty(args.Defaults))
	acc, err := s.loader.RenderTree(defaults, scope)
	if err != nil {
		return models.Value{}, fmt.Errorf("defaults: %w", err)
	}
	log.Debug().Strs("keys", keys(acc)).Msg("defaults rendered")

	paths := make([]string, 0, len(s.paths)+len(args.Paths))
	paths = append(paths, s.paths...)
	paths = append(paths, args.Paths...)
	for _, path := range paths {
		file, err := s.loader.Load(path, renderScope(acc, scope))
		if err != nil {
			return models.Value{}, err
		}
		acc = merge.Merge(acc, file)
		log.Debug().Str("path", path).Strs("keys", keys(file)).Msg("file merged")
	}

	prefix := args.EnvVarsPrefix
	if prefix == "" {
		prefix = s.envPrefix
	}
	if prefix != "" {
		fragment := ingest.NewWithEnviron(s.environ).Ingest(prefix)
		fragment, err = s.loader.RenderTree(fragment, renderScope(acc, scope))
		if err != nil {
			return models.Value{}, fmt.Errorf("environment %s: %w", prefix, err)
		}
		acc = merge.Merge(acc, fragment)
		log.Debug().Str("prefix", prefix).Strs("keys", keys(fragment)).Msg("environment merged")
	}

	overrides := s.overrides.Clone()
	if args.Overrides != nil {
		for _, e := range args.Overrides.Entries() {
			overrides.Set(e.Name, e.Value)
		}
	}
	if overrides.Len() > 0 {
		rendered, err := s.loader.RenderTree(models.MapOf(overrides), renderScope(acc, scope))
		if err != nil {
			return models.Value{}, fmt.Errorf("overrides: %w", err)
		}
		renderedMap, _ := rendered.AsMap()
		acc, err = merge.ApplyOverrides(acc, renderedMap)
		if err != nil {
			return models.Value{}, err
		}
		log.Debug().Strs("keys", overrides.Keys()).Msg("overrides applied")
	}

	s.state = StateBuilt
	return acc, nil
}

// renderScope is the variable scope for a source: configuration merged so
// far, overlaid by the explicit context.
func renderScope(acc, scope models.Value) models.Value {
	return merge.Merge(acc, scope)
}

func mapOrEmpty(v models.Value) models.Value {
	if v.IsMap() {
		return v
	}
	return models.EmptyMap()
}

func keys(v models.Value) []string {
	m, _ := v.AsMap()
	return m.Keys()
}
