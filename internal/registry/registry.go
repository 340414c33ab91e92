// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry is the process-level entry point for embedding
// surfaces. It hands out opaque session identifiers, owns the sessions
// behind them and bounds the lifetime of the shared template cache with
// Init and Teardown.
//
// Typical use:
//
//	r := registry.New()
//	_ = r.Init()
//	id, _ := r.NewSession()
//	res := r.Build(id, models.BuildArgs{Paths: []string{"app.yaml"}})
//	_ = r.Release(id)
//	_ = r.Teardown()
package registry

import (
	"errors"
	"sync"

	"github.com/MKhiriev/go-configtpl/internal/builder"
	"github.com/MKhiriev/go-configtpl/internal/logger"
	"github.com/MKhiriev/go-configtpl/internal/template"
	"github.com/MKhiriev/go-configtpl/models"
)

type entry struct {
	mu      sync.Mutex
	session *builder.Session
}

// Registry maps generated identifiers to sessions. It is safe for
// concurrent use; calls against the same session are serialised.
type Registry struct {
	mu          sync.Mutex
	initialized bool
	cache       *template.Cache
	sessions    map[string]*entry

	ids     IDGenerator
	logger  *logger.Logger
	environ func() []string
}

// Option customises a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger. Sessions log through a child of it.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithIDGenerator replaces the UUIDv7 identifier source.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Registry) {
		if g != nil {
			r.ids = g
		}
	}
}

// WithEnviron makes every session read environment variables from environ.
func WithEnviron(environ func() []string) Option {
	return func(r *Registry) {
		r.environ = environ
	}
}

// New returns an uninitialized registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		ids:    NewUUIDGenerator(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init allocates the shared resources. Calling it again is a no-op.
func (r *Registry) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}
	r.cache = template.NewCache(template.DefaultCacheSize)
	r.sessions = make(map[string]*entry)
	r.initialized = true
	r.logger.Debug().Msg("registry initialized")
	return nil
}

// Teardown frees the shared resources. Every session must be released
// first. Calling it on an uninitialized registry is a no-op.
func (r *Registry) Teardown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return nil
	}
	if len(r.sessions) > 0 {
		return ErrSessionsAlive
	}
	r.cache.Reset()
	r.cache = nil
	r.sessions = nil
	r.initialized = false
	r.logger.Debug().Msg("registry torn down")
	return nil
}

// NewSession creates a session and returns its identifier.
func (r *Registry) NewSession() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return "", ErrNotInitialized
	}

	id := r.ids.Generate()
	s := builder.New(
		builder.WithCache(r.cache),
		builder.WithEnviron(r.environ),
		builder.WithLogger(&logger.Logger{Logger: r.logger.With().Str("session", id).Logger()}),
	)
	r.sessions[id] = &entry{session: s}
	r.logger.Debug().Str("session", id).Msg("session created")
	return id, nil
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return nil, ErrNotInitialized
	}
	e, ok := r.sessions[id]
	if !ok {
		return nil, builder.ErrInvalidHandle
	}
	return e, nil
}

// WithSession runs fn against the session for id, for callers that
// accumulate inputs incrementally.
func (r *Registry) WithSession(id string, fn func(*builder.Session) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Build runs the session's pipeline and reports the outcome as a result
// record. Unknown and released identifiers yield StatusErrorInvalidHandle
// before anything else is looked at.
func (r *Registry) Build(id string, args models.BuildArgs) models.BuildResult {
	e, err := r.lookup(id)
	if err != nil {
		return failure(err)
	}

	e.mu.Lock()
	tree, err := e.session.Build(args)
	e.mu.Unlock()
	if err != nil {
		r.logger.Debug().Str("session", id).Err(err).Msg("build failed")
		return failure(err)
	}

	return models.BuildResult{
		Status: models.StatusSuccess,
		Output: tree,
		Pairs:  models.Flatten(tree),
	}
}

// Release destroys the session for id. A second release of the same id
// returns builder.ErrInvalidHandle.
func (r *Registry) Release(id string) error {
	r.mu.Lock()
	if !r.initialized {
		r.mu.Unlock()
		return ErrNotInitialized
	}
	e, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return builder.ErrInvalidHandle
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	r.logger.Debug().Str("session", id).Msg("session released")
	return e.session.Release()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func failure(err error) models.BuildResult {
	res := models.BuildResult{
		Status:   statusOf(err),
		Output:   models.Null(),
		ErrorMsg: err.Error(),
	}
	if terr, ok := template.AsError(err); ok {
		span := terr.Span
		res.Location = &span
	}
	return res
}

func statusOf(err error) models.BuildStatus {
	switch {
	case errors.Is(err, builder.ErrInvalidHandle):
		return models.StatusErrorInvalidHandle
	case errors.Is(err, ErrNotInitialized):
		return models.StatusErrorUnknown
	default:
		return models.StatusErrorBuilding
	}
}
