// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package builder

import (
	"github.com/MKhiriev/go-configtpl/internal/loader"
	"github.com/MKhiriev/go-configtpl/internal/logger"
	"github.com/MKhiriev/go-configtpl/internal/template"
)

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the logger for pipeline stages. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader replaces the source loader.
func WithLoader(l *loader.Loader) Option {
	return func(s *Session) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithEnviron makes environment ingestion read from environ instead of the
// process environment.
func WithEnviron(environ func() []string) Option {
	return func(s *Session) {
		s.environ = environ
	}
}

// WithCache shares a template parse cache with the default loader. It has
// no effect when WithLoader is also given.
func WithCache(c *template.Cache) Option {
	return func(s *Session) {
		s.cache = c
	}
}
