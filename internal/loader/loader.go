// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package loader reads configuration sources, decodes them and renders the
// templated string leaves of the resulting tree.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/MKhiriev/go-configtpl/internal/decoder"
	"github.com/MKhiriev/go-configtpl/internal/template"
	"github.com/MKhiriev/go-configtpl/models"
)

// OSReader reads from the local file system.
type OSReader struct{}

// ReadFile implements [FileReader].
func (OSReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader turns a source path into a rendered configuration map.
type Loader struct {
	reader   FileReader
	resolver DecoderResolver
	cache    *template.Cache
}

// New returns a Loader using the given collaborators. A nil reader or
// resolver falls back to [OSReader] and [decoder.NewResolver]; a nil cache
// parses every template afresh.
func New(reader FileReader, resolver DecoderResolver, cache *template.Cache) *Loader {
	if reader == nil {
		reader = OSReader{}
	}
	if resolver == nil {
		resolver = decoder.NewResolver()
	}
	return &Loader{reader: reader, resolver: resolver, cache: cache}
}

// Load reads path, decodes it and renders every templated string leaf
// against scope.
func (l *Loader) Load(path string, scope models.Value) (models.Value, error) {
	data, err := l.reader.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Value{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return models.Value{}, fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}

	dec, err := l.resolver.Resolve(path)
	if err != nil {
		return models.Value{}, fmt.Errorf("%s: %w", path, err)
	}

	tree, err := dec.Decode(data)
	if err != nil {
		return models.Value{}, fmt.Errorf("%s: %w", path, err)
	}

	rendered, err := l.RenderTree(tree, scope)
	if err != nil {
		return models.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return rendered, nil
}

// RenderTree returns a copy of v with every string leaf that contains a
// template rendered against scope. Map keys are left as they are.
func (l *Loader) RenderTree(v models.Value, scope models.Value) (models.Value, error) {
	return l.render(v, scope, "")
}

func (l *Loader) render(v models.Value, scope models.Value, at string) (models.Value, error) {
	switch v.Kind() {
	case models.KindString:
		s, _ := v.AsString()
		if !template.HasTemplate(s) {
			return v, nil
		}
		t, err := l.cache.Parse(s)
		if err != nil {
			return models.Value{}, keyError(at, err)
		}
		out, err := t.RenderValue(scope)
		if err != nil {
			return models.Value{}, keyError(at, err)
		}
		return out, nil
	case models.KindList:
		items, _ := v.AsList()
		out := make([]models.Value, 0, len(items))
		for i, item := range items {
			r, err := l.render(item, scope, at+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return models.Value{}, err
			}
			out = append(out, r)
		}
		return models.List(out...), nil
	case models.KindMap:
		m, _ := v.AsMap()
		out := models.NewMap()
		for _, e := range m.Entries() {
			key := e.Name
			if at != "" {
				key = at + "." + e.Name
			}
			r, err := l.render(e.Value, scope, key)
			if err != nil {
				return models.Value{}, err
			}
			out.Set(e.Name, r)
		}
		return models.MapOf(out), nil
	default:
		return v, nil
	}
}

func keyError(at string, err error) error {
	if at == "" {
		return err
	}
	return fmt.Errorf("key %q: %w", at, err)
}
