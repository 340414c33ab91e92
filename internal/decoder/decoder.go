// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package decoder converts configuration file bytes into the value model.
//
// Three syntaxes are supported, selected by file extension in [ForPath]:
// YAML (.yaml, .yml, and anything unrecognised), JSON with comments
// (.json, .jsonc) and HCL native syntax (.hcl). Decoders keep the key order
// of the file where the syntax allows it. Every decoder returns a map
// value; an empty file decodes to an empty map.
//
// Decoders do not evaluate the "${...}" expressions of the configuration
// template language; string leaves are returned verbatim for the loader to
// render.
package decoder

//go:generate mockgen -source=decoder.go -destination=../mock/decoder_mock.go -package=mock

import (
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-configtpl/models"
)

// Decoder turns raw file contents into a configuration map.
type Decoder interface {
	Decode(data []byte) (models.Value, error)
}

// Resolver picks the decoder for a path.
type Resolver struct{}

// NewResolver returns the extension-based resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the decoder for path.
func (r *Resolver) Resolve(path string) (Decoder, error) {
	return ForPath(path), nil
}

// ForPath selects a decoder by the extension of path. Unknown extensions
// use YAML.
func ForPath(path string) Decoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return JSON{}
	case ".hcl":
		return HCL{Filename: path}
	default:
		return YAML{}
	}
}

func requireMap(v models.Value, format string) (models.Value, error) {
	if v.IsNull() {
		return models.EmptyMap(), nil
	}
	if !v.IsMap() {
		return models.Value{}, errorf("%s: document root is a %s, expected a map", format, v.Kind())
	}
	return v, nil
}
