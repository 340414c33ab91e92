// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

//go:generate mockgen -source=interfaces.go -destination=../mock/loader_mock.go -package=mock

import "github.com/MKhiriev/go-configtpl/internal/decoder"

// FileReader reads configuration sources. It mirrors [os.ReadFile] so the
// file system can be replaced in tests.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// DecoderResolver picks the decoder for a source path.
type DecoderResolver interface {
	Resolve(path string) (decoder.Decoder, error)
}
