// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/MKhiriev/go-configtpl/models"
)

// JSON decodes JSON, accepting // and /* */ comments and trailing commas.
// Object key order is preserved and integral numbers decode as Int.
type JSON struct{}

// Decode implements [Decoder].
func (JSON) Decode(data []byte) (models.Value, error) {
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return models.EmptyMap(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(stripped))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return models.Value{}, wrap("json", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return models.Value{}, errorf("json: unexpected data after top-level value at offset %d", dec.InputOffset())
	}

	return requireMap(v, "json")
}

func decodeJSONValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return models.Value{}, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return models.FromAny(tok)
	}

	switch delim {
	case '{':
		m := models.NewMap()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return models.Value{}, err
			}
			key, _ := keyTok.(string)

			value, err := decodeJSONValue(dec)
			if err != nil {
				return models.Value{}, err
			}
			m.Set(key, value)
		}
		if _, err := dec.Token(); err != nil {
			return models.Value{}, err
		}
		return models.MapOf(m), nil
	case '[':
		items := []models.Value{}
		for dec.More() {
			item, err := decodeJSONValue(dec)
			if err != nil {
				return models.Value{}, err
			}
			items = append(items, item)
		}
		if _, err := dec.Token(); err != nil {
			return models.Value{}, err
		}
		return models.List(items...), nil
	}

	return models.Value{}, errors.New("unexpected delimiter " + delim.String())
}
