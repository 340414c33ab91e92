// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package template

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-configtpl/models"
)

type filterFunc func(in models.Value, arg models.Value) (models.Value, bool)

type filterSpec struct {
	needsArg bool
	apply    filterFunc
}

// filters is the fixed filter table. apply reports false when the input
// type is not accepted.
var filters = map[string]filterSpec{
	"upper": {apply: textFilter(strings.ToUpper)},
	"lower": {apply: textFilter(strings.ToLower)},
	"trim":  {apply: textFilter(strings.TrimSpace)},
	"quote": {apply: textFilter(strconv.Quote)},
	"json": {apply: func(in models.Value, _ models.Value) (models.Value, bool) {
		data, err := in.MarshalJSON()
		if err != nil {
			return models.Value{}, false
		}
		return models.String(string(data)), true
	}},
	"default": {needsArg: true, apply: func(in models.Value, arg models.Value) (models.Value, bool) {
		if in.IsNull() {
			return arg, true
		}
		return in, true
	}},
}

func textFilter(fn func(string) string) filterFunc {
	return func(in models.Value, _ models.Value) (models.Value, bool) {
		text, ok := in.Text()
		if !ok {
			return models.Value{}, false
		}
		return models.String(fn(text)), true
	}
}
