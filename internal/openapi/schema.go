// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// compile builds a validator for schema. The schema is nested under allOf in
// a copy of the document root so local references such as
// "#/components/schemas/Pet" or "#/definitions/Pet" resolve against the
// whole document.
func (d *Document) compile(schema any) (*gojsonschema.Schema, error) {
	root := make(map[string]any, len(d.raw)+1)
	for k, v := range d.raw {
		if k == "paths" {
			continue
		}
		root[k] = v
	}
	root["allOf"] = []any{schema}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(root))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return compiled, nil
}

// check validates doc against schema and returns one message per violation,
// each prefixed with where.
func check(schema *gojsonschema.Schema, loader gojsonschema.JSONLoader, where string) []string {
	result, err := schema.Validate(loader)
	if err != nil {
		return []string{fmt.Sprintf("%s is not valid JSON", where)}
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		if e.Type() == "number_all_of" {
			continue
		}
		field := e.Field()
		if field == "(root)" {
			details = append(details, fmt.Sprintf("%s: %s", where, e.Description()))
			continue
		}
		details = append(details, fmt.Sprintf("%s.%s: %s", where, strings.TrimPrefix(field, "(root)."), e.Description()))
	}
	return details
}
