// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Parameter locations.
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InCookie = "cookie"
)

// Operation is one documented method on one path.
type Operation struct {
	// ID is the operationId, possibly empty.
	ID string

	Method string

	// Path is the documented path template, e.g. "/pets/{petId}".
	Path string

	Summary    string
	Tags       []string
	Deprecated bool

	Parameters  []*Parameter
	RequestBody *RequestBody

	// Responses is keyed by status code, "2XX"-style ranges, or "default".
	Responses map[string]*Response

	matcher *pathMatcher
}

// Name identifies the operation in logs and errors.
func (o *Operation) Name() string {
	if o.ID != "" {
		return o.ID
	}
	return o.Method + " " + o.Path
}

// Parameter is one documented path, query, header, or cookie parameter.
type Parameter struct {
	Name     string
	In       string
	Required bool

	// Type is the primitive JSON Schema type used to coerce raw values.
	Type string

	// ItemType is the item type of array parameters.
	ItemType string

	schema *gojsonschema.Schema
}

// RequestBody describes the accepted request payloads.
type RequestBody struct {
	Required bool

	// Content is keyed by media type, possibly with wildcards.
	Content map[string]*MediaType
}

// Response describes one documented response.
type Response struct {
	Description string
	Content     map[string]*MediaType
}

// MediaType carries the compiled payload schema, nil when the payload is not
// described.
type MediaType struct {
	schema *gojsonschema.Schema
}

// HasSchema reports whether payloads of this media type are validated.
func (m *MediaType) HasSchema() bool {
	return m != nil && m.schema != nil
}

func (d *Document) newOperation(method, path string, pathItem, op map[string]any) (*Operation, error) {
	matcher, err := compilePath(path)
	if err != nil {
		return nil, err
	}

	o := &Operation{
		ID:         stringAt(op, "operationId"),
		Method:     method,
		Path:       path,
		Summary:    stringAt(op, "summary"),
		Deprecated: boolAt(op, "deprecated"),
		Responses:  make(map[string]*Response),
		matcher:    matcher,
	}
	if tags, ok := op["tags"].([]any); ok {
		for _, t := range tags {
			if s, ok := t.(string); ok {
				o.Tags = append(o.Tags, s)
			}
		}
	}

	if err := d.buildParameters(o, pathItem, op); err != nil {
		return nil, err
	}

	if !d.isSwagger() {
		if rawBody, ok := op["requestBody"]; ok {
			body, err := d.buildRequestBody(rawBody)
			if err != nil {
				return nil, fmt.Errorf("requestBody: %w", err)
			}
			o.RequestBody = body
		}
	}

	if err := d.buildResponses(o, op); err != nil {
		return nil, err
	}

	return o, nil
}

// buildParameters merges path-level and operation-level parameters, the
// latter overriding on name and location.
func (d *Document) buildParameters(o *Operation, pathItem, op map[string]any) error {
	type key struct{ name, in string }
	merged := make(map[key]map[string]any)
	var order []key

	for _, source := range []any{pathItem["parameters"], op["parameters"]} {
		list, _ := source.([]any)
		for _, raw := range list {
			p, err := d.resolveMap(raw)
			if err != nil {
				return fmt.Errorf("parameters: %w", err)
			}
			k := key{name: stringAt(p, "name"), in: stringAt(p, "in")}
			if k.name == "" || k.in == "" {
				return fmt.Errorf("%w: parameter without name or location", ErrInvalidDocument)
			}
			if _, seen := merged[k]; !seen {
				order = append(order, k)
			}
			merged[k] = p
		}
	}

	for _, k := range order {
		p := merged[k]

		if d.isSwagger() && k.in == "body" {
			body, err := d.swaggerBody(op, p)
			if err != nil {
				return fmt.Errorf("parameter %q: %w", k.name, err)
			}
			o.RequestBody = body
			continue
		}
		if k.in == "formData" {
			continue
		}

		param, err := d.buildParameter(p)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", k.name, err)
		}
		o.Parameters = append(o.Parameters, param)
	}

	for _, name := range o.matcher.names {
		if o.parameter(name, InPath) == nil {
			// undocumented template variables are still required strings
			o.Parameters = append(o.Parameters, &Parameter{Name: name, In: InPath, Required: true, Type: "string"})
		}
	}

	return nil
}

func (d *Document) buildParameter(p map[string]any) (*Parameter, error) {
	param := &Parameter{
		Name:     stringAt(p, "name"),
		In:       stringAt(p, "in"),
		Required: boolAt(p, "required") || stringAt(p, "in") == InPath,
	}

	var schema any
	if d.isSwagger() {
		schema = swaggerParameterSchema(p)
	} else {
		schema = p["schema"]
	}
	if schema == nil {
		param.Type = "string"
		return param, nil
	}

	resolved, err := d.resolveMap(schema)
	if err != nil {
		return nil, err
	}
	param.Type = schemaType(resolved)
	if param.Type == "array" {
		if items, err := d.resolveMap(resolved["items"]); err == nil {
			param.ItemType = schemaType(items)
		}
	}

	if param.schema, err = d.compile(schema); err != nil {
		return nil, err
	}

	return param, nil
}

func (d *Document) buildRequestBody(raw any) (*RequestBody, error) {
	b, err := d.resolveMap(raw)
	if err != nil {
		return nil, err
	}

	body := &RequestBody{Required: boolAt(b, "required"), Content: make(map[string]*MediaType)}
	for mediaType, rawMedia := range mapAt(b, "content") {
		media, err := d.buildMediaType(rawMedia)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", mediaType, err)
		}
		body.Content[strings.ToLower(mediaType)] = media
	}

	return body, nil
}

func (d *Document) buildMediaType(raw any) (*MediaType, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return &MediaType{}, nil
	}
	schema, ok := m["schema"]
	if !ok {
		return &MediaType{}, nil
	}

	compiled, err := d.compile(schema)
	if err != nil {
		return nil, err
	}
	return &MediaType{schema: compiled}, nil
}

func (d *Document) buildResponses(o *Operation, op map[string]any) error {
	for code, raw := range mapAt(op, "responses") {
		if strings.HasPrefix(code, "x-") {
			continue
		}

		r, err := d.resolveMap(raw)
		if err != nil {
			return fmt.Errorf("response %s: %w", code, err)
		}

		resp := &Response{Description: stringAt(r, "description"), Content: make(map[string]*MediaType)}
		if d.isSwagger() {
			if schema, ok := r["schema"]; ok {
				compiled, err := d.compile(schema)
				if err != nil {
					return fmt.Errorf("response %s: %w", code, err)
				}
				for _, mediaType := range d.produces(op) {
					resp.Content[mediaType] = &MediaType{schema: compiled}
				}
			}
		} else {
			for mediaType, rawMedia := range mapAt(r, "content") {
				media, err := d.buildMediaType(rawMedia)
				if err != nil {
					return fmt.Errorf("response %s %s: %w", code, mediaType, err)
				}
				resp.Content[strings.ToLower(mediaType)] = media
			}
		}

		o.Responses[strings.ToUpper(code)] = resp
	}

	return nil
}

// swaggerBody converts a Swagger 2.0 "in: body" parameter into a request
// body accepting every media type the operation consumes.
func (d *Document) swaggerBody(op, p map[string]any) (*RequestBody, error) {
	body := &RequestBody{Required: boolAt(p, "required"), Content: make(map[string]*MediaType)}

	var compiled *gojsonschema.Schema
	if schema, ok := p["schema"]; ok {
		var err error
		if compiled, err = d.compile(schema); err != nil {
			return nil, err
		}
	}
	for _, mediaType := range d.consumes(op) {
		body.Content[mediaType] = &MediaType{schema: compiled}
	}

	return body, nil
}

func (d *Document) consumes(op map[string]any) []string {
	return mediaTypes(op["consumes"], d.raw["consumes"])
}

func (d *Document) produces(op map[string]any) []string {
	return mediaTypes(op["produces"], d.raw["produces"])
}

func mediaTypes(sources ...any) []string {
	for _, source := range sources {
		list, _ := source.([]any)
		var out []string
		for _, v := range list {
			if s, ok := v.(string); ok {
				out = append(out, strings.ToLower(s))
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return []string{"application/json"}
}

var swaggerParameterKeys = map[string]bool{
	"name": true, "in": true, "required": true, "description": true,
	"collectionFormat": true, "allowEmptyValue": true,
}

// swaggerParameterSchema extracts the inline schema of a non-body Swagger
// 2.0 parameter.
func swaggerParameterSchema(p map[string]any) map[string]any {
	schema := make(map[string]any)
	for k, v := range p {
		if swaggerParameterKeys[k] || strings.HasPrefix(k, "x-") {
			continue
		}
		if k == "type" && v == "file" {
			continue
		}
		schema[k] = v
	}
	if len(schema) == 0 {
		return nil
	}
	return schema
}

func schemaType(schema map[string]any) string {
	switch t := schema["type"].(type) {
	case string:
		return t
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s != "null" {
				return s
			}
		}
	}
	return "string"
}

func (o *Operation) parameter(name, in string) *Parameter {
	for _, p := range o.Parameters {
		if p.Name == name && p.In == in {
			return p
		}
	}
	return nil
}

// response returns the response documented for status, falling back to
// its range ("4XX") and then to "default".
func (o *Operation) response(status int) (*Response, bool) {
	code := fmt.Sprintf("%d", status)
	for _, key := range []string{code, code[:1] + "XX", "DEFAULT"} {
		if r, ok := o.Responses[key]; ok {
			return r, true
		}
	}
	return nil, false
}

// DocumentedStatuses returns the documented response keys in order.
func (o *Operation) DocumentedStatuses() []string {
	keys := make([]string, 0, len(o.Responses))
	for k := range o.Responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
