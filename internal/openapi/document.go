// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed and compiled API description.
type Document struct {
	// Version is the "openapi" version, or "2.0" for Swagger documents.
	Version string

	// Title is info.title.
	Title string

	// BasePath is the path prefix every operation is served under.
	BasePath string

	raw        map[string]any
	operations []*Operation
}

var methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Parse reads a YAML or JSON document, resolves its operations, and compiles
// every schema it references. Any structural problem or uncompilable schema
// fails the whole document.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	value, err := nodeValue(&root)
	if err != nil {
		return nil, err
	}

	raw, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document root must be a mapping", ErrInvalidDocument)
	}
	normalizeNullable(raw)

	doc := &Document{raw: raw}

	switch {
	case strings.HasPrefix(versionAt(raw, "openapi"), "3."):
		doc.Version = versionAt(raw, "openapi")
		doc.BasePath = serversBasePath(raw)
	case versionAt(raw, "swagger") == "2.0":
		doc.Version = "2.0"
		doc.BasePath = stringAt(raw, "basePath")
	default:
		return nil, fmt.Errorf("%w: missing \"openapi: 3.x\" or \"swagger: 2.0\"", ErrInvalidDocument)
	}
	doc.BasePath = strings.TrimRight(doc.BasePath, "/")
	doc.Title = stringAt(mapAt(raw, "info"), "title")

	if err := doc.buildOperations(); err != nil {
		return nil, err
	}

	return doc, nil
}

// JSON renders the document as JSON, e.g. for serving it to documentation
// tools.
func (d *Document) JSON() ([]byte, error) {
	return json.Marshal(d.raw)
}

func (d *Document) isSwagger() bool {
	return d.Version == "2.0"
}

func (d *Document) buildOperations() error {
	paths := mapAt(d.raw, "paths")
	if paths == nil {
		return fmt.Errorf("%w: missing paths", ErrInvalidDocument)
	}

	for path, item := range paths {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("%w: path %q must begin with '/'", ErrInvalidDocument, path)
		}

		pathItem, err := d.resolveMap(item)
		if err != nil {
			return fmt.Errorf("path %q: %w", path, err)
		}

		for _, method := range methods {
			rawOp, ok := pathItem[method]
			if !ok {
				continue
			}
			opMap, ok := rawOp.(map[string]any)
			if !ok {
				return fmt.Errorf("%w: %s %s must be a mapping", ErrInvalidDocument, strings.ToUpper(method), path)
			}

			op, err := d.newOperation(strings.ToUpper(method), path, pathItem, opMap)
			if err != nil {
				return fmt.Errorf("%s %s: %w", strings.ToUpper(method), path, err)
			}
			d.operations = append(d.operations, op)
		}
	}

	sort.Slice(d.operations, func(i, j int) bool {
		a, b := d.operations[i], d.operations[j]
		if a.Path != b.Path {
			return a.matcher.less(b.matcher)
		}
		return a.Method < b.Method
	})

	return nil
}

// resolve follows a local "#/..." reference.
func (d *Document) resolve(ref string) (any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("%w: only local references are supported: %q", ErrUnresolvedRef, ref)
	}

	var current any = d.raw
	for _, token := range strings.Split(ref[2:], "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		if unescaped, err := url.PathUnescape(token); err == nil {
			token = unescaped
		}

		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvedRef, ref)
		}
		if current, ok = m[token]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvedRef, ref)
		}
	}

	return current, nil
}

// resolveMap returns v as a mapping, following $ref chains.
func (d *Document) resolveMap(v any) (map[string]any, error) {
	for depth := 0; depth < maxRefDepth; depth++ {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected a mapping", ErrInvalidDocument)
		}
		ref, ok := m["$ref"].(string)
		if !ok {
			return m, nil
		}
		resolved, err := d.resolve(ref)
		if err != nil {
			return nil, err
		}
		v = resolved
	}
	return nil, fmt.Errorf("%w: $ref chain deeper than %d", ErrUnresolvedRef, maxRefDepth)
}

const maxRefDepth = 16

func serversBasePath(raw map[string]any) string {
	servers, _ := raw["servers"].([]any)
	if len(servers) == 0 {
		return ""
	}
	server, _ := servers[0].(map[string]any)
	rawURL := stringAt(server, "url")
	if rawURL == "" || strings.Contains(rawURL, "{") {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}

// maxExpandedNodes bounds the number of nodes produced while expanding
// aliases.
const maxExpandedNodes = 1 << 20

// nodeValue converts a YAML node into plain Go values. Mapping keys are
// always strings so the result can be marshalled to JSON, which matters for
// response codes written as bare integers. An alias that refers back into
// its own anchor is rejected.
func nodeValue(n *yaml.Node) (any, error) {
	c := &nodeConverter{active: make(map[*yaml.Node]bool)}
	return c.convert(n)
}

type nodeConverter struct {
	// active holds the container nodes on the current descent path.
	active   map[*yaml.Node]bool
	expanded int
}

func (c *nodeConverter) convert(n *yaml.Node) (any, error) {
	c.expanded++
	if c.expanded > maxExpandedNodes {
		return nil, fmt.Errorf("%w: more than %d nodes after alias expansion", ErrInvalidDocument, maxExpandedNodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil || c.active[n.Alias] {
			return nil, fmt.Errorf("%w: recursive alias %q", ErrInvalidDocument, n.Value)
		}
		return c.convert(n.Alias)
	case yaml.MappingNode:
		c.active[n] = true
		defer delete(c.active, n)

		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Tag == "!!merge" {
				merged, err := c.convert(value)
				if err != nil {
					return nil, err
				}
				if mm, ok := merged.(map[string]any); ok {
					for k, v := range mm {
						if _, exists := m[k]; !exists {
							m[k] = v
						}
					}
				}
				continue
			}
			v, err := c.convert(value)
			if err != nil {
				return nil, err
			}
			m[key.Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		c.active[n] = true
		defer delete(c.active, n)

		s := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return v, nil
	}
}

// normalizeNullable rewrites OpenAPI 3.0 `nullable: true` into a JSON
// Schema type union so the validator accepts null.
func normalizeNullable(v any) {
	switch value := v.(type) {
	case map[string]any:
		if nullable, _ := value["nullable"].(bool); nullable {
			switch t := value["type"].(type) {
			case string:
				value["type"] = []any{t, "null"}
			case []any:
				value["type"] = append(t, "null")
			}
			if enum, ok := value["enum"].([]any); ok {
				value["enum"] = append(enum, nil)
			}
			delete(value, "nullable")
		}
		for _, child := range value {
			normalizeNullable(child)
		}
	case []any:
		for _, child := range value {
			normalizeNullable(child)
		}
	}
}

func mapAt(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}

func stringAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

// versionAt reads a version field that YAML may have decoded as a number,
// e.g. `swagger: 2.0`.
func versionAt(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.1f", v)
	case int:
		return fmt.Sprintf("%d.0", v)
	default:
		return ""
	}
}

func boolAt(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	v, _ := m[key].(bool)
	return v
}
