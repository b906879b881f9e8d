// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var templateVar = regexp.MustCompile(`\{([^{}/]+)\}`)

// pathMatcher matches request paths against one path template.
type pathMatcher struct {
	template string
	pattern  *regexp.Regexp
	names   []string

	// literal is the number of non-variable characters in the template.
	literal int
}

func compilePath(template string) (*pathMatcher, error) {
	m := &pathMatcher{template: template}

	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range templateVar.FindAllStringSubmatchIndex(template, -1) {
		b.WriteString(regexp.QuoteMeta(template[last:loc[0]]))
		m.literal += loc[0] - last
		m.names = append(m.names, template[loc[2]:loc[3]])
		b.WriteString("([^/]+)")
		last = loc[1]
	}
	rest := strings.TrimRight(template[last:], "/")
	if rest == "" && last == 0 {
		rest = "/"
	}
	b.WriteString(regexp.QuoteMeta(rest))
	m.literal += len(rest)
	b.WriteString("$")

	pattern, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: path %q: %v", ErrInvalidDocument, template, err)
	}
	m.pattern = pattern

	return m, nil
}

// less orders templates so the most specific wins: fewer variables first,
// then longer literal text. Remaining ties are broken by the template text
// so the order never depends on document key order.
func (m *pathMatcher) less(other *pathMatcher) bool {
	if len(m.names) != len(other.names) {
		return len(m.names) < len(other.names)
	}
	if m.literal != other.literal {
		return m.literal > other.literal
	}
	return m.template < other.template
}

func (m *pathMatcher) match(path string) (map[string]string, bool) {
	groups := m.pattern.FindStringSubmatch(path)
	if groups == nil {
		return nil, false
	}

	params := make(map[string]string, len(m.names))
	for i, name := range m.names {
		value, err := url.PathUnescape(groups[i+1])
		if err != nil {
			return nil, false
		}
		params[name] = value
	}
	return params, true
}

// Match finds the operation documented for method and the escaped request
// path. The path must carry the document's base path. Literal templates win
// over templated ones.
func (d *Document) Match(method, escapedPath string) (*Operation, map[string]string, bool) {
	path := escapedPath
	if d.BasePath != "" {
		if path != d.BasePath && !strings.HasPrefix(path, d.BasePath+"/") {
			return nil, nil, false
		}
		path = strings.TrimPrefix(path, d.BasePath)
	}
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		path = trimmed
	} else {
		path = "/"
	}

	method = strings.ToUpper(method)
	for _, op := range d.operations {
		if op.Method != method {
			continue
		}
		if params, ok := op.matcher.match(path); ok {
			return op, params, true
		}
	}

	return nil, nil, false
}
