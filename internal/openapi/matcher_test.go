// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Match(t *testing.T) {
	doc := mustParseFile(t, "testdata/petstore.yaml")

	tests := []struct {
		name       string
		method     string
		path       string
		wantOp     string
		wantParams map[string]string
		wantOK     bool
	}{
		{name: "literal", method: "GET", path: "/v1/pets", wantOp: "listPets", wantParams: map[string]string{}, wantOK: true},
		{name: "lowercase method", method: "post", path: "/v1/pets", wantOp: "createPet", wantParams: map[string]string{}, wantOK: true},
		{name: "trailing slash", method: "GET", path: "/v1/pets/", wantOp: "listPets", wantParams: map[string]string{}, wantOK: true},
		{name: "literal wins over template", method: "GET", path: "/v1/pets/mine", wantOp: "listMyPets", wantParams: map[string]string{}, wantOK: true},
		{name: "template", method: "GET", path: "/v1/pets/42", wantOp: "showPetById", wantParams: map[string]string{"petId": "42"}, wantOK: true},
		{name: "escaped value", method: "DELETE", path: "/v1/pets/a%2Fb", wantOp: "DELETE /pets/{petId}", wantParams: map[string]string{"petId": "a/b"}, wantOK: true},
		{name: "missing base path", method: "GET", path: "/pets", wantOK: false},
		{name: "base path prefix only", method: "GET", path: "/v1pets", wantOK: false},
		{name: "undocumented method", method: "PUT", path: "/v1/pets", wantOK: false},
		{name: "too deep", method: "GET", path: "/v1/pets/1/owner", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, params, ok := doc.Match(tt.method, tt.path)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, op)
				return
			}
			assert.Equal(t, tt.wantOp, op.Name())
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestCompilePath(t *testing.T) {
	tests := []struct {
		template   string
		path       string
		wantParams map[string]string
		wantOK     bool
	}{
		{template: "/", path: "/", wantParams: map[string]string{}, wantOK: true},
		{template: "/files/{name}.json", path: "/files/report.json", wantParams: map[string]string{"name": "report"}, wantOK: true},
		{template: "/files/{name}.json", path: "/files/report.xml", wantOK: false},
		{template: "/a/{x}/b/{y}", path: "/a/1/b/2", wantParams: map[string]string{"x": "1", "y": "2"}, wantOK: true},
		{template: "/a.b", path: "/axb", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.template+" "+tt.path, func(t *testing.T) {
			m, err := compilePath(tt.template)
			assert.NoError(t, err)

			params, ok := m.match(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantParams, params)
			}
		})
	}
}

func TestPathMatcher_Less(t *testing.T) {
	literal, _ := compilePath("/pets/mine")
	templated, _ := compilePath("/pets/{id}")
	longer, _ := compilePath("/pets/{id}/owner")

	assert.True(t, literal.less(templated))
	assert.False(t, templated.less(literal))
	assert.True(t, longer.less(templated))

	leading, _ := compilePath("/a/{x}")
	trailing, _ := compilePath("/{y}/a")
	assert.True(t, leading.less(trailing), "equal rank falls back to the template text")
	assert.False(t, trailing.less(leading))
}

func TestDocument_MatchEqualRankIsStable(t *testing.T) {
	const doc = `openapi: 3.0.0
paths:
  /{y}/a:
    get: {operationId: second, responses: {}}
  /a/{x}:
    get: {operationId: first, responses: {}}
  /b/{x}:
    get: {operationId: third, responses: {}}
    post: {operationId: fourth, responses: {}}
`

	for i := 0; i < 50; i++ {
		parsed, err := Parse([]byte(doc))
		require.NoError(t, err)

		op, params, ok := parsed.Match("GET", "/a/a")
		require.True(t, ok)
		assert.Equal(t, "first", op.Name())
		assert.Equal(t, map[string]string{"x": "a"}, params)

		var names []string
		for _, op := range parsed.operations {
			names = append(names, op.Name())
		}
		assert.Equal(t, []string{"first", "third", "fourth", "second"}, names)
	}
}
