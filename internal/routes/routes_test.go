// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/config"
	"github.com/MKhiriev/go-api-bootstrap/internal/metrics"
	"github.com/MKhiriev/go-api-bootstrap/internal/openapi"
)

const petstore = `
openapi: 3.0.3
info: {title: Petstore, version: 1.0.0}
paths:
  /pets:
    get:
      responses:
        200: {description: ok}
`

func newDocs(t *testing.T) DocumentSource {
	t.Helper()

	doc, err := openapi.Parse([]byte(petstore))
	require.NoError(t, err)
	return openapi.Resolved(openapi.NewProvider(doc, openapi.Options{}))
}

func newHandler(t *testing.T, registrars []app.Registrar) http.Handler {
	t.Helper()

	a := app.New()
	for _, reg := range registrars {
		require.NoError(t, a.Register(reg))
	}

	h, err := a.Handler()
	require.NoError(t, err)
	return h
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRegistry_Order(t *testing.T) {
	names := func(regs []app.Registrar) []string {
		var out []string
		for _, r := range regs {
			out = append(out, r.Name)
		}
		return out
	}

	assert.Equal(t, []string{"health", "version", "docs", "metrics"},
		names(Registry(config.App{}, newDocs(t), http.NotFoundHandler())))
	assert.Equal(t, []string{"health", "version", "docs"},
		names(Registry(config.App{}, newDocs(t), nil)))
}

func TestHealth(t *testing.T) {
	h := newHandler(t, []app.Registrar{Health()})

	w := get(h, HealthPath)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "set", version: "1.2.3", want: "1.2.3"},
		{name: "unset", version: "", want: "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, []app.Registrar{Version(config.App{Version: tt.version})})

			w := get(h, VersionPath)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}

func TestDocs(t *testing.T) {
	h := newHandler(t, []app.Registrar{Docs(newDocs(t))})

	t.Run("raw document", func(t *testing.T) {
		w := get(h, DocsJSONPath)

		require.Equal(t, http.StatusOK, w.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
	})

	t.Run("ui index", func(t *testing.T) {
		w := get(h, DocsPrefix+"/index.html")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), DocsJSONPath)
		assert.Equal(t, DocsContentSecurityPolicy, w.Header().Get("Content-Security-Policy"))
	})

	t.Run("prefix redirects to index", func(t *testing.T) {
		for _, target := range []string{DocsPrefix, DocsPrefix + "/"} {
			w := get(h, target)

			assert.Equal(t, http.StatusMovedPermanently, w.Code, target)
			assert.Equal(t, DocsPrefix+"/index.html", w.Header().Get("Location"), target)
		}
	})
}

func TestDocs_AttachFailures(t *testing.T) {
	a := app.New()

	err := a.Register(Docs(openapi.Failed(assert.AnError)))
	assert.ErrorIs(t, err, assert.AnError)

	err = a.Register(Docs(nil))
	assert.ErrorIs(t, err, ErrNoDocumentSource)

	assert.NotContains(t, a.Attachments(), app.RoutesPrefix+"docs")
}

func TestMetrics(t *testing.T) {
	recorder := metrics.New("api-server")
	recorder.Started()
	recorder.Observe(http.MethodGet, HealthPath, http.StatusOK, 0, 15)

	h := newHandler(t, []app.Registrar{Metrics(recorder.Handler())})

	w := get(h, MetricsPath)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `route="/health"`))
}
