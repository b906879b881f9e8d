// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/config"
)

func serveSecurity(t *testing.T, cfg config.Security, route app.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	h := compose(t, func(a *app.App) {
		a.Use("security", NewSecurityHeaders(cfg))
		_ = a.Register(app.Registrar{Name: "root", Attach: func(a *app.App) error {
			a.Get("/", route)
			return nil
		}})
	})

	w := httptest.NewRecorder()
	w.Header().Set("X-Powered-By", "Express")
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestSecurityHeaders_Defaults(t *testing.T) {
	w := serveSecurity(t, config.Security{HSTSMaxAge: 180 * 24 * time.Hour}, okRoute)

	want := map[string]string{
		"Content-Security-Policy":           DefaultContentSecurityPolicy,
		"Cross-Origin-Opener-Policy":        "same-origin",
		"Cross-Origin-Resource-Policy":      "same-origin",
		"Origin-Agent-Cluster":              "?1",
		"Referrer-Policy":                   "no-referrer",
		"Strict-Transport-Security":         "max-age=15552000; includeSubDomains",
		"X-Content-Type-Options":            "nosniff",
		"X-DNS-Prefetch-Control":            "off",
		"X-Download-Options":                "noopen",
		"X-Frame-Options":                   "SAMEORIGIN",
		"X-Permitted-Cross-Domain-Policies": "none",
		"X-XSS-Protection":                  "0",
	}
	for k, v := range want {
		assert.Equal(t, v, w.Header().Get(k), k)
	}
	assert.Empty(t, w.Header().Get("X-Powered-By"))
}

func TestSecurityHeaders_Config(t *testing.T) {
	w := serveSecurity(t, config.Security{
		ContentSecurityPolicy: "default-src 'none'",
		HSTSMaxAge:            time.Hour,
		DisableHSTS:           true,
	}, okRoute)

	assert.Equal(t, "default-src 'none'", w.Header().Get("Content-Security-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_RouteOverride(t *testing.T) {
	w := serveSecurity(t, config.Security{}, func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Security-Policy", "default-src 'self' 'unsafe-inline'")
		return okRoute(w, r)
	})

	assert.Equal(t, "default-src 'self' 'unsafe-inline'", w.Header().Get("Content-Security-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "zero max-age sends no HSTS")
}

func okRoute(w http.ResponseWriter, r *http.Request) error {
	_, err := w.Write([]byte("ok"))
	return err
}
