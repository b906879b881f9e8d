// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/config"
)

// DefaultContentSecurityPolicy allows same-origin resources only.
const DefaultContentSecurityPolicy = "default-src 'self';" +
	"base-uri 'self';" +
	"font-src 'self' https: data:;" +
	"form-action 'self';" +
	"frame-ancestors 'self';" +
	"img-src 'self' data:;" +
	"object-src 'none';" +
	"script-src 'self';" +
	"script-src-attr 'none';" +
	"style-src 'self' https: 'unsafe-inline';" +
	"upgrade-insecure-requests"

// NewSecurityHeaders returns the stage that sets the standard set of
// security headers on every response before the next stage runs. Routes may
// override any of them.
func NewSecurityHeaders(cfg config.Security) app.Middleware {
	headers := map[string]string{
		"Content-Security-Policy":           DefaultContentSecurityPolicy,
		"Cross-Origin-Opener-Policy":        "same-origin",
		"Cross-Origin-Resource-Policy":      "same-origin",
		"Origin-Agent-Cluster":              "?1",
		"Referrer-Policy":                   "no-referrer",
		"X-Content-Type-Options":            "nosniff",
		"X-Dns-Prefetch-Control":            "off",
		"X-Download-Options":                "noopen",
		"X-Frame-Options":                   "SAMEORIGIN",
		"X-Permitted-Cross-Domain-Policies": "none",
		"X-Xss-Protection":                  "0",
	}
	if cfg.ContentSecurityPolicy != "" {
		headers["Content-Security-Policy"] = cfg.ContentSecurityPolicy
	}
	if !cfg.DisableHSTS && cfg.HSTSMaxAge > 0 {
		headers["Strict-Transport-Security"] = "max-age=" +
			strconv.FormatInt(int64(cfg.HSTSMaxAge.Seconds()), 10) + "; includeSubDomains"
	}

	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			h := w.Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			h.Del("X-Powered-By")

			return next(w, r)
		}
	}
}
