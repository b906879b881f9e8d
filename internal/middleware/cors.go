// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/config"
)

type corsPolicy struct {
	allowAll         bool
	origins          map[string]struct{}
	methods          string
	headers          string
	maxAge           string
	allowCredentials bool
}

// NewCORS returns the cross-origin stage. With the "*" origin every response
// allows any origin; otherwise an allowed Origin is echoed back together
// with "Vary: Origin". Preflight requests are answered with 204 and never
// reach later stages.
func NewCORS(cfg config.CORS) app.Middleware {
	p := &corsPolicy{
		origins:          make(map[string]struct{}, len(cfg.AllowedOrigins)),
		methods:          strings.Join(cfg.AllowedMethods, ","),
		headers:          strings.Join(cfg.AllowedHeaders, ","),
		allowCredentials: cfg.AllowCredentials,
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			p.allowAll = true
			continue
		}
		p.origins[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.FormatInt(int64(cfg.MaxAge.Seconds()), 10)
	}

	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			p.allowOrigin(w.Header(), r.Header.Get("Origin"))

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				p.preflight(w, r)
				return nil
			}

			return next(w, r)
		}
	}
}

func (p *corsPolicy) allowOrigin(h http.Header, origin string) {
	switch {
	case p.allowAll && !p.allowCredentials:
		h.Set("Access-Control-Allow-Origin", "*")
	case origin == "":
		return
	case p.allowAll || p.allowed(origin):
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
	default:
		h.Add("Vary", "Origin")
		return
	}

	if p.allowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
}

func (p *corsPolicy) allowed(origin string) bool {
	_, ok := p.origins[strings.ToLower(origin)]
	return ok
}

func (p *corsPolicy) preflight(w http.ResponseWriter, r *http.Request) {
	h := w.Header()

	h.Set("Access-Control-Allow-Methods", p.methods)
	if p.headers != "" {
		h.Set("Access-Control-Allow-Headers", p.headers)
	} else if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
		h.Set("Access-Control-Allow-Headers", requested)
		h.Add("Vary", "Access-Control-Request-Headers")
	}
	if p.maxAge != "" {
		h.Set("Access-Control-Max-Age", p.maxAge)
	}
	h.Set("Content-Length", "0")

	w.WriteHeader(http.StatusNoContent)
}
