// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
	"github.com/MKhiriev/go-api-bootstrap/internal/utils"
)

// TraceIDHeader carries the request trace id in both directions.
const TraceIDHeader = "X-Trace-ID"

// NewRequestLogger returns the request logging stage. Every request gets a
// trace id, reused from [TraceIDHeader] when the client sent a valid UUID,
// and a child logger carrying it in the request context. One line is
// logged per request once the final response, error responses included,
// has been sent. ids and observer may be nil.
func NewRequestLogger(log *logger.Logger, ids utils.IDGenerator, observer Observer) app.Middleware {
	if ids == nil {
		ids = utils.NewUUIDGenerator()
	}

	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			start := time.Now()

			traceID := r.Header.Get(TraceIDHeader)
			if !utils.IsUUID(traceID) {
				traceID = ids.Generate()
			}

			l := log.GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID)
			})
			r = r.WithContext(l.WithContext(r.Context()))
			w.Header().Set(TraceIDHeader, traceID)

			if observer != nil {
				observer.Started()
			}

			uri, method := r.RequestURI, r.Method
			app.OnFinish(r, func(o app.Outcome) {
				duration := time.Since(start)

				l.Info().
					Str("uri", uri).
					Str("method", method).
					Str("route", o.Route).
					Int("status", o.Status).
					Dur("duration", duration).
					Int("size", o.Size).
					AnErr("error", o.Err).
					Send()

				if observer != nil {
					observer.Observe(method, o.Route, o.Status, duration, o.Size)
				}
			})

			return next(w, r)
		}
	}
}
