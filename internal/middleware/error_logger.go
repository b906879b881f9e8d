// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
)

// NewErrorLogger returns the error stage that logs every propagated error
// and passes it on unchanged: warn level for client errors, error level for
// server errors. The request-scoped logger is preferred over base.
func NewErrorLogger(base *logger.Logger) app.ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, err error) error {
		log := logger.FromRequest(r)
		if log.GetLevel() == zerolog.Disabled {
			log = base
		}

		status := StatusFromError(err)
		event := log.Error()
		if status < http.StatusInternalServerError {
			event = log.Warn()
		}

		event = event.Err(err).
			Int("status", status).
			Str("method", r.Method).
			Str("uri", r.RequestURI)

		var panicErr *app.PanicError
		if errors.As(err, &panicErr) {
			event = event.Str("stack", string(panicErr.Stack))
		}

		event.Msg("request failed")
		return err
	}
}
