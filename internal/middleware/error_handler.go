// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/openapi"
	"github.com/MKhiriev/go-api-bootstrap/internal/utils"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// NewErrorHandler returns the terminal error stage. It renders any error as
// an [ErrorResponse] and always reports the error as handled. Server error
// messages are generic. Nothing is written when the response has already
// been committed.
func NewErrorHandler() app.ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, err error) error {
		if app.Committed(w) {
			return nil
		}

		resp := describe(err)
		w.Header().Del("Content-Length")
		w.Header().Del("Content-Encoding")

		if _, werr := utils.WriteJSON(w, resp, resp.Status); werr != nil {
			http.Error(w, http.StatusText(resp.Status), resp.Status)
		}
		return nil
	}
}

func describe(err error) ErrorResponse {
	status := StatusFromError(err)
	resp := ErrorResponse{Status: status, Message: http.StatusText(status), Errors: []string{}}

	var httpErr *app.HTTPError
	var validationErr *openapi.ValidationError

	switch {
	case status >= http.StatusInternalServerError:
		// server errors never leak their cause
	case errors.As(err, &httpErr):
		resp.Message = httpErr.Message
		resp.Errors = append(resp.Errors, httpErr.Details...)
	case errors.As(err, &validationErr):
		resp.Message = app.MsgRequestValidationFailed
		resp.Errors = append(resp.Errors, validationErr.Details...)
	case status != http.StatusNotFound && status != http.StatusMethodNotAllowed:
		resp.Errors = append(resp.Errors, err.Error())
	}

	if resp.Message == "" {
		resp.Message = http.StatusText(status)
	}
	return resp
}
