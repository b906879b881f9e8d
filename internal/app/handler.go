// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "net/http"

// HandlerFunc handles a request and may propagate an error instead of
// writing a response. A propagated error travels to the error stages.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Middleware is one request stage: it receives the rest of the chain and
// returns the handler that runs in its place.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandlerFunc is one error stage. It receives the error propagated by
// the request stages or the previous error stage and returns the error to
// hand to the next error stage, or nil once the error has been dealt with.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error) error

// Registrar attaches one group of endpoints to the application.
type Registrar struct {
	// Name identifies the group in the attachment list and in errors.
	Name string

	// Attach registers the group's handlers on a.
	Attach func(a *App) error
}

// Adapt turns a plain [http.Handler] into a [HandlerFunc] that never
// fails.
func Adapt(h http.Handler) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		h.ServeHTTP(w, r)
		return nil
	}
}
