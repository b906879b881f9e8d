// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "net/http"

// responseWriter is a thin decorator around [http.ResponseWriter] that
// intercepts WriteHeader and Write calls to capture response metadata.
//
// The composed application handler wraps the transport writer with it once
// per request, so error stages can tell whether a response was already
// committed and finish hooks can observe the final status and size.
//
// responseWriter forwards WriteHeader to the underlying writer exactly once;
// subsequent calls are ignored, mirroring the [http.ResponseWriter] contract.
type responseWriter struct {
	http.ResponseWriter

	// status is the HTTP status code recorded on the first WriteHeader call.
	status int

	// wroteHeader reports whether WriteHeader has already been called.
	wroteHeader bool

	// size is the running total of bytes written to the response body.
	size int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

// WriteHeader records the status code and forwards it to the underlying
// writer exactly once.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write writes b to the underlying writer, implicitly sending a 200 status
// first when no status was written yet.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Flush implements [http.Flusher] when the underlying writer does.
func (w *responseWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to [http.ResponseController].
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Written reports whether the response status has been committed.
func (w *responseWriter) Written() bool {
	return w.wroteHeader
}

// Status returns the committed status, or 200 when the handler never wrote
// one (net/http sends 200 in that case).
func (w *responseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Size returns the number of body bytes written.
func (w *responseWriter) Size() int {
	return w.size
}

type committer interface {
	Written() bool
}

type unwrapper interface {
	Unwrap() http.ResponseWriter
}

// Committed reports whether a response status has already been sent on w or
// on any writer it wraps. Error stages use it to avoid writing a second
// response.
func Committed(w http.ResponseWriter) bool {
	for w != nil {
		if c, ok := w.(committer); ok {
			return c.Written()
		}
		u, ok := w.(unwrapper)
		if !ok {
			return false
		}
		w = u.Unwrap()
	}
	return false
}
