// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"
	"fmt"
	"net/http"
)

// Attachment errors are accumulated by [App] and returned by [App.Handler].
var (
	// ErrAttachmentOrder is returned when a middleware is attached after
	// routes, or a route group after the error stages.
	ErrAttachmentOrder = errors.New("attachment out of order")

	// ErrNilAttachment is returned when a nil middleware, error handler, or
	// registrar function is attached.
	ErrNilAttachment = errors.New("nil attachment")

	// ErrRegistrarPanicked is returned when a route registrar panics, for
	// example because chi rejected a malformed pattern.
	ErrRegistrarPanicked = errors.New("route registrar panicked")
)

// Request errors propagated to the error stages by the router.
var (
	// ErrRouteNotFound is propagated when no route matches the path.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMethodNotAllowed is propagated when the path matches a route that
	// does not serve the request method.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrHandlerPanicked is matched by every [PanicError].
	ErrHandlerPanicked = errors.New("handler panicked")
)

// HTTPError is an error carrying the status and client-facing message the
// terminal error handler should render.
type HTTPError struct {
	// Status is the HTTP status code.
	Status int

	// Message is safe to show to the client.
	Message string

	// Details lists individual problems, e.g. failed validation rules.
	Details []string

	// Err is the underlying cause, never shown to the client.
	Err error
}

// NewHTTPError returns an *HTTPError with the given status. An empty message
// defaults to the status text.
func NewHTTPError(status int, message string, details ...string) *HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &HTTPError{Status: status, Message: message, Details: details}
}

// Wrap sets the underlying cause and returns e.
func (e *HTTPError) Wrap(err error) *HTTPError {
	e.Err = err
	return e
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking handler or stage.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanicked
}
