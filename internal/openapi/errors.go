// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"errors"
	"fmt"
	"strings"
)

// Document errors are returned while loading and compiling a document.
var (
	// ErrInvalidDocument is returned when the document cannot be parsed or
	// its structure is not an OpenAPI 3.x / Swagger 2.0 description.
	ErrInvalidDocument = errors.New("invalid openapi document")

	// ErrUnresolvedRef is returned when a local $ref does not point into
	// the document.
	ErrUnresolvedRef = errors.New("unresolved $ref")

	// ErrInvalidSchema is returned when a schema cannot be compiled.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrFetchDocument is returned when the document cannot be read from
	// its source.
	ErrFetchDocument = errors.New("error fetching openapi document")
)

// Request errors are propagated by the validator middleware.
var (
	// ErrRequestValidation is matched by every request [ValidationError].
	ErrRequestValidation = errors.New("request validation failed")

	// ErrResponseValidation is matched by every response [ValidationError].
	ErrResponseValidation = errors.New("response validation failed")

	// ErrUnsupportedMediaType is returned when the request body media type
	// is not documented for the operation.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrBodyTooLarge is returned when the request body exceeds the
	// configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// ValidationError lists every rule a request or response violated.
type ValidationError struct {
	// Operation is the operationId, or "METHOD /path" when it has none.
	Operation string

	// Details holds one message per violated rule.
	Details []string

	kind error
}

func newRequestError(op *Operation, details []string) *ValidationError {
	return &ValidationError{Operation: op.Name(), Details: details, kind: ErrRequestValidation}
}

func newResponseError(op *Operation, details []string) *ValidationError {
	return &ValidationError{Operation: op.Name(), Details: details, kind: ErrResponseValidation}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v for %s: %s", e.kind, e.Operation, strings.Join(e.Details, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

// IsResponse reports whether the error describes an invalid response.
func (e *ValidationError) IsResponse() bool {
	return e.kind == ErrResponseValidation
}
