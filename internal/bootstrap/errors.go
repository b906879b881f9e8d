// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import "errors"

var (
	// ErrNoSchemaResolver is returned when Dependencies.Schema is nil.
	ErrNoSchemaResolver = errors.New("no schema resolver")

	// ErrNoSchemaProvider is returned when the resolver yields neither a
	// provider nor an error.
	ErrNoSchemaProvider = errors.New("schema resolver returned no provider")

	// ErrStartPanicked is returned when initialization panicked.
	ErrStartPanicked = errors.New("initialization panicked")
)
