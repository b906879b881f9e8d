// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"context"
	"net/http"
)

// Metadata is attached to requests that match a documented operation.
type Metadata struct {
	Operation *Operation

	// PathParams holds the unescaped values of the path template variables.
	PathParams map[string]string

	// Params holds the coerced parameter values, filled in by the validator.
	// It is keyed by location and then by name.
	Params map[string]map[string]any
}

type metadataKey struct{}

// WithMetadata returns a copy of ctx carrying m.
func WithMetadata(ctx context.Context, m *Metadata) context.Context {
	return context.WithValue(ctx, metadataKey{}, m)
}

// MetadataFromContext returns the metadata attached to ctx, if any.
func MetadataFromContext(ctx context.Context) (*Metadata, bool) {
	m, ok := ctx.Value(metadataKey{}).(*Metadata)
	return m, ok && m != nil
}

// MetadataFromRequest is a shortcut for MetadataFromContext(r.Context()).
func MetadataFromRequest(r *http.Request) (*Metadata, bool) {
	return MetadataFromContext(r.Context())
}
