// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package routes

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/config"
	"github.com/MKhiriev/go-api-bootstrap/internal/openapi"
)

// DocumentSource resolves the document served by [Docs].
type DocumentSource interface {
	Await(ctx context.Context) (*openapi.Provider, error)
}

// Registry returns the built-in route groups in registration order:
// health, version, docs, and, when metrics is non-nil, metrics.
func Registry(info config.App, docs DocumentSource, metrics http.Handler) []app.Registrar {
	registrars := []app.Registrar{
		Health(),
		Version(info),
		Docs(docs),
	}
	if metrics != nil {
		registrars = append(registrars, Metrics(metrics))
	}
	return registrars
}
