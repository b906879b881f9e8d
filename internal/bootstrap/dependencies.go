// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/config"
	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
	"github.com/MKhiriev/go-api-bootstrap/internal/middleware"
	"github.com/MKhiriev/go-api-bootstrap/internal/utils"
)

// Dependencies holds everything Start wires together. Each provider is
// constructed independently by the caller; Start only decides the order.
type Dependencies struct {
	// Server is the listen address and its timeouts.
	Server config.Server

	// Logger receives the startup lines. Nil discards them.
	Logger *logger.Logger

	// Schema yields the OpenAPI metadata and validator middleware.
	Schema SchemaResolver

	RequestLogger   app.Middleware
	SecurityHeaders app.Middleware
	CORS            app.Middleware
	Compression     app.Middleware

	// Routes is the route registry, attached in order.
	Routes []app.Registrar

	ErrorLogger  app.ErrorHandlerFunc
	ErrorHandler app.ErrorHandlerFunc
}

// NewDependencies builds the default providers from cfg. observer receives
// request metrics and may be nil.
func NewDependencies(cfg *config.StructuredConfig, log *logger.Logger, schema SchemaResolver,
	observer middleware.Observer, routes []app.Registrar) Dependencies {
	return Dependencies{
		Server:          cfg.Server,
		Logger:          log,
		Schema:          schema,
		RequestLogger:   middleware.NewRequestLogger(log, utils.NewUUIDGenerator(), observer),
		SecurityHeaders: middleware.NewSecurityHeaders(cfg.Security),
		CORS:            middleware.NewCORS(cfg.CORS),
		Compression:     middleware.NewCompression(cfg.Compression),
		Routes:          routes,
		ErrorLogger:     middleware.NewErrorLogger(log),
		ErrorHandler:    middleware.NewErrorHandler(),
	}
}
