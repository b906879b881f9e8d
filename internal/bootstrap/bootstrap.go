// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
	"github.com/MKhiriev/go-api-bootstrap/internal/server"
)

// Attachment names, in the order Start attaches them. Route groups appear
// between AttachOpenAPIValidator and AttachErrorLogger as
// app.RoutesPrefix+name.
const (
	AttachRequestLogger    = "logger"
	AttachSecurityHeaders  = "security"
	AttachCORS             = "cors"
	AttachCompression      = "compression"
	AttachOpenAPIMetadata  = "openapi-metadata"
	AttachOpenAPIValidator = "openapi-validator"
	AttachErrorLogger      = "error-logger"
	AttachErrorHandler     = "error-handler"
)

// Result is the outcome of Start. On success Server is bound and serving;
// on failure Err is set and nothing is listening.
type Result struct {
	// App is the assembled instance, nil when the schema never resolved.
	App *app.App

	// Server is the running server, nil on failure.
	Server *server.HTTPServer

	// URL is "http://localhost:<port>" with the bound port.
	URL string

	Err error
}

// Start resolves the schema provider, assembles the application instance,
// and binds the listener. Awaiting the schema is the only blocking step;
// serving continues in the background after Start returns.
//
// Exactly one line is logged: "Listening on http://localhost:<port>" at
// info level, or "Initialization error: <cause>" at error level. Start
// never panics.
func Start(ctx context.Context, deps Dependencies) (res Result) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	defer func() {
		if p := recover(); p != nil {
			res = Result{App: res.App, Err: fmt.Errorf("%w: %v", ErrStartPanicked, p)}
		}
		if res.Err != nil {
			log.Error().Err(res.Err).Msgf("Initialization error: %v", res.Err)
		}
	}()

	if deps.Schema == nil {
		return Result{Err: ErrNoSchemaResolver}
	}
	provider, err := deps.Schema.Await(ctx)
	if err != nil {
		return Result{Err: fmt.Errorf("error resolving openapi schema: %w", err)}
	}
	if provider == nil {
		return Result{Err: ErrNoSchemaProvider}
	}

	a := app.New()
	res.App = a

	a.Use(AttachRequestLogger, deps.RequestLogger)
	a.Use(AttachSecurityHeaders, deps.SecurityHeaders)
	a.Use(AttachCORS, deps.CORS)
	a.Use(AttachCompression, deps.Compression)
	a.Use(AttachOpenAPIMetadata, provider.Metadata())
	a.Use(AttachOpenAPIValidator, provider.Validator())

	for _, reg := range deps.Routes {
		// failures accumulate in a and surface from Handler
		_ = a.Register(reg)
	}

	a.UseError(AttachErrorLogger, deps.ErrorLogger)
	a.UseError(AttachErrorHandler, deps.ErrorHandler)

	handler, err := a.Handler()
	if err != nil {
		return Result{App: a, Err: err}
	}

	srv := server.NewHTTPServer(handler, deps.Server, log)
	if err := srv.Start(); err != nil {
		return Result{App: a, Err: err}
	}

	url := fmt.Sprintf("http://localhost:%d", srv.Port())
	log.Info().Msgf("Listening on %s", url)

	return Result{App: a, Server: srv, URL: url}
}
