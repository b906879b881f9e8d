// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
)

const (
	// DocsPrefix is where the Swagger UI is served.
	DocsPrefix = "/api-docs"

	// DocsJSONPath serves the loaded document as JSON.
	DocsJSONPath = DocsPrefix + "/openapi.json"

	// DocsContentSecurityPolicy lets the Swagger UI run its inline bootstrap
	// script and styles.
	DocsContentSecurityPolicy = "default-src 'self';" +
		"script-src 'self' 'unsafe-inline';" +
		"style-src 'self' 'unsafe-inline';" +
		"img-src 'self' data:;" +
		"frame-ancestors 'self'"

	resolveTimeout = 5 * time.Second
)

// ErrNoDocumentSource is returned by Docs when it has nothing to serve.
var ErrNoDocumentSource = errors.New("no openapi document source")

// Docs registers the raw document at [DocsJSONPath] and the Swagger UI
// under [DocsPrefix], pointed at the raw document.
func Docs(src DocumentSource) app.Registrar {
	return app.Registrar{
		Name: "docs",
		Attach: func(a *app.App) error {
			if src == nil {
				return ErrNoDocumentSource
			}

			ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
			defer cancel()

			provider, err := src.Await(ctx)
			if err != nil {
				return fmt.Errorf("error resolving openapi document: %w", err)
			}
			doc, err := provider.Document().JSON()
			if err != nil {
				return fmt.Errorf("error encoding openapi document: %w", err)
			}

			a.Get(DocsJSONPath, func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				_, err := w.Write(doc)
				return err
			})

			index := func(w http.ResponseWriter, r *http.Request) error {
				http.Redirect(w, r, DocsPrefix+"/index.html", http.StatusMovedPermanently)
				return nil
			}
			a.Get(DocsPrefix, index)
			a.Get(DocsPrefix+"/", index)

			ui := httpSwagger.Handler(httpSwagger.URL(DocsJSONPath))
			a.Get(DocsPrefix+"/*", func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set("Content-Security-Policy", DocsContentSecurityPolicy)
				ui.ServeHTTP(w, r)
				return nil
			})

			return nil
		},
	}
}
