// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"bytes"
	"net/http"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
)

// Options tune the validator.
type Options struct {
	// ValidateResponses buffers every documented response and checks it
	// before it is sent.
	ValidateResponses bool

	// MaxBodyBytes caps the request body the validator buffers. Zero or
	// less disables the cap.
	MaxBodyBytes int64
}

// Provider builds the metadata and validator middlewares for one document.
type Provider struct {
	doc  *Document
	opts Options
}

// NewProvider returns a Provider serving doc.
func NewProvider(doc *Document, opts Options) *Provider {
	return &Provider{doc: doc, opts: opts}
}

// Document returns the document the provider serves.
func (p *Provider) Document() *Document {
	return p.doc
}

// Metadata returns the middleware that matches each request against the
// documented operations and attaches the result as [Metadata]. Requests
// matching nothing pass through untouched.
func (p *Provider) Metadata() app.Middleware {
	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			op, params, ok := p.doc.Match(r.Method, r.URL.EscapedPath())
			if !ok {
				return next(w, r)
			}

			log := logger.FromRequest(r)
			log.Debug().Str("operation", op.Name()).Msg("matched documented operation")

			m := &Metadata{Operation: op, PathParams: params}
			return next(w, r.WithContext(WithMetadata(r.Context(), m)))
		}
	}
}

// Validator returns the middleware that validates requests carrying
// [Metadata]. An invalid request is propagated as an error without calling
// the next stage. With [Options.ValidateResponses] set, responses are
// buffered and an invalid one is replaced by a propagated error.
func (p *Provider) Validator() app.Middleware {
	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			m, ok := MetadataFromRequest(r)
			if !ok {
				return next(w, r)
			}

			if err := p.validateRequest(r, m); err != nil {
				return err
			}

			if !p.opts.ValidateResponses {
				return next(w, r)
			}
			return p.checkResponse(next, w, r, m.Operation)
		}
	}
}

func (p *Provider) checkResponse(next app.HandlerFunc, w http.ResponseWriter, r *http.Request, op *Operation) error {
	buf := &bufferedWriter{ResponseWriter: w}
	if err := next(buf, r); err != nil {
		return err
	}

	status := buf.status
	if status == 0 {
		status = http.StatusOK
	}

	if err := validateResponse(op, status, w.Header(), buf.body.Bytes()); err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("response does not match the document")
		w.Header().Del("Content-Length")
		return err
	}

	w.WriteHeader(status)
	_, err := w.Write(buf.body.Bytes())
	return err
}

// bufferedWriter holds the response back until it has been validated.
type bufferedWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *bufferedWriter) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// Flush is a no-op: nothing leaves the buffer before validation.
func (b *bufferedWriter) Flush() {}
