// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
	"github.com/MKhiriev/go-api-bootstrap/internal/utils"
)

// Source describes where a document is loaded from.
type Source struct {
	// Location is a file path or an http(s) URL.
	Location string

	// FetchTimeout bounds reading a remote document.
	FetchTimeout time.Duration

	Options Options
}

// Future is a document being loaded in the background. It resolves exactly
// once, to a [Provider] or to the error that stopped the load.
type Future struct {
	done     chan struct{}
	provider *Provider
	err      error
}

// Load starts reading, parsing, and compiling the document described by src
// and returns immediately.
func Load(ctx context.Context, src Source, log *logger.Logger) *Future {
	if log == nil {
		log = logger.Nop()
	}
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		started := time.Now()
		f.provider, f.err = load(ctx, src)
		if f.err != nil {
			return
		}

		doc := f.provider.Document()
		log.Debug().
			Str("source", src.Location).
			Str("title", doc.Title).
			Str("version", doc.Version).
			Int("operations", len(doc.operations)).
			Dur("took", time.Since(started)).
			Msg("openapi document loaded")
	}()

	return f
}

// Resolved returns a Future that is already resolved to p.
func Resolved(p *Provider) *Future {
	f := &Future{done: make(chan struct{}), provider: p}
	close(f.done)
	return f
}

// Failed returns a Future that is already resolved to err.
func Failed(err error) *Future {
	f := &Future{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Await blocks until the document is resolved or ctx is done.
func (f *Future) Await(ctx context.Context) (*Provider, error) {
	select {
	case <-f.done:
		return f.provider, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func load(ctx context.Context, src Source) (*Provider, error) {
	data, err := read(ctx, src)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", src.Location, err)
	}

	return NewProvider(doc, src.Options), nil
}

func read(ctx context.Context, src Source) ([]byte, error) {
	if isRemote(src.Location) {
		client := utils.NewHTTPClient(
			utils.WithTimeout(src.FetchTimeout),
			utils.WithRetries(2),
			utils.WithUserAgent("go-api-bootstrap"),
		)
		data, err := client.Fetch(ctx, src.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchDocument, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(src.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchDocument, err)
	}
	return data, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
