package bootstrap

//go:generate mockgen -source=interfaces.go -destination=../mock/schema_resolver_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-api-bootstrap/internal/openapi"
)

// SchemaResolver yields the OpenAPI provider once the document is loaded.
// [openapi.Future] implements it.
type SchemaResolver interface {
	// Await blocks until the provider is ready, loading failed, or ctx is
	// done.
	Await(ctx context.Context) (*openapi.Provider, error)
}
