package server

import (
	"context"
	"net"
)

// Server defines the lifecycle contract of the listener managed by this
// package.
type Server interface {
	// Start binds the listen address and begins serving in the background.
	Start() error

	// Addr returns the bound address, nil before Start.
	Addr() net.Addr

	// Run blocks until ctx is done or serving fails, then shuts down
	// gracefully.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}
