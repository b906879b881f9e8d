package server

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
)

// Run serves until ctx is done or Serve fails, then shuts the server down
// gracefully within the configured shutdown timeout. Run starts the server
// itself when Start has not been called.
func (h *HTTPServer) Run(ctx context.Context) error {
	if h.Addr() == nil {
		if err := h.Start(); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	// serving
	g.Go(func() error {
		<-h.serveDone
		return h.serveErr
	})

	// stop on cancellation
	g.Go(func() error {
		select {
		case <-h.serveDone:
			return nil
		case <-gctx.Done():
		}
		return h.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		h.logger.Error().Err(err).Msg("Error running server")
		return err
	}

	h.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

// newErrorLog routes net/http's internal errors (TLS handshakes, accept
// failures) to l at error level.
func newErrorLog(l *logger.Logger) *log.Logger {
	return log.New(errorWriter{l}, "", 0)
}

type errorWriter struct {
	l *logger.Logger
}

func (w errorWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.l.Error().Str("source", "net/http").Msg(msg)
	return len(p), nil
}
