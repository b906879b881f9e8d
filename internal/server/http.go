package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-api-bootstrap/internal/config"
	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
)

// HTTPServer serves one handler on one TCP listener.
type HTTPServer struct {
	server          *http.Server
	shutdownTimeout time.Duration
	logger          *logger.Logger

	mu        sync.Mutex
	listener  net.Listener
	serveDone chan struct{}
	serveErr  error
}

var _ Server = (*HTTPServer)(nil)

// NewHTTPServer prepares a server for handler on cfg.Host:cfg.Port. Nothing
// is bound until Start.
func NewHTTPServer(handler http.Handler, cfg config.Server, log *logger.Logger) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ErrorLog:          newErrorLog(log),
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          log,
	}
}

func (h *HTTPServer) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listener != nil {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrBind, h.server.Addr, err)
	}
	h.listener = ln
	h.serveDone = make(chan struct{})

	go func() {
		defer close(h.serveDone)
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.serveErr = fmt.Errorf("HTTP server Serve: %w", err)
		}
	}()

	return nil
}

func (h *HTTPServer) Addr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

// Port returns the bound TCP port, 0 before Start.
func (h *HTTPServer) Port() int {
	if addr, ok := h.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

func (h *HTTPServer) Shutdown(ctx context.Context) error {
	if h.Addr() == nil {
		return errNotStarted
	}

	if h.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.shutdownTimeout)
		defer cancel()
	}

	h.logger.Info().Msg("HTTP server Shutdown")
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	return nil
}
