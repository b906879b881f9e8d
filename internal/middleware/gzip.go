// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/config"
)

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// NewCompression returns the gzip stage. Responses are compressed when the
// client accepts gzip and the body reaches cfg.MinSize bytes. Nothing is
// sent until the stage has decided, so a handler that writes nothing and
// returns an error leaves the response untouched. Gzip request bodies are
// decoded transparently.
func NewCompression(cfg config.Compression) app.Middleware {
	level := cfg.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	writers := &sync.Pool{
		New: func() any {
			w, err := gzip.NewWriterLevel(nil, level)
			if err != nil {
				w = gzip.NewWriter(nil)
			}
			return w
		},
	}

	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			if hasToken(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil && r.Body != http.NoBody {
				gzipReader := gzipReaderPool.Get().(*gzip.Reader)
				if err := gzipReader.Reset(r.Body); err != nil {
					gzipReaderPool.Put(gzipReader)
					return app.NewHTTPError(http.StatusBadRequest, app.MsgInvalidGzipBody).Wrap(err)
				}

				r.Body = &wrappedReadCloser{
					Reader: gzipReader,
					OnClose: func() {
						gzipReader.Close()
						gzipReaderPool.Put(gzipReader)
					},
				}
				r.Header.Del("Content-Encoding")
				r.Header.Del("Content-Length")
				r.ContentLength = -1
			}

			w.Header().Add("Vary", "Accept-Encoding")
			if !acceptsGzip(r.Header.Get("Accept-Encoding")) || r.Method == http.MethodHead {
				return next(w, r)
			}

			gw := &gzipResponseWriter{
				ResponseWriter: w,
				pool:           writers,
				minSize:        cfg.MinSize,
			}
			err := next(gw, r)
			gw.close()

			return err
		}
	}
}

type wrappedReadCloser struct {
	io.Reader
	OnClose func()
	closed  bool
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil && !w.closed {
		w.closed = true
		w.OnClose()
	}
	return nil
}

// gzipResponseWriter buffers the head of the response until it knows
// whether the body is worth compressing.
type gzipResponseWriter struct {
	http.ResponseWriter

	pool    *sync.Pool
	minSize int

	status      int
	wroteHeader bool
	decided     bool
	buf         []byte
	gz          *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	if statusCode >= 100 && statusCode < 200 && statusCode != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	w.status = statusCode
	w.wroteHeader = true
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	if w.decided {
		if w.gz != nil {
			return w.gz.Write(data)
		}
		return w.ResponseWriter.Write(data)
	}

	w.buf = append(w.buf, data...)
	if len(w.buf) >= w.minSize {
		if err := w.decide(); err != nil {
			return 0, err
		}
	}
	return len(data), nil
}

func (w *gzipResponseWriter) Flush() {
	if w.wroteHeader && !w.decided {
		_ = w.decide()
	}
	if w.gz != nil {
		_ = w.gz.Flush()
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to [http.ResponseController].
func (w *gzipResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// decide sends the held-back status and buffered body, compressed or not.
func (w *gzipResponseWriter) decide() error {
	w.decided = true
	buf := w.buf
	w.buf = nil

	h := w.Header()
	if h.Get("Content-Type") == "" && len(buf) > 0 {
		h.Set("Content-Type", http.DetectContentType(buf))
	}

	if !w.compressible(len(buf)) {
		w.ResponseWriter.WriteHeader(w.status)
		if len(buf) == 0 {
			return nil
		}
		_, err := w.ResponseWriter.Write(buf)
		return err
	}

	h.Set("Content-Encoding", "gzip")
	h.Del("Content-Length")
	w.ResponseWriter.WriteHeader(w.status)

	w.gz = w.pool.Get().(*gzip.Writer)
	w.gz.Reset(w.ResponseWriter)
	_, err := w.gz.Write(buf)
	return err
}

func (w *gzipResponseWriter) compressible(size int) bool {
	if size < w.minSize || size == 0 {
		return false
	}
	if w.status == http.StatusNoContent || w.status == http.StatusNotModified {
		return false
	}
	if w.Header().Get("Content-Encoding") != "" {
		return false
	}
	return true
}

// close finishes the response. A response nobody touched is left alone so
// later error stages can still write one.
func (w *gzipResponseWriter) close() {
	if !w.wroteHeader {
		return
	}
	if !w.decided {
		_ = w.decide()
	}
	if w.gz != nil {
		_ = w.gz.Close()
		w.pool.Put(w.gz)
		w.gz = nil
	}
}

// acceptsGzip parses Accept-Encoding, honouring q=0 exclusions.
func acceptsGzip(header string) bool {
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "gzip" && name != "*" {
			continue
		}

		q := 1.0
		if _, value, ok := strings.Cut(params, "q="); ok {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				q = parsed
			}
		}
		if q > 0 {
			return true
		}
	}
	return false
}

func hasToken(header, token string) bool {
	for _, part := range strings.Split(header, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}
