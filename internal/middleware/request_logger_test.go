// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
	"github.com/MKhiriev/go-api-bootstrap/internal/mock"
)

const fixedTraceID = "0190a5f2-6c1e-7c3a-9f4e-2b8d1c0e5a77"

func TestRequestLogger_LogsOneLinePerRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ids := mock.NewMockIDGenerator(ctrl)
	ids.EXPECT().Generate().Return("generated-id")

	observer := mock.NewMockObserver(ctrl)
	gomock.InOrder(
		observer.EXPECT().Started(),
		observer.EXPECT().Observe(http.MethodGet, "/items/{id}", http.StatusOK, gomock.Any(), 2),
	)

	var buf bytes.Buffer
	log := logger.NewLoggerWithWriter("test", &buf)

	h := compose(t, func(a *app.App) {
		a.Use("logger", NewRequestLogger(log, ids, observer))
		_ = a.Register(app.Registrar{Name: "items", Attach: func(a *app.App) error {
			a.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) error {
				logger.FromRequest(r).Debug().Msg("inside route")
				_, err := w.Write([]byte("ok"))
				return err
			})
			return nil
		}})
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/7?x=1", nil))

	assert.Equal(t, "generated-id", w.Header().Get(TraceIDHeader))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "inside route", lines[0]["message"])
	assert.Equal(t, "generated-id", lines[0]["trace_id"], "the route logger carries the trace id")

	access := lines[1]
	assert.Equal(t, "info", access["level"])
	assert.Equal(t, "/items/7?x=1", access["uri"])
	assert.Equal(t, "GET", access["method"])
	assert.Equal(t, "/items/{id}", access["route"])
	assert.Equal(t, float64(200), access["status"])
	assert.Equal(t, float64(2), access["size"])
	assert.Equal(t, "generated-id", access["trace_id"])
	assert.Contains(t, access, "duration")
	assert.NotContains(t, access, "error")
}

func TestRequestLogger_TraceIDFromClient(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		want     string
	}{
		{name: "valid uuid is reused", incoming: fixedTraceID, want: fixedTraceID},
		{name: "garbage is replaced", incoming: "<script>", want: "generated-id"},
		{name: "missing is generated", incoming: "", want: "generated-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ids := mock.NewMockIDGenerator(ctrl)
			ids.EXPECT().Generate().Return("generated-id").MaxTimes(1)

			h := compose(t, func(a *app.App) {
				a.Use("logger", NewRequestLogger(logger.Nop(), ids, nil))
			})

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				r.Header.Set(TraceIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Header().Get(TraceIDHeader))
		})
	}
}

func TestRequestLogger_SeesFinalErrorResponse(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLoggerWithWriter("test", &buf)

	h := compose(t, func(a *app.App) {
		a.Use("logger", NewRequestLogger(log, nil, nil))
		_ = a.Register(app.Registrar{Name: "teapot", Attach: func(a *app.App) error {
			a.Get("/teapot", func(w http.ResponseWriter, r *http.Request) error {
				return app.NewHTTPError(http.StatusTeapot, "")
			})
			return nil
		}})
		a.UseError("error-handler", NewErrorHandler())
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	require.Equal(t, http.StatusTeapot, w.Code)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(http.StatusTeapot), lines[0]["status"])
	assert.Equal(t, float64(w.Body.Len()), lines[0]["size"])
	assert.Contains(t, lines[0]["error"], "418")
	assert.Len(t, lines[0]["trace_id"], 36)
}
