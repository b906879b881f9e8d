package middleware

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/openapi"
)

var errorStatusMap = map[error]int{
	app.ErrRouteNotFound:    http.StatusNotFound,
	app.ErrMethodNotAllowed: http.StatusMethodNotAllowed,
	app.ErrHandlerPanicked:  http.StatusInternalServerError,

	openapi.ErrRequestValidation:    http.StatusBadRequest,
	openapi.ErrResponseValidation:   http.StatusInternalServerError,
	openapi.ErrUnsupportedMediaType: http.StatusUnsupportedMediaType,
	openapi.ErrBodyTooLarge:         http.StatusRequestEntityTooLarge,
}

// StatusFromError returns the status the error handler renders for err.
func StatusFromError(err error) int {
	var httpErr *app.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status >= 400 && httpErr.Status <= 599 {
		return httpErr.Status
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
