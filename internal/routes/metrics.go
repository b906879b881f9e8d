package routes

import (
	"net/http"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
)

// MetricsPath serves the Prometheus exposition.
const MetricsPath = "/metrics"

// Metrics registers GET /metrics served by h.
func Metrics(h http.Handler) app.Registrar {
	return app.Registrar{
		Name: "metrics",
		Attach: func(a *app.App) error {
			a.Get(MetricsPath, app.Adapt(h))
			return nil
		},
	}
}
