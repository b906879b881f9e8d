package routes

import (
	"net/http"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/utils"
)

// HealthPath serves the liveness probe.
const HealthPath = "/health"

// Health registers GET /health answering {"status":"ok"}.
func Health() app.Registrar {
	return app.Registrar{
		Name: "health",
		Attach: func(a *app.App) error {
			a.Get(HealthPath, func(w http.ResponseWriter, r *http.Request) error {
				_, err := utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
				return err
			})
			return nil
		},
	}
}
