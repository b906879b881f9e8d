package routes

import (
	"net/http"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
	"github.com/MKhiriev/go-api-bootstrap/internal/config"
)

// VersionPath serves the build version.
const VersionPath = "/version"

// Version registers GET /version answering the application version as plain
// text, "dev" when unset.
func Version(info config.App) app.Registrar {
	version := info.Version
	if version == "" {
		version = "dev"
	}

	return app.Registrar{
		Name: "version",
		Attach: func(a *app.App) error {
			a.Get(VersionPath, func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				_, err := w.Write([]byte(version))
				return err
			})
			return nil
		},
	}
}
