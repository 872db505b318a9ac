package web

import (
	"io/fs"
	"net/http"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

// RegisterRoutes registers the settings page routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET "+model.SettingsPagePath, h.SettingsPage)
	mux.HandleFunc("POST "+model.SettingsPagePath, h.SaveSettings)
	mux.Handle("GET /{$}", http.RedirectHandler(model.SettingsPagePath, http.StatusSeeOther))
}
