// internal/sheets/handler.go
package sheets

import (
	"encoding/json"
	"net/http"
)

// Handler exposes the manual "Refresh from Sheet" action and the sync banner.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// Sync handles POST /api/sync. A failed sync still answers 200 with the
// status payload; the failure shows up as a banner, not an error page.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	_ = h.Service.Sync(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Service.Status())
}

// Status handles GET /api/sync/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Service.Status())
}
