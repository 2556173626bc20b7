package handlers

import (
	"net/http"
	"time"
)

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// MaintenanceStatus handles GET /api/maintenance
func (h *Handlers) MaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	if h.maintenance == nil {
		h.jsonError(w, "Maintenance scheduler not running", http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, http.StatusOK, h.maintenance.Status())
}

// RunMaintenance handles POST /api/maintenance/run
func (h *Handlers) RunMaintenance(w http.ResponseWriter, r *http.Request) {
	if h.maintenance == nil {
		h.jsonError(w, "Maintenance scheduler not running", http.StatusServiceUnavailable)
		return
	}
	start := time.Now()
	if err := h.maintenance.RunNow(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Manual maintenance run failed")
		h.jsonError(w, "Maintenance failed", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}
