package handlers

import (
	"log"
	"net/http"
	"time"

	"logistics-route-service/internal/api/dto"
	"logistics-route-service/internal/services"
)

// ReconcileHandler triggers a delivery reconciliation pass on demand,
// the same pass the scheduler runs periodically.
type ReconcileHandler struct {
	Tracker *services.Tracker
}

func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	delivered, err := h.Tracker.ReconcileDeliveries(r.Context(), time.Now())
	if err != nil {
		log.Printf("reconcile failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ReconcileResponse{DeliveredStops: delivered})
}
