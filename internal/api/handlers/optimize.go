package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"logistics-route-service/internal/api/dto"
	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/services"
)

// OptimizeHandler triggers one optimization run for a warehouse and date.
type OptimizeHandler struct {
	Optimizer          *services.Optimizer
	DefaultVehicleType string
}

// Optimize maps the outcome taxonomy onto HTTP: no_work is a successful
// empty result, infeasible is unprocessable input, and fleet conflicts are
// 409s. The caller always gets a concrete reason, never a bare failure.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.WarehouseID <= 0 {
		writeError(w, r, http.StatusBadRequest, "warehouse_id is required")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	vehicleType := req.VehicleType
	if vehicleType == "" {
		vehicleType = h.DefaultVehicleType
	}

	summary, err := h.Optimizer.OptimizeRoute(r.Context(), services.OptimizeRequest{
		WarehouseID: req.WarehouseID,
		Date:        date,
		VehicleType: domain.VehicleType(vehicleType),
	})

	switch {
	case errors.Is(err, domain.ErrNoWork):
		writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{Result: "no_work"})
	case errors.Is(err, domain.ErrInfeasible):
		writeError(w, r, http.StatusUnprocessableEntity, "infeasible")
	case errors.Is(err, domain.ErrNoVehicleAvailable):
		writeError(w, r, http.StatusConflict, "no_vehicle_available")
	case errors.Is(err, domain.ErrNoDriverAvailable):
		writeError(w, r, http.StatusConflict, "no_driver_available")
	case errors.Is(err, domain.ErrConcurrentModification):
		writeError(w, r, http.StatusConflict, "concurrent_modification")
	case err != nil:
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	default:
		writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
			Result:           "planned",
			RouteID:          summary.RouteID,
			TotalDistanceKm:  summary.TotalDistanceKm,
			TotalTimeMinutes: summary.TotalTimeMin,
			Stops:            summary.StopCount,
		})
	}
}
