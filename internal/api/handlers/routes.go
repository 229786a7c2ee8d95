package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"logistics-route-service/internal/api/dto"
	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/ports"
)

// RouteHandler exposes read-only delivery-route retrieval endpoints.
type RouteHandler struct {
	Routes ports.RouteRepository
}

// List returns routes planned for a date (today when unspecified).
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := time.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	routes, err := h.Routes.ListByDate(r.Context(), date)
	if err != nil {
		log.Printf("list routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, route := range routes {
		res.Routes = append(res.Routes, toRouteResponse(route, nil))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one route with its stops, addressed by public route ID.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	routeID := strings.TrimPrefix(r.URL.Path, "/routes/")
	if routeID == "" || strings.Contains(routeID, "/") {
		writeError(w, r, http.StatusNotFound, "route not found")
		return
	}

	route, err := h.Routes.GetByRouteID(r.Context(), routeID)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "route not found")
		return
	}

	stops, err := h.Routes.ListStops(r.Context(), route.ID)
	if err != nil {
		log.Printf("list stops failed: route=%s err=%v", routeID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(route, stops))
}

func toRouteResponse(route *domain.DeliveryRoute, stops []*domain.RouteStop) dto.RouteResponse {
	res := dto.RouteResponse{
		RouteID:              route.RouteID,
		WarehouseID:          route.WarehouseID,
		VehicleID:            route.VehicleID,
		DriverID:             route.DriverID,
		PlannedDate:          route.PlannedDate.Format("2006-01-02"),
		Status:               string(route.Status),
		TotalDistanceKm:      route.TotalDistanceKm,
		OptimalDistanceKm:    route.OptimalDistanceKm,
		EstimatedDurationMin: route.EstimatedDurationMin,
		ActualDurationMin:    route.ActualDurationMin,
		PathEncoding:         route.PathEncoding,
		EfficiencyScore:      route.EfficiencyScore(stops),
	}

	for _, s := range stops {
		res.Stops = append(res.Stops, dto.RouteStopResponse{
			OrderID:          s.OrderID,
			Sequence:         s.Sequence,
			EstimatedArrival: s.EstimatedArrival,
			ActualArrival:    s.ActualArrival,
			DeliveryStatus:   string(s.DeliveryStatus),
		})
	}

	return res
}
