package api

import (
	"net/http"

	"logistics-route-service/internal/api/handlers"
	"logistics-route-service/internal/ports"
	"logistics-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(
	optimizer *services.Optimizer,
	tracker *services.Tracker,
	routes ports.RouteRepository,
	defaultVehicleType string,
) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{
		Optimizer:          optimizer,
		DefaultVehicleType: defaultVehicleType,
	}
	routeHandler := &handlers.RouteHandler{Routes: routes}
	reconcileHandler := &handlers.ReconcileHandler{Tracker: tracker}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/reconcile", reconcileHandler.Reconcile)
	mux.HandleFunc("/routes", routeHandler.List)
	mux.HandleFunc("/routes/", routeHandler.Get)

	return loggingMiddleware(mux)
}
