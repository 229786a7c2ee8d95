package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"logistics-route-service/internal/config"
	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/platform/obs"
	"logistics-route-service/internal/ports"
)

// Optimizer runs one optimization unit of work end to end: load pending
// orders, build the cost model, search for a tour, and commit it as a
// persisted route. Each run is discrete; the caller (HTTP handler or cron
// job) decides when runs happen and must serialize runs per (warehouse,
// date) if it wants a single active route there.
type Optimizer struct {
	Warehouses ports.WarehouseRepository
	Orders     ports.OrderRepository
	Fleet      ports.FleetRepository
	Routes     ports.RouteRepository
	Planner    config.Planner
}

type OptimizeRequest struct {
	WarehouseID int64
	Date        time.Time
	VehicleType domain.VehicleType
}

// RouteSummary is returned to the caller after a successful commit.
type RouteSummary struct {
	RouteID         string
	TotalDistanceKm float64
	TotalTimeMin    float64
	StopCount       int
}

// OptimizeRoute plans and commits one delivery route.
//
// Outcomes surface through the domain error taxonomy: ErrNoWork when no
// eligible orders exist, ErrInfeasible when no tour satisfies the
// constraints, ErrNoVehicleAvailable / ErrNoDriverAvailable when the fleet
// pool is empty, and ErrConcurrentModification when the claimed vehicle or
// driver was taken between selection and commit. The commit is atomic:
// no outcome leaves partial route or stop state.
func (o *Optimizer) OptimizeRoute(ctx context.Context, req OptimizeRequest) (_ *RouteSummary, err error) {
	defer obs.Time(ctx, "optimize_route")(&err)

	warehouse, err := o.Warehouses.GetByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("optimize route: get warehouse %d: %w", req.WarehouseID, err)
	}

	orders, err := o.Orders.ListPendingForRoute(ctx, req.WarehouseID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("optimize route: list pending orders: %w", err)
	}

	routable := make([]*domain.Order, 0, len(orders))
	for _, ord := range orders {
		if ord.Customer == nil || !ord.Customer.Location.Valid() {
			log.Printf(
				"op=optimize_route warehouse=%s order=%s skipped: invalid customer coordinates",
				warehouse.Code, ord.Number,
			)
			continue
		}
		routable = append(routable, ord)
	}
	if len(routable) == 0 {
		return nil, fmt.Errorf("optimize route: warehouse %s on %s: %w",
			warehouse.Code, req.Date.Format("2006-01-02"), domain.ErrNoWork)
	}

	vehicle, err := o.Fleet.FirstAvailableVehicle(ctx, req.WarehouseID, req.VehicleType)
	if err != nil {
		return nil, fmt.Errorf("optimize route: select vehicle: %w", err)
	}
	driver, err := o.Fleet.FirstAvailableDriver(ctx, req.WarehouseID, req.VehicleType)
	if err != nil {
		return nil, fmt.Errorf("optimize route: select driver: %w", err)
	}

	stops := BuildStops(warehouse, routable, o.Planner)

	locations := make([]domain.Location, len(stops))
	for i, s := range stops {
		locations[i] = s.Location
	}
	matrix := BuildCostMatrix(locations, req.Date, o.Planner)

	cand, err := Solve(ctx, stops, matrix, vehicle, o.Planner)
	if err != nil {
		return nil, fmt.Errorf("optimize route: warehouse %s: %w", warehouse.Code, err)
	}

	route, routeStops := BuildRoute(cand, stops, warehouse, vehicle, driver, req.Date, o.Planner)
	if err := o.Routes.CreateWithStops(ctx, route, routeStops); err != nil {
		return nil, fmt.Errorf("optimize route: commit route %s: %w", route.RouteID, err)
	}

	log.Printf(
		"op=optimize_route warehouse=%s route=%s stops=%d distance_km=%.2f time_min=%.2f",
		warehouse.Code, route.RouteID, len(routeStops), route.TotalDistanceKm, route.EstimatedDurationMin,
	)

	return &RouteSummary{
		RouteID:         route.RouteID,
		TotalDistanceKm: route.TotalDistanceKm,
		TotalTimeMin:    route.EstimatedDurationMin,
		StopCount:       len(routeStops),
	}, nil
}
