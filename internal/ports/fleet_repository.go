package ports

import (
	"context"

	"logistics-route-service/internal/domain"
)

// Port: read access to the shared vehicle and driver pools.
//
// Selection reads a shared pool; concurrent optimization runs for the same
// warehouse racing for the same unit are resolved at commit time by the
// conditional claim in RouteRepository.CreateWithStops, not here.
type FleetRepository interface {
	// Return the first available vehicle of the given type stationed at
	// the warehouse, or domain.ErrNoVehicleAvailable.
	FirstAvailableVehicle(ctx context.Context, warehouseID int64, t domain.VehicleType) (*domain.Vehicle, error)

	// Return the first available driver based at the warehouse and
	// certified for the vehicle type, or domain.ErrNoDriverAvailable.
	FirstAvailableDriver(ctx context.Context, warehouseID int64, t domain.VehicleType) (*domain.Driver, error)
}
