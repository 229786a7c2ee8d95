package ports

import (
	"context"
	"time"

	"logistics-route-service/internal/domain"
)

// Port: persistence for delivery routes and their stops.
type RouteRepository interface {
	// Persist a route with its stops in a single transaction. The same
	// transaction claims the assigned vehicle (available -> in_transit)
	// and driver (available -> on_delivery) conditionally, and advances
	// every stop's order to shipped. If the vehicle or driver is no
	// longer available, nothing is written and the call fails with
	// domain.ErrConcurrentModification.
	CreateWithStops(ctx context.Context, route *domain.DeliveryRoute, stops []*domain.RouteStop) error

	GetByRouteID(ctx context.Context, routeID string) (*domain.DeliveryRoute, error)

	ListByDate(ctx context.Context, date time.Time) ([]*domain.DeliveryRoute, error)

	// Return every route currently in progress, any date.
	ListInProgress(ctx context.Context) ([]*domain.DeliveryRoute, error)

	// Return the stops of a route ordered by sequence.
	ListStops(ctx context.Context, routeID int64) ([]*domain.RouteStop, error)

	// Transition a stop to delivered, stamp its actual arrival, and mirror
	// the owning order (status delivered, actual delivery date). Atomic.
	MarkStopDelivered(ctx context.Context, stopID int64, at time.Time) error

	// Transition a route to completed and stamp its end time and actual
	// duration (nil when the route has no recorded start).
	CompleteRoute(ctx context.Context, routeID int64, at time.Time, actualDurationMin *float64) error
}
