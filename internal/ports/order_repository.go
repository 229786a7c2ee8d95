package ports

import (
	"context"
	"time"

	"logistics-route-service/internal/domain"
)

// Port: read access to the externally owned order store.
type OrderRepository interface {
	// Return orders eligible for routing: status processing or packed,
	// expected for delivery on the given date from the given warehouse.
	// Customer and line items are populated on every returned order.
	ListPendingForRoute(ctx context.Context, warehouseID int64, date time.Time) ([]*domain.Order, error)
}
