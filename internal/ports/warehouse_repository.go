package ports

import (
	"context"
	"time"

	"logistics-route-service/internal/domain"
)

// Port: read access to the externally owned warehouse store.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Warehouse, error)

	// Return warehouses holding at least one routable order for the date.
	// Drives the daily optimization pass.
	ListWithPendingOrders(ctx context.Context, date time.Time) ([]*domain.Warehouse, error)
}
