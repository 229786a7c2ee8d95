package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"logistics-route-service/internal/domain"
)

// Postgres-backed implementation of the WarehouseRepository port.
type PostgresWarehouseRepository struct{ DB *sql.DB }

func NewPostgresWarehouseRepository(db *sql.DB) *PostgresWarehouseRepository {
	return &PostgresWarehouseRepository{DB: db}
}

func (r *PostgresWarehouseRepository) GetByID(ctx context.Context, id int64) (*domain.Warehouse, error) {
	query := `
	SELECT id, code, name, address, latitude, longitude
	FROM warehouses
	WHERE id = $1;
	`
	w := &domain.Warehouse{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.Code, &w.Name, &w.Address, &w.Location.Lat, &w.Location.Lon,
	)
	if err != nil {
		return nil, fmt.Errorf("get warehouse %d: %w", id, err)
	}

	return w, nil
}

// Return warehouses holding at least one routable order for the date.
func (r *PostgresWarehouseRepository) ListWithPendingOrders(ctx context.Context, date time.Time) ([]*domain.Warehouse, error) {
	query := `
	SELECT DISTINCT w.id, w.code, w.name, w.address, w.latitude, w.longitude
	FROM warehouses w
	JOIN orders o ON o.warehouse_id = w.id
	WHERE o.status IN ('processing', 'packed')
	  AND o.expected_delivery_date = $1
	ORDER BY w.id;
	`
	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list warehouses with pending orders: query: %w", err)
	}
	defer rows.Close()

	warehouses := make([]*domain.Warehouse, 0, 8)
	for rows.Next() {
		w := &domain.Warehouse{}
		err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.Location.Lat, &w.Location.Lon)
		if err != nil {
			return nil, fmt.Errorf("list warehouses with pending orders: scan row: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warehouses with pending orders: row iteration: %w", err)
	}

	return warehouses, nil
}
