package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"logistics-route-service/internal/domain"
)

// Postgres-backed implementation of the OrderRepository port.
type PostgresOrderRepository struct{ DB *sql.DB }

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// Return routable orders (processing or packed) expected on the given date,
// with customer and line items populated.
func (r *PostgresOrderRepository) ListPendingForRoute(ctx context.Context, warehouseID int64, date time.Time) ([]*domain.Order, error) {
	if r.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	query := `
	SELECT
		o.id, o.order_number, o.warehouse_id, o.status, o.expected_delivery_date,
		c.id, c.name, c.address, c.latitude, c.longitude, c.preferred_window
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
	WHERE o.warehouse_id = $1
	  AND o.status IN ('processing', 'packed')
	  AND o.expected_delivery_date = $2
	ORDER BY o.id;
	`
	rows, err := r.DB.QueryContext(ctx, query, warehouseID, date)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 32)
	for rows.Next() {
		o := &domain.Order{Customer: &domain.Customer{}}
		err := rows.Scan(
			&o.ID, &o.Number, &o.WarehouseID, &o.Status, &o.ExpectedDeliveryDate,
			&o.Customer.ID, &o.Customer.Name, &o.Customer.Address,
			&o.Customer.Location.Lat, &o.Customer.Location.Lon,
			&o.Customer.PreferredWindow,
		)
		if err != nil {
			return nil, fmt.Errorf("list pending orders: scan row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending orders: row iteration: %w", err)
	}

	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *PostgresOrderRepository) loadItems(ctx context.Context, o *domain.Order) error {
	query := `
	SELECT product_sku, quantity, unit_weight, unit_volume
	FROM order_items
	WHERE order_id = $1
	ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, query, o.ID)
	if err != nil {
		return fmt.Errorf("list pending orders: query items for order %d: %w", o.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductSKU, &it.Quantity, &it.UnitWeight, &it.UnitVolume); err != nil {
			return fmt.Errorf("list pending orders: scan item for order %d: %w", o.ID, err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list pending orders: item iteration for order %d: %w", o.ID, err)
	}

	return nil
}
