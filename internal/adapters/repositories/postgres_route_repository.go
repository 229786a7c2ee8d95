package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"logistics-route-service/internal/domain"
)

// Postgres-backed implementation of the RouteRepository port.
type PostgresRouteRepository struct{ DB *sql.DB }

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db}
}

// CreateWithStops persists a route atomically: claim vehicle and driver with
// conditional updates, insert the route and its stops, and advance every
// stop's order to shipped. Any failure rolls the whole commit back.
func (r *PostgresRouteRepository) CreateWithStops(ctx context.Context, route *domain.DeliveryRoute, stops []*domain.RouteStop) error {
	if r.DB == nil {
		return errors.New("route repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if route.VehicleID != nil {
		res, err := tx.ExecContext(ctx,
			`UPDATE vehicles SET status = 'in_transit' WHERE id = $1 AND status = 'available'`,
			*route.VehicleID,
		)
		if err != nil {
			return fmt.Errorf("create route: claim vehicle %d: %w", *route.VehicleID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("create route: claim vehicle %d: %w", *route.VehicleID, domain.ErrConcurrentModification)
		}
	}

	if route.DriverID != nil {
		res, err := tx.ExecContext(ctx,
			`UPDATE drivers SET status = 'on_delivery' WHERE id = $1 AND status = 'available'`,
			*route.DriverID,
		)
		if err != nil {
			return fmt.Errorf("create route: claim driver %d: %w", *route.DriverID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("create route: claim driver %d: %w", *route.DriverID, domain.ErrConcurrentModification)
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO delivery_routes (
			route_id, warehouse_id, vehicle_id, driver_id, planned_date,
			status, total_distance, optimal_distance, estimated_duration, path_encoding, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		route.RouteID, route.WarehouseID, route.VehicleID, route.DriverID, route.PlannedDate,
		route.Status, route.TotalDistanceKm, route.OptimalDistanceKm, route.EstimatedDurationMin,
		route.PathEncoding, route.Notes,
	).Scan(&route.ID)
	if err != nil {
		return fmt.Errorf("create route: insert route %s: %w", route.RouteID, err)
	}

	for _, s := range stops {
		s.RouteID = route.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO route_stops (
				route_id, order_id, sequence, estimated_arrival, delivery_status, proof_of_delivery
			)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			s.RouteID, s.OrderID, s.Sequence, s.EstimatedArrival, s.DeliveryStatus, s.ProofOfDelivery,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("create route: insert stop %d: %w", s.Sequence, err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = 'shipped' WHERE id = $1`, s.OrderID,
		); err != nil {
			return fmt.Errorf("create route: ship order %d: %w", s.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create route: commit tx: %w", err)
	}

	return nil
}

const routeColumns = `
	id, route_id, warehouse_id, vehicle_id, driver_id, planned_date,
	start_time, end_time, status, total_distance, optimal_distance,
	estimated_duration, actual_duration, path_encoding, notes`

func scanRoute(row interface{ Scan(...any) error }) (*domain.DeliveryRoute, error) {
	r := &domain.DeliveryRoute{}
	err := row.Scan(
		&r.ID, &r.RouteID, &r.WarehouseID, &r.VehicleID, &r.DriverID, &r.PlannedDate,
		&r.StartTime, &r.EndTime, &r.Status, &r.TotalDistanceKm, &r.OptimalDistanceKm,
		&r.EstimatedDurationMin, &r.ActualDurationMin, &r.PathEncoding, &r.Notes,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PostgresRouteRepository) GetByRouteID(ctx context.Context, routeID string) (*domain.DeliveryRoute, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+routeColumns+` FROM delivery_routes WHERE route_id = $1`, routeID,
	)
	route, err := scanRoute(row)
	if err != nil {
		return nil, fmt.Errorf("get route %s: %w", routeID, err)
	}
	return route, nil
}

func (r *PostgresRouteRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.DeliveryRoute, error) {
	return r.list(ctx,
		`SELECT `+routeColumns+` FROM delivery_routes WHERE planned_date = $1 ORDER BY id`, date)
}

func (r *PostgresRouteRepository) ListInProgress(ctx context.Context) ([]*domain.DeliveryRoute, error) {
	return r.list(ctx,
		`SELECT `+routeColumns+` FROM delivery_routes WHERE status = 'in_progress' ORDER BY id`)
}

func (r *PostgresRouteRepository) list(ctx context.Context, query string, args ...any) ([]*domain.DeliveryRoute, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list routes: query: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.DeliveryRoute, 0, 16)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return routes, nil
}

// Return the stops of a route ordered by sequence.
func (r *PostgresRouteRepository) ListStops(ctx context.Context, routeID int64) ([]*domain.RouteStop, error) {
	query := `
	SELECT id, route_id, order_id, sequence, estimated_arrival, actual_arrival,
	       delivery_status, proof_of_delivery
	FROM route_stops
	WHERE route_id = $1
	ORDER BY sequence;
	`
	rows, err := r.DB.QueryContext(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("list stops: query route %d: %w", routeID, err)
	}
	defer rows.Close()

	stops := make([]*domain.RouteStop, 0, 16)
	for rows.Next() {
		s := &domain.RouteStop{}
		err := rows.Scan(
			&s.ID, &s.RouteID, &s.OrderID, &s.Sequence, &s.EstimatedArrival,
			&s.ActualArrival, &s.DeliveryStatus, &s.ProofOfDelivery,
		)
		if err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}

// MarkStopDelivered advances a stop and its order together. The status
// guard makes re-delivery a no-op, so reconciliation stays idempotent.
func (r *PostgresRouteRepository) MarkStopDelivered(ctx context.Context, stopID int64, at time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark stop delivered: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		UPDATE route_stops
		SET delivery_status = 'delivered', actual_arrival = $2
		WHERE id = $1 AND delivery_status = 'out_for_delivery'
		RETURNING order_id`,
		stopID, at,
	).Scan(&orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // already delivered or not yet out for delivery
	}
	if err != nil {
		return fmt.Errorf("mark stop delivered: update stop %d: %w", stopID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = 'delivered', actual_delivery_date = $2 WHERE id = $1`,
		orderID, at,
	); err != nil {
		return fmt.Errorf("mark stop delivered: update order %d: %w", orderID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mark stop delivered: commit tx: %w", err)
	}

	return nil
}

// CompleteRoute closes an in-progress route. Completing an already
// completed route is a no-op.
func (r *PostgresRouteRepository) CompleteRoute(ctx context.Context, routeID int64, at time.Time, actualDurationMin *float64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE delivery_routes
		SET status = 'completed', end_time = $2, actual_duration = $3
		WHERE id = $1 AND status = 'in_progress'`,
		routeID, at, actualDurationMin,
	)
	if err != nil {
		return fmt.Errorf("complete route %d: %w", routeID, err)
	}
	return nil
}
