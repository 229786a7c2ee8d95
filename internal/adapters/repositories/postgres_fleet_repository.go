package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"logistics-route-service/internal/domain"
)

// Postgres-backed implementation of the FleetRepository port.
type PostgresFleetRepository struct{ DB *sql.DB }

func NewPostgresFleetRepository(db *sql.DB) *PostgresFleetRepository {
	return &PostgresFleetRepository{DB: db}
}

func (r *PostgresFleetRepository) FirstAvailableVehicle(ctx context.Context, warehouseID int64, t domain.VehicleType) (*domain.Vehicle, error) {
	query := `
	SELECT id, registration, type, capacity_weight, capacity_volume, warehouse_id, status
	FROM vehicles
	WHERE warehouse_id = $1 AND type = $2 AND status = 'available'
	ORDER BY id
	LIMIT 1;
	`
	v := &domain.Vehicle{}
	err := r.DB.QueryRowContext(ctx, query, warehouseID, string(t)).Scan(
		&v.ID, &v.Registration, &v.Type, &v.CapacityWeight, &v.CapacityVolume,
		&v.WarehouseID, &v.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("first available vehicle: warehouse %d type %s: %w",
			warehouseID, t, domain.ErrNoVehicleAvailable)
	}
	if err != nil {
		return nil, fmt.Errorf("first available vehicle: query: %w", err)
	}

	return v, nil
}

func (r *PostgresFleetRepository) FirstAvailableDriver(ctx context.Context, warehouseID int64, t domain.VehicleType) (*domain.Driver, error) {
	// vehicle_types is a comma-separated certification list; matching is
	// token-exact, so certification is checked in Go rather than with a
	// substring operator ("truck" must not match "mini-truck").
	query := `
	SELECT id, name, license_number, vehicle_types, home_base_id, status
	FROM drivers
	WHERE home_base_id = $1 AND status = 'available'
	ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("first available driver: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d := &domain.Driver{}
		err := rows.Scan(&d.ID, &d.Name, &d.LicenseNumber, &d.VehicleTypes, &d.HomeBaseID, &d.Status)
		if err != nil {
			return nil, fmt.Errorf("first available driver: scan row: %w", err)
		}
		if d.CertifiedFor(t) {
			return d, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("first available driver: row iteration: %w", err)
	}

	return nil, fmt.Errorf("first available driver: warehouse %d type %s: %w",
		warehouseID, t, domain.ErrNoDriverAvailable)
}
