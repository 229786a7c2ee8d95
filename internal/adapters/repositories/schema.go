package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Initialize the postgres schema for routes, stops and the externally
// owned reference tables this service reads.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS warehouses (
			id BIGSERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			preferred_window TEXT NOT NULL DEFAULT ''
		);`,

		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			warehouse_id BIGINT NOT NULL REFERENCES warehouses(id),
			customer_id BIGINT NOT NULL REFERENCES customers(id),
			status TEXT NOT NULL DEFAULT 'pending',
			expected_delivery_date DATE,
			actual_delivery_date DATE
		);`,

		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_sku TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_weight DOUBLE PRECISION NOT NULL,
			unit_volume DOUBLE PRECISION NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS vehicles (
			id BIGSERIAL PRIMARY KEY,
			registration TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			capacity_weight DOUBLE PRECISION NOT NULL,
			capacity_volume DOUBLE PRECISION NOT NULL,
			warehouse_id BIGINT REFERENCES warehouses(id),
			status TEXT NOT NULL DEFAULT 'available'
		);`,

		`CREATE TABLE IF NOT EXISTS drivers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			license_number TEXT NOT NULL UNIQUE,
			vehicle_types TEXT NOT NULL DEFAULT '',
			home_base_id BIGINT REFERENCES warehouses(id),
			status TEXT NOT NULL DEFAULT 'available'
		);`,

		`CREATE TABLE IF NOT EXISTS delivery_routes (
			id BIGSERIAL PRIMARY KEY,
			route_id TEXT NOT NULL UNIQUE,
			warehouse_id BIGINT NOT NULL REFERENCES warehouses(id),
			vehicle_id BIGINT REFERENCES vehicles(id),
			driver_id BIGINT REFERENCES drivers(id),
			planned_date DATE NOT NULL,
			start_time TIMESTAMPTZ,
			end_time TIMESTAMPTZ,
			status TEXT NOT NULL DEFAULT 'planned',
			total_distance DOUBLE PRECISION NOT NULL DEFAULT 0,
			optimal_distance DOUBLE PRECISION NOT NULL DEFAULT 0,
			estimated_duration DOUBLE PRECISION NOT NULL DEFAULT 0,
			actual_duration DOUBLE PRECISION,
			path_encoding TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT ''
		);`,

		`CREATE TABLE IF NOT EXISTS route_stops (
			id BIGSERIAL PRIMARY KEY,
			route_id BIGINT NOT NULL REFERENCES delivery_routes(id) ON DELETE CASCADE,
			order_id BIGINT NOT NULL REFERENCES orders(id),
			sequence INTEGER NOT NULL,
			estimated_arrival TIMESTAMPTZ NOT NULL,
			actual_arrival TIMESTAMPTZ,
			delivery_status TEXT NOT NULL DEFAULT 'processing',
			proof_of_delivery TEXT NOT NULL DEFAULT '',
			UNIQUE (route_id, sequence),
			UNIQUE (route_id, order_id)
		);`,

		`CREATE INDEX IF NOT EXISTS idx_orders_routable
			ON orders(warehouse_id, expected_delivery_date, status);`,

		`CREATE INDEX IF NOT EXISTS idx_route_stops_status
			ON route_stops(route_id, delivery_status);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type warehouseSeed struct {
	ID        int64   `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type customerSeed struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	PreferredWindow string  `json:"preferred_window"`
}

type orderItemSeed struct {
	ProductSKU string  `json:"product_sku"`
	Quantity   int     `json:"quantity"`
	UnitWeight float64 `json:"unit_weight"`
	UnitVolume float64 `json:"unit_volume"`
}

type orderSeed struct {
	ID                   int64           `json:"id"`
	Number               string          `json:"order_number"`
	WarehouseID          int64           `json:"warehouse_id"`
	CustomerID           int64           `json:"customer_id"`
	Status               string          `json:"status"`
	ExpectedDeliveryDate string          `json:"expected_delivery_date"`
	Items                []orderItemSeed `json:"items"`
}

type vehicleSeed struct {
	ID             int64   `json:"id"`
	Registration   string  `json:"registration"`
	Type           string  `json:"type"`
	CapacityWeight float64 `json:"capacity_weight"`
	CapacityVolume float64 `json:"capacity_volume"`
	WarehouseID    int64   `json:"warehouse_id"`
	Status         string  `json:"status"`
}

type driverSeed struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	VehicleTypes  string `json:"vehicle_types"`
	HomeBaseID    int64  `json:"home_base_id"`
	Status        string `json:"status"`
}

type seedFile struct {
	Warehouses []warehouseSeed `json:"warehouses"`
	Customers  []customerSeed  `json:"customers"`
	Orders     []orderSeed     `json:"orders"`
	Vehicles   []vehicleSeed   `json:"vehicles"`
	Drivers    []driverSeed    `json:"drivers"`
}

// Populate the database with demo logistics data from a JSON file.
// Existing rows are left untouched, so re-running the seed is safe.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed logistics: read %q: %w", jsonPath, err)
	}

	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed logistics: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed logistics: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, w := range data.Warehouses {
		_, err := tx.Exec(
			`INSERT INTO warehouses (id, code, name, address, latitude, longitude)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
			w.ID, w.Code, w.Name, w.Address, w.Latitude, w.Longitude,
		)
		if err != nil {
			return fmt.Errorf("seed logistics: insert warehouse %q: %w", w.Code, err)
		}
	}

	for _, c := range data.Customers {
		_, err := tx.Exec(
			`INSERT INTO customers (id, name, address, latitude, longitude, preferred_window)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, c.Address, c.Latitude, c.Longitude, c.PreferredWindow,
		)
		if err != nil {
			return fmt.Errorf("seed logistics: insert customer %d: %w", c.ID, err)
		}
	}

	for _, o := range data.Orders {
		expected, err := time.Parse("2006-01-02", o.ExpectedDeliveryDate)
		if err != nil {
			return fmt.Errorf("seed logistics: order %q: bad expected_delivery_date: %w", o.Number, err)
		}

		res, err := tx.Exec(
			`INSERT INTO orders (id, order_number, warehouse_id, customer_id, status, expected_delivery_date)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
			o.ID, o.Number, o.WarehouseID, o.CustomerID, o.Status, expected,
		)
		if err != nil {
			return fmt.Errorf("seed logistics: insert order %q: %w", o.Number, err)
		}

		inserted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("seed logistics: order %q rows affected: %w", o.Number, err)
		}
		if inserted == 0 {
			continue
		}

		for _, it := range o.Items {
			_, err := tx.Exec(
				`INSERT INTO order_items (order_id, product_sku, quantity, unit_weight, unit_volume)
				 VALUES ($1, $2, $3, $4, $5)`,
				o.ID, it.ProductSKU, it.Quantity, it.UnitWeight, it.UnitVolume,
			)
			if err != nil {
				return fmt.Errorf("seed logistics: insert item for order %q: %w", o.Number, err)
			}
		}
	}

	for _, v := range data.Vehicles {
		_, err := tx.Exec(
			`INSERT INTO vehicles (id, registration, type, capacity_weight, capacity_volume, warehouse_id, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`,
			v.ID, v.Registration, v.Type, v.CapacityWeight, v.CapacityVolume, v.WarehouseID, v.Status,
		)
		if err != nil {
			return fmt.Errorf("seed logistics: insert vehicle %q: %w", v.Registration, err)
		}
	}

	for _, d := range data.Drivers {
		_, err := tx.Exec(
			`INSERT INTO drivers (id, name, license_number, vehicle_types, home_base_id, status)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
			d.ID, d.Name, d.LicenseNumber, d.VehicleTypes, d.HomeBaseID, d.Status,
		)
		if err != nil {
			return fmt.Errorf("seed logistics: insert driver %q: %w", d.LicenseNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed logistics: commit tx: %w", err)
	}

	return nil
}
