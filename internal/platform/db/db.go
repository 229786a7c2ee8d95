package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open a postgres pool via the pgx stdlib driver. Pool limits are sized for
// a service whose heaviest work (the route search) is CPU-bound, not
// connection-bound.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("open db: verify postgres connection: %w", err)
	}

	return db, nil
}
