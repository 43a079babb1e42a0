package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"birthday_tracker/internal/infra/config"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Idle connections are dropped quickly; the daily job leaves the pool unused for hours.
const connMaxIdleTime = time.Minute

// NewPostgresConnection opens a pooled connection to the documents database and
// pings it so a bad DATABASE_URL fails before the first request.
func NewPostgresConnection(ctx context.Context, dataSourceName string, pool config.DBPool) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	applyPool(db, pool)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func applyPool(db *sql.DB, pool config.DBPool) {
	idle := pool.MaxIdleConns
	if idle > pool.MaxOpenConns {
		idle = pool.MaxOpenConns
	}
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(idle)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)
}
