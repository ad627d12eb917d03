package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

// Connect opens a pooled connection to Postgres and verifies it with a ping
// bounded by timeout.
func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database within %v: %w (close error: %v)", timeout, err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

// TableExists reports whether a table is present in the public schema.
func TableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`

	var exists bool
	if err := db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check table %q: %w", name, err)
	}
	return exists, nil
}

// HealthCheck pings the store and verifies the tables the service depends on.
func HealthCheck(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, table := range []string{"users", "teams"} {
		table := table
		g.Go(func() error {
			exists, err := TableExists(gctx, db, table)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("required table %q is missing", table)
			}
			return nil
		})
	}
	return g.Wait()
}
