// Package db defines the contract of PostgreSQL connection management.
package db

import (
	"context"
	"fmt"

	"github.com/herbolive/herbdb/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// for the schema manager and the plant store.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. The store opens its
	// database/sql handle on top of it.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}

// DSN returns the connection URL of a PostgreSQL database.
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
}
