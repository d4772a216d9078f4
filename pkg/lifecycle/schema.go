// Package lifecycle defines contracts of database lifecycle operations.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the initial database schema using GORM AutoMigrate.
	// Also applies collation settings for exact matching of plant names.
	// If tables already exist, behavior depends on user confirmation via DropAllTables.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version using GORM AutoMigrate.
	Migrate(ctx context.Context) error
}

// Optimizer defines the interface for maintenance of stored plants.
// Optimization is idempotent - safe to run multiple times.
type Optimizer interface {
	// Optimize completes genus and species of stored plants from their
	// scientific names and updates statistics of the query planner.
	Optimize(ctx context.Context) error
}
