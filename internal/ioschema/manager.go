// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"strings"

	"github.com/herbolive/herbdb/pkg/db"
	"github.com/herbolive/herbdb/pkg/lifecycle"
	"github.com/herbolive/herbdb/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema using
// GORM AutoMigrate. Also applies binary collation to the
// identity columns, names are matched as exact strings.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.setCollation(ctx); err != nil {
		return err
	}

	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return nil
}

func (m *manager) gorm() (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	db := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}

// setCollation sets "C" collation on identity columns.
func (m *manager) setCollation(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	table := schema.Plant{}.TableName()
	q := collationSQL(table, 255, identityColumns...)
	if _, err := pool.Exec(ctx, q); err != nil {
		return CollationError(table, strings.Join(identityColumns, ", "), err)
	}

	return nil
}
