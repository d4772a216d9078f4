// Package iostore implements the plant store on PostgreSQL and SQLite.
// Queries are built with go-sqlbuilder in the flavor of the database and
// rows are read with sqlx.
package iostore

import (
	"context"
	"database/sql"

	"github.com/herbolive/herbdb/internal/iodb"
	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/db"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/schema"
	"github.com/herbolive/herbdb/pkg/store"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DefaultBatchSize is the number of records upserted in one transaction.
const DefaultBatchSize = 500

var table = schema.Plant{}.TableName()

// Store keeps plant records in a relational database.
type Store struct {
	db        *sqlx.DB
	flavor    sqlbuilder.Flavor
	batchSize int
	metrics   *iometrics.Metrics
	columns   []string
	closers   []func() error
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// OptBatchSize sets the number of records in one upsert transaction.
func OptBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// BatchSize returns the number of records upserted in one transaction.
func (s *Store) BatchSize() int {
	return s.batchSize
}

// OptMetrics sets the instruments that count upserted records.
func OptMetrics(m *iometrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

func newStore(sdb *sqlx.DB, flavor sqlbuilder.Flavor, opts []Option) *Store {
	res := &Store{
		db:        sdb,
		flavor:    flavor,
		batchSize: DefaultBatchSize,
		closers:   []func() error{sdb.Close},
	}
	for _, spec := range plant.Fields {
		res.columns = append(res.columns, string(spec.Name))
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// OpenSQLite opens or creates a SQLite database at path and makes sure
// the plants table exists.
func OpenSQLite(path string, opts ...Option) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, SQLiteOpenError(path, err)
	}
	// SQLite allows one writer, a single connection serializes access.
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range schema.SQLiteDDL() {
		if _, err = sqlDB.Exec(stmt); err != nil {
			sqlDB.Close()
			return nil, SQLiteOpenError(path, err)
		}
	}

	return newStore(sqlx.NewDb(sqlDB, "sqlite"), sqlbuilder.SQLite, opts), nil
}

// OpenPostgres creates a store on the pool of a connected operator. The
// plants table is created by the schema manager.
func OpenPostgres(op db.Operator, opts ...Option) (*Store, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	return newStore(sqlx.NewDb(sqlDB, "pgx"), sqlbuilder.PostgreSQL, opts), nil
}

// Open connects to the database of the configuration.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Store, error) {
	opts = append([]Option{OptBatchSize(cfg.Database.BatchSize)}, opts...)

	switch cfg.Database.Driver {
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath(), opts...)
	case "postgres":
		op := iodb.NewPgxOperator()
		if err := op.Connect(ctx, &cfg.Database); err != nil {
			return nil, err
		}
		res, err := OpenPostgres(op, opts...)
		if err != nil {
			op.Close()
			return nil, err
		}
		res.closers = append(res.closers, op.Close)
		return res, nil
	default:
		return nil, UnsupportedDriverError(cfg.Database.Driver)
	}
}

// DB returns the database handle of the store.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close releases the database handle and the connection pool.
func (s *Store) Close() error {
	var res error
	for _, fn := range s.closers {
		if err := fn(); err != nil && res == nil {
			res = err
		}
	}
	return res
}
