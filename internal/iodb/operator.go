// Package iodb implements database operations using pgxpool.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"slices"
	"strings"

	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxConns = 16
	minConns = 2
)

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect opens a pool to PostgreSQL and pings it. The operator keeps
// the pool only when the server answers.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	fail := func(err error) error {
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}

	poolCfg, err := pgxpool.ParseConfig(db.DSN(cfg))
	if err != nil {
		return fail(err)
	}
	// list enrichment and background write-backs share the pool
	poolCfg.MaxConns = maxConns
	poolCfg.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fail(err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return fail(err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool. The plant store and the
// schema manager open their handles on it.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// TableExists checks if a table exists in the public schema.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}
	tables, err := p.tables(ctx)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}
	return slices.Contains(tables, tableName), nil
}

// HasTables checks if the public schema has any tables.
func (p *pgxOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}
	tables, err := p.tables(ctx)
	if err != nil {
		return false, TableCheckError(err)
	}
	return len(tables) > 0, nil
}

// DropAllTables drops all tables of the public schema in one
// statement.
func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	tables, err := p.tables(ctx)
	if err != nil {
		return QueryTablesError(err)
	}
	if len(tables) == 0 {
		return nil
	}

	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = pgx.Identifier{"public", t}.Sanitize()
	}
	dropSQL := "DROP TABLE IF EXISTS " + strings.Join(names, ", ") + " CASCADE"
	if _, err = p.pool.Exec(ctx, dropSQL); err != nil {
		return DropTableError(strings.Join(tables, ", "), err)
	}
	return nil
}

// tables returns names of the tables in the public schema.
func (p *pgxOperator) tables(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
		ORDER BY tablename
	`)
	if err != nil {
		return nil, err
	}

	res, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, ScanTableError(err)
	}
	return res, nil
}
