/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/internal/iodb"
	"github.com/herbolive/herbdb/internal/ioschema"
	"github.com/herbolive/herbdb/internal/iostore"
	"github.com/herbolive/herbdb/pkg/db"
	"github.com/spf13/cobra"
)

func getMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate database schema to latest version",
		Long: `Migrate updates the database schema to the latest version.

GORM AutoMigrate adds missing tables, columns and indexes of
the plants schema. It is safe: it Does NOT delete columns or
tables, existing plant records are preserved.

With the sqlite driver missing table and indexes are created
when the database is opened.

Examples:
  herbdb migrate`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return report(runMigrate(context.Background()))
		},
	}
}

func runMigrate(ctx context.Context) error {
	if cfg.Database.Driver == "sqlite" {
		st, err := iostore.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		gn.Info("Schema is now up to date.")
		return nil
	}

	op, err := connectPostgres(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
	Run 'herbdb create' first to initialize the schema.`)
		return nil
	}

	gn.Info("Migrating schema to latest version...")
	if err = ioschema.NewManager(op).Migrate(ctx); err != nil {
		return err
	}

	gn.Info("Schema is now up to date.")
	return nil
}

// connectPostgres opens an operator on the configured PostgreSQL
// database.
func connectPostgres(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	return op, nil
}

// report prints a user-facing message of err and returns err unchanged.
func report(err error) error {
	if err != nil {
		gn.PrintErrorMessage(err)
	}
	return err
}
