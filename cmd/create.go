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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/internal/ioschema"
	"github.com/herbolive/herbdb/internal/iostore"
	"github.com/spf13/cobra"
)

func getCreateCmd() *cobra.Command {
	var force bool

	res := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the HerbDB database schema from scratch.

With the postgres driver the command connects to PostgreSQL, asks
for confirmation if the database already has tables, drops them,
creates the plants table using GORM AutoMigrate and sets binary
collation of genus, species and common name.

With the sqlite driver the database file and its plants table
are created on first use, no confirmation is needed.

Use --force to skip confirmation and drop existing tables.

Examples:
  herbdb create
  herbdb create --force
  herbdb create -f`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report(runCreate(cmd, force))
		},
	}

	res.Flags().BoolVarP(&force, "force", "f",
		false, "drop existing tables without confirmation")

	return res
}

func runCreate(cmd *cobra.Command, force bool) error {
	ctx := context.Background()

	if cfg.Database.Driver == "sqlite" {
		return createSQLite(ctx)
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

	if hasTables && !force {
		gn.Warn("\nWarning: Database contains existing tables.")
		gn.Warn("Creating schema will drop ALL existing tables and data.")
		fmt.Fprint(cmd.OutOrStdout(), "\nDo you want to continue? (yes/no): ")

		ok, err := confirm(cmd.InOrStdin())
		if err != nil {
			gn.Warn("Failed to read user input")
			return err
		}
		if !ok {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	if hasTables {
		gn.Info("Dropping all existing tables...")
		if err = op.DropAllTables(ctx); err != nil {
			return err
		}
	}

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err = ioschema.NewManager(op).Create(ctx); err != nil {
		return err
	}

	printCreateDone()
	return nil
}

func createSQLite(ctx context.Context) error {
	st, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	gn.Info("SQLite database is ready: <em>%s</em>", cfg.SQLitePath())
	printCreateDone()
	return nil
}

func printCreateDone() {
	gn.Info("\nDatabase schema creation complete!")
	gn.Info("\nNext steps:")
	gn.Info("  - Run 'herbdb import --file plants.csv' to import data")
	gn.Info("  - Run 'herbdb serve' to start the API")
}

// confirm reads a yes/no answer from the first line of r.
func confirm(r io.Reader) (bool, error) {
	answer, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || answer == "") {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
