// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/herbolive/herbdb/internal/iofs"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "herbdb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// Defaults are overridden by HERBDB_DATABASE_* environment variables, the
// database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if s := os.Getenv("HERBDB_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("HERBDB_DATABASE_PORT"); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(i))
		}
	}
	if s := os.Getenv("HERBDB_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("HERBDB_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	cfg.Update(opts)

	cfg.Database.Database = TestDatabaseName
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SkipWithoutPostgres skips the test in short mode or when the test
// database does not answer.
func SkipWithoutPostgres(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := GetTestDatabaseConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, db.DSN(cfg))
	if err == nil {
		err = pool.Ping(ctx)
		pool.Close()
	}
	if err != nil {
		t.Skipf("Skipping integration test, PostgreSQL is not available: %v", err)
	}
	return cfg
}

// TempHome creates a home directory with config, cache and log
// directories inside of a test temporary directory.
func TempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	if err := iofs.EnsureDirs(home); err != nil {
		t.Fatalf("Failed to create herbdb dirs: %v", err)
	}
	return home
}

// WriteFile writes content to a file in dir and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
