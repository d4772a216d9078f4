package iooptimize

import (
	"context"
	"log/slog"
	"time"
)

// vacuumAnalyze reclaims space and updates query planner statistics.
// Statements cannot run inside a transaction block.
func vacuumAnalyze(ctx context.Context, o *optimizer) error {
	stmts := []string{"VACUUM ANALYZE"}
	if o.store.DB().DriverName() == "sqlite" {
		stmts = []string{"VACUUM", "ANALYZE"}
	}

	timeStart := time.Now()
	for _, stmt := range stmts {
		slog.Info("Running statement on database", "statement", stmt)
		if _, err := o.store.DB().ExecContext(ctx, stmt); err != nil {
			slog.Error("Failed to run statement", "statement", stmt, "error", err)
			return VacuumError(stmt, err)
		}
	}

	slog.Info("VACUUM ANALYZE completed", "duration", time.Since(timeStart).String())
	return nil
}
