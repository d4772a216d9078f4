// Package iooptimize implements Optimizer interface for maintenance
// of the plants table. This is an impure I/O package that completes
// genus and species of stored plants and refreshes statistics of the
// query planner.
package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/herbolive/herbdb/internal/iostore"
	"github.com/herbolive/herbdb/pkg/lifecycle"
	"github.com/herbolive/herbdb/pkg/parserpool"
)

// optimizer implements the Optimizer interface.
type optimizer struct {
	store  *iostore.Store
	parser parserpool.Pool
}

// NewOptimizer creates a new Optimizer.
func NewOptimizer(st *iostore.Store, parser parserpool.Pool) lifecycle.Optimizer {
	return &optimizer{
		store:  st,
		parser: parser,
	}
}

// Optimize executes 2 sequential steps:
//  1. Fill empty genus and species from scientific names
//  2. Run VACUUM ANALYZE to update statistics
//
// Errors are returned to the CLI layer for user-friendly display
// via gn.PrintErrorMessage().
func (o *optimizer) Optimize(ctx context.Context) error {
	start := time.Now()
	slog.Info("Starting database optimization")
	gn.Info(
		"Optimization in progress, " +
			"<em>it might take a while</em>...",
	)

	slog.Info("Step 1/2: Reparsing scientific names")
	updated, err := reparseNames(ctx, o)
	if err != nil {
		return err
	}
	slog.Info("Step 1/2: Complete - Scientific names reparsed",
		"updated", updated)

	slog.Info("Step 2/2: Updating statistics")
	if err := vacuumAnalyze(ctx, o); err != nil {
		return err
	}
	slog.Info("Step 2/2: Complete - Statistics updated")

	gn.Info("Optimization is done in %s, <em>%d</em> plants got genus and species",
		gnfmt.TimeString(time.Since(start).Seconds()), updated)
	return nil
}
