// Package source defines contracts of external record providers.
package source

import (
	"context"

	"github.com/herbolive/herbdb/pkg/plant"
)

// Client looks up one plant in an external source.
type Client interface {
	// Name identifies the source in records and logs.
	Name() plant.Source

	// Search returns a raw payload for a scientific or common name, or nil
	// when the source has nothing or cannot be reached. Implementations
	// handle their own errors and never return them.
	Search(ctx context.Context, query string) map[string]any
}

// Bulk provides raw records for import.
type Bulk interface {
	// Name identifies the bulk source in records and logs.
	Name() plant.Source

	// Rows returns at most max raw records. Zero or negative max means no
	// limit.
	Rows(ctx context.Context, max int) ([]map[string]any, error)
}
