// Package store defines the storage contract of plant records.
package store

import (
	"context"
	"errors"

	"github.com/herbolive/herbdb/pkg/plant"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("plant not found")

// Row is a raw storage row keyed by column name. Rows are converted to
// canonical records by the normalize package.
type Row = map[string]any

// Query selects a page of rows.
type Query struct {
	// Text matches common name, scientific name or family as a substring.
	// Empty Text matches all rows.
	Text string

	// Page starts at 1.
	Page int

	// PerPage is the size of a page.
	PerPage int
}

// Offset returns the number of rows preceding the page.
func (q Query) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// Failure describes a record that could not be persisted even in its own
// transaction.
type Failure struct {
	// Index is the position of the record in the input.
	Index int `yaml:"index"`

	// Key is the identity key of the record.
	Key string `yaml:"key"`

	// Error is the storage error message.
	Error string `yaml:"error"`

	// Record is the full normalized content of the failed record.
	Record plant.Record `yaml:"record"`
}

// Report summarizes an upsert.
type Report struct {
	Inserted int
	Updated  int
	Failures []Failure
}

// Add accumulates another report. Failure indices are shifted by offset.
func (r *Report) Add(other *Report, offset int) {
	if other == nil {
		return
	}
	r.Inserted += other.Inserted
	r.Updated += other.Updated
	for _, f := range other.Failures {
		f.Index += offset
		r.Failures = append(r.Failures, f)
	}
}

// Store persists canonical plant records. Identity of rows is logical:
// a record matches an existing row by genus and species first, then by
// common name.
type Store interface {
	// FindByID returns the row with the given id.
	FindByID(ctx context.Context, id int64) (Row, error)

	// FindByName returns the row with exactly matching genus and species.
	FindByName(ctx context.Context, genus, species string) (Row, error)

	// FindByCommonName returns the row with the lowest id that has
	// substr in its common name.
	FindByCommonName(ctx context.Context, substr string) (Row, error)

	// List returns a page of rows and the total number of matching rows.
	List(ctx context.Context, q Query) ([]Row, int, error)

	// UpsertMany updates matching rows or inserts new ones in batches.
	// Records that fail are reported, not returned as an error.
	UpsertMany(ctx context.Context, recs []plant.Record) (*Report, error)

	// UpdateFields writes the given fields of a record to the row with id.
	UpdateFields(
		ctx context.Context,
		id int64,
		rec plant.Record,
		fields plant.FieldSet,
	) error

	// Close releases the storage resources.
	Close() error
}
