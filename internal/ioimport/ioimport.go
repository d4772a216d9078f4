// Package ioimport loads plant datasets into the store. Records are
// normalized, completed by the botanical parser and upserted in batches.
// Broken records do not stop an import, they are collected in the summary
// and can be written to a YAML report.
package ioimport

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/herbolive/herbdb/pkg/normalize"
	"github.com/herbolive/herbdb/pkg/parserpool"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/source"
	"github.com/herbolive/herbdb/pkg/store"
)

// Summary is the outcome of one import run.
type Summary struct {
	RunID    string          `yaml:"run_id"`
	Source   plant.Source    `yaml:"source"`
	Read     int             `yaml:"read"`
	Inserted int             `yaml:"inserted"`
	Updated  int             `yaml:"updated"`
	Failures []store.Failure `yaml:"failures"`
	Duration time.Duration   `yaml:"-"`
}

// Importer moves records of bulk sources into a store.
type Importer struct {
	store    store.Store
	parser   parserpool.Pool
	progress bool
}

// batcher is a store that splits upserts into transactions of a fixed
// size.
type batcher interface {
	BatchSize() int
}

// Option configures an Importer.
type Option func(*Importer)

// OptParser sets the parser that splits scientific names into genus and
// species.
func OptParser(p parserpool.Pool) Option {
	return func(i *Importer) {
		i.parser = p
	}
}

// OptProgress enables a progress bar on the terminal.
func OptProgress(b bool) Option {
	return func(i *Importer) {
		i.progress = b
	}
}

// New creates an Importer for the store.
func New(st store.Store, opts ...Option) *Importer {
	res := &Importer{store: st}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Import reads at most max rows of bulk and upserts them. Failure indices
// refer to positions of rows in the bulk read.
func (i *Importer) Import(
	ctx context.Context,
	bulk source.Bulk,
	max int,
) (*Summary, error) {
	start := time.Now()
	res := &Summary{RunID: uuid.NewString(), Source: bulk.Name()}
	slog.Info("Import started", "run_id", res.RunID, "source", res.Source)

	rows, err := bulk.Rows(ctx, max)
	if err != nil {
		return nil, ReadError(bulk.Name(), err)
	}
	res.Read = len(rows)

	recs := make([]plant.Record, 0, len(rows))
	positions := make([]int, 0, len(rows))
	for idx, raw := range rows {
		rec := i.prepare(raw, bulk.Name())
		if !rec.HasIdentity() {
			err = NoIdentityError(idx)
			slog.Error("Cannot import record", "run_id", res.RunID, "index", idx, "error", err)
			res.Failures = append(res.Failures, store.Failure{
				Index:  idx,
				Key:    plant.IdentityKey(rec),
				Error:  err.Error(),
				Record: rec,
			})
			continue
		}
		recs = append(recs, rec)
		positions = append(positions, idx)
	}

	if err = i.upsert(ctx, res, recs, positions); err != nil {
		return res, err
	}

	slices.SortFunc(res.Failures, func(a, b store.Failure) int {
		return cmp.Compare(a.Index, b.Index)
	})
	res.Duration = time.Since(start)
	slog.Info("Import finished",
		"run_id", res.RunID,
		"source", res.Source,
		"read", res.Read,
		"inserted", res.Inserted,
		"updated", res.Updated,
		"failed", len(res.Failures),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}

// prepare normalizes a raw row and completes its genus and species.
func (i *Importer) prepare(raw map[string]any, src plant.Source) plant.Record {
	res := normalize.Normalize(raw)
	if res.Source == plant.SourceUnknown {
		res.Source = src
	}
	if i.parser == nil || res.ScientificName == "" {
		return res
	}
	if res.Genus != "" && res.Species != "" {
		return res
	}
	if genus, species, ok := i.parser.Binomial(res.ScientificName); ok {
		if res.Genus == "" {
			res.Genus = genus
		}
		if res.Species == "" {
			res.Species = species
		}
	}
	return res
}

func (i *Importer) upsert(
	ctx context.Context,
	sum *Summary,
	recs []plant.Record,
	positions []int,
) error {
	if len(recs) == 0 {
		return nil
	}

	var bar *pb.ProgressBar
	if i.progress {
		bar = pb.Full.Start(len(recs))
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	step := i.step(len(recs))
	for start := 0; start < len(recs); start += step {
		end := min(start+step, len(recs))
		rep, err := i.store.UpsertMany(ctx, recs[start:end])
		if rep != nil {
			sum.Inserted += rep.Inserted
			sum.Updated += rep.Updated
			for _, f := range rep.Failures {
				f.Index = positions[start+f.Index]
				sum.Failures = append(sum.Failures, f)
			}
		}
		if err != nil {
			return err
		}
		if bar != nil {
			bar.Add(end - start)
		}
	}
	return nil
}

// step is the number of records passed to the store at once. It follows
// the transaction size of the store, so the progress bar moves once per
// committed batch. Stores without batches get all records in one call.
func (i *Importer) step(n int) int {
	if b, ok := i.store.(batcher); ok && b.BatchSize() > 0 {
		return b.BatchSize()
	}
	return n
}
