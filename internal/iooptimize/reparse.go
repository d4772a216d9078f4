package iooptimize

import (
	"context"
	"log/slog"

	"github.com/herbolive/herbdb/pkg/normalize"
	"github.com/herbolive/herbdb/pkg/parserpool"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/store"
)

const reparsePageSize = 1000

// reparseNames walks all stored plants and fills empty genus or species
// from the scientific name. Populated values are never replaced. A row
// that cannot be updated is logged and skipped.
func reparseNames(ctx context.Context, o *optimizer) (int, error) {
	var updated int
	for page := 1; ; page++ {
		q := store.Query{Page: page, PerPage: reparsePageSize}
		rows, _, err := o.store.List(ctx, q)
		if err != nil {
			return updated, ReparseError(err)
		}

		for _, row := range rows {
			rec := normalize.Normalize(row)
			fields := reparse(o.parser, &rec)
			if len(fields) == 0 {
				continue
			}
			if err = o.store.UpdateFields(ctx, rec.ID, rec, fields); err != nil {
				slog.Warn("Cannot update genus and species",
					"id", rec.ID,
					"scientific_name", rec.ScientificName,
					"error", err,
				)
				continue
			}
			updated++
		}

		if len(rows) < reparsePageSize {
			return updated, nil
		}
	}
}

// reparse completes genus and species of rec and returns the fields it
// changed.
func reparse(p parserpool.Pool, rec *plant.Record) plant.FieldSet {
	res := plant.NewFieldSet()
	if rec.ScientificName == "" || (rec.Genus != "" && rec.Species != "") {
		return res
	}

	genus, species, ok := p.Binomial(rec.ScientificName)
	if !ok {
		return res
	}
	if rec.Genus == "" {
		rec.Genus = genus
		res.Add(plant.Genus)
	}
	if rec.Species == "" {
		rec.Species = species
		res.Add(plant.Species)
	}
	return res
}
