package iosources

import (
	"context"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/herbolive/herbdb/internal/iocsv"
	"github.com/herbolive/herbdb/pkg/normalize"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/source"
)

// CSV is the fallback source over a local dataset. The file is read once,
// on the first lookup.
type CSV struct {
	base
	path    string
	maxRead int

	once sync.Once
	rows []csvRow
}

type csvRow struct {
	raw        map[string]any
	scientific string
	common     string
}

var _ source.Client = (*CSV)(nil)

// NewCSV creates a client for the CSV file at path. At most maxRead rows
// are loaded.
func NewCSV(path string, maxRead int, opts ...Option) *CSV {
	return &CSV{
		base:    newBase(plant.SourceCSV, opts),
		path:    path,
		maxRead: maxRead,
	}
}

// Search returns the row with a scientific name equal to query, ignoring
// case. When there is none, the row with such common name is returned.
func (c *CSV) Search(_ context.Context, query string) map[string]any {
	query = strings.ToLower(strings.Join(strings.Fields(query), " "))
	if query == "" {
		return nil
	}

	start := time.Now()
	c.once.Do(c.load)

	var res map[string]any
	for _, r := range c.rows {
		if r.scientific == query {
			res = r.raw
			break
		}
	}
	if res == nil {
		for _, r := range c.rows {
			if r.common == query {
				res = r.raw
				break
			}
		}
	}
	return c.finish(query, start, maps.Clone(res), nil)
}

func (c *CSV) load() {
	raws, err := iocsv.ReadFile(c.path, c.maxRead)
	if err != nil {
		slog.Warn("CSV source is unavailable", "path", c.path, "error", err)
		return
	}

	c.rows = make([]csvRow, 0, len(raws))
	for _, raw := range raws {
		rec := normalize.Normalize(raw)
		c.rows = append(c.rows, csvRow{
			raw:        raw,
			scientific: strings.ToLower(rec.ScientificName),
			common:     strings.ToLower(rec.CommonName),
		})
	}
	slog.Info("CSV source loaded", "path", c.path, "rows", len(c.rows))
}
