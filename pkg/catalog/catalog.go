// Package catalog serves plant records from storage, enriched from
// external sources and translated on the way out.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/herbolive/herbdb/pkg/merge"
	"github.com/herbolive/herbdb/pkg/normalize"
	"github.com/herbolive/herbdb/pkg/parserpool"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/store"
	"github.com/herbolive/herbdb/pkg/translate"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when a key matches no stored plant.
var ErrNotFound = store.ErrNotFound

// DefaultPageSize is used for list queries without a page size.
const DefaultPageSize = 52

// Mode names.
const (
	ModeDBFirst  = "db-first"
	ModeAPIFirst = "api-first"
)

// Page is a page of plant records.
type Page struct {
	Items   []plant.Record `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
}

// Service looks up plants. It is safe for concurrent use. Every lookup
// owns its records, concurrent write-backs of the same plant are last
// write wins.
type Service struct {
	store           store.Store
	enricher        *merge.Pipeline
	translator      *translate.Translator
	parser          parserpool.Pool
	dbFirst         bool
	listConcurrency int
	persistTimeout  time.Duration

	wg sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// OptEnricher sets the enrichment pipeline.
func OptEnricher(p *merge.Pipeline) Option {
	return func(s *Service) {
		s.enricher = p
	}
}

// OptTranslator sets the translator of outgoing records.
func OptTranslator(t *translate.Translator) Option {
	return func(s *Service) {
		s.translator = t
	}
}

// OptParser sets the parser used to find genus and species in keys.
func OptParser(p parserpool.Pool) Option {
	return func(s *Service) {
		s.parser = p
	}
}

// OptDBFirst enables enrichment of stored records.
func OptDBFirst(b bool) Option {
	return func(s *Service) {
		s.dbFirst = b
	}
}

// OptListConcurrency limits the number of list items enriched at once.
func OptListConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.listConcurrency = n
		}
	}
}

// OptPersistTimeout limits the time of a background write-back.
func OptPersistTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// New creates a Service on top of a store.
func New(st store.Store, opts ...Option) *Service {
	res := &Service{
		store:           st,
		dbFirst:         true,
		listConcurrency: 6,
		persistTimeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Mode describes whether stored records are enriched.
func (s *Service) Mode() string {
	if s.dbFirst {
		return ModeDBFirst
	}
	return ModeAPIFirst
}

// Wait blocks until all background write-backs are finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// GetPlant finds a plant by numeric id, by genus and species or by a
// part of its common name, enriches and translates it. Failures of
// enrichment, write-back and translation leave the record as it is.
func (s *Service) GetPlant(ctx context.Context, key string) (plant.Record, error) {
	var res plant.Record

	row, err := s.resolve(ctx, key)
	if err != nil {
		return res, err
	}

	res = normalize.Normalize(row)
	res = s.enrich(ctx, res)
	res = s.translator.Record(ctx, res)
	return res, nil
}

// ListPlants returns a page of plants matching the query. Items are
// enriched concurrently when enrichment is on.
func (s *Service) ListPlants(ctx context.Context, q store.Query) (Page, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPageSize
	}
	res := Page{Page: q.Page, PerPage: q.PerPage}

	rows, total, err := s.store.List(ctx, q)
	if err != nil {
		return res, fmt.Errorf("list plants: %w", err)
	}
	res.Total = total
	res.Items = make([]plant.Record, len(rows))

	g := &errgroup.Group{}
	g.SetLimit(s.listConcurrency)
	for i := range rows {
		g.Go(func() error {
			rec := normalize.Normalize(rows[i])
			rec = s.enrich(ctx, rec)
			res.Items[i] = s.translator.Record(ctx, rec)
			return nil
		})
	}
	_ = g.Wait()

	return res, nil
}

func (s *Service) resolve(ctx context.Context, key string) (store.Row, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrNotFound
	}

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		row, err := s.store.FindByID(ctx, id)
		if !errors.Is(err, store.ErrNotFound) {
			return row, err
		}
	}

	name := strings.Join(strings.Fields(strings.ReplaceAll(key, "_", " ")), " ")
	if genus, species, ok := s.binomial(name); ok {
		row, err := s.store.FindByName(ctx, genus, species)
		if !errors.Is(err, store.ErrNotFound) {
			return row, err
		}
	}

	return s.store.FindByCommonName(ctx, name)
}

func (s *Service) binomial(name string) (string, string, bool) {
	if s.parser != nil {
		if genus, species, ok := s.parser.Binomial(name); ok {
			return genus, species, true
		}
	}
	words := strings.Fields(name)
	if len(words) != 2 {
		return "", "", false
	}
	return words[0], words[1], true
}

func (s *Service) enrich(ctx context.Context, rec plant.Record) plant.Record {
	if !s.dbFirst || s.enricher == nil {
		return rec
	}

	res := s.enricher.Enrich(ctx, rec)
	if len(res.Changed) > 0 && rec.ID != 0 {
		s.persist(ctx, res.Merged.Clone(), res.Changed)
	}
	return res.Merged
}

// persist writes changed fields in the background. The write outlives
// the request context.
func (s *Service) persist(ctx context.Context, rec plant.Record, fields plant.FieldSet) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
		defer cancel()

		err := s.store.UpdateFields(ctx, rec.ID, rec, fields)
		if err != nil {
			slog.Error("Cannot save enriched fields",
				"id", rec.ID,
				"fields", fields.Strings(),
				"error", err,
			)
			return
		}
		slog.Debug("Saved enriched fields", "id", rec.ID, "fields", fields.Strings())
	}()
}
