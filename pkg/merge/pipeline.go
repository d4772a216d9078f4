package merge

import (
	"context"
	"log/slog"
	"time"

	"github.com/herbolive/herbdb/pkg/normalize"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/source"
)

// DefaultExpected are the fields that make the pipeline look further while
// any of them is empty.
var DefaultExpected = []plant.Field{
	plant.CommonName,
	plant.Family,
	plant.Description,
	plant.ImageURL,
}

// Pipeline folds payloads of an ordered list of source clients into a
// record. The merged output of one pass is the base of the next one.
type Pipeline struct {
	clients  []source.Client
	expected []plant.Field
	timeout  time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// OptExpected sets the fields the pipeline tries to fill.
func OptExpected(fields ...plant.Field) Option {
	return func(p *Pipeline) {
		if len(fields) > 0 {
			p.expected = fields
		}
	}
}

// OptTimeout sets the time limit of a single source call.
func OptTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewPipeline creates a pipeline that consults clients in the given order.
// Nil clients are skipped.
func NewPipeline(clients []source.Client, opts ...Option) *Pipeline {
	res := &Pipeline{
		expected: DefaultExpected,
		timeout:  15 * time.Second,
	}
	for _, c := range clients {
		if c != nil {
			res.clients = append(res.clients, c)
		}
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Sources returns names of the clients in the order they are consulted.
func (p *Pipeline) Sources() []plant.Source {
	res := make([]plant.Source, len(p.clients))
	for i, c := range p.clients {
		res[i] = c.Name()
	}
	return res
}

// Enrich runs the sources against a copy of base until no expected field
// is empty. A source that has nothing contributes nothing. When ctx is
// done the partial result is returned at once, calls in flight are left to
// finish within their own timeout.
func (p *Pipeline) Enrich(ctx context.Context, base plant.Record) Result {
	res := Result{Merged: base.Clone(), Changed: plant.NewFieldSet()}
	if p == nil {
		return res
	}

	for _, c := range p.clients {
		if !p.missing(res.Merged) {
			break
		}
		query := plant.LookupName(res.Merged)
		if query == "" {
			break
		}

		raw, ok := p.search(ctx, c, query)
		if !ok {
			slog.Warn("Enrichment interrupted",
				"source", c.Name(),
				"query", query,
				"error", ctx.Err(),
			)
			break
		}
		if raw == nil {
			continue
		}

		cand := normalize.Normalize(raw)
		if cand.Source == plant.SourceUnknown {
			cand.Source = c.Name()
		}
		step := Merge(res.Merged, cand)
		res.Merged = step.Merged
		res.Changed.Union(step.Changed)

		slog.Debug("Enrichment pass",
			"source", c.Name(),
			"query", query,
			"changed", step.Changed.Strings(),
		)
	}
	return res
}

func (p *Pipeline) missing(r plant.Record) bool {
	for _, f := range p.expected {
		if r.Get(f).IsEmpty() {
			return true
		}
	}
	return false
}

// search calls the client without tying the call to ctx cancellation.
// It returns false when ctx is done before the client answers.
func (p *Pipeline) search(
	ctx context.Context,
	c source.Client,
	query string,
) (map[string]any, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	ch := make(chan map[string]any, 1)
	go func() {
		defer cancel()
		ch <- c.Search(callCtx, query)
	}()

	select {
	case raw := <-ch:
		return raw, true
	case <-ctx.Done():
		return nil, false
	}
}
