// Package translate provides best-effort translation of textual plant
// fields. Translation never fails from the point of view of a caller: an
// error of a provider returns the original text.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/herbolive/herbdb/pkg/plant"
	"golang.org/x/text/language"
)

// DefaultTarget is used when the configured target language is not a valid
// language tag.
const DefaultTarget = "es"

// Provider is a translation service.
type Provider interface {
	// Name identifies the provider in cache keys and logs.
	Name() string

	// Translate returns text translated to the target language.
	Translate(ctx context.Context, text, target string) (string, error)
}

// Outcome of a translation lookup.
type Outcome string

const (
	OutcomeHit   Outcome = "hit"
	OutcomeMiss  Outcome = "miss"
	OutcomeError Outcome = "error"
)

// Observer receives outcomes of translation lookups.
type Observer interface {
	ObserveTranslation(outcome Outcome)
}

// Translator translates text through a provider and remembers results in
// a cache. A nil Translator returns everything unchanged.
type Translator struct {
	provider Provider
	cache    Cache
	target   string
	observer Observer
}

// Option configures a Translator.
type Option func(*Translator)

// OptObserver sets a receiver of lookup outcomes.
func OptObserver(o Observer) Option {
	return func(t *Translator) {
		t.observer = o
	}
}

// New creates a Translator. It returns nil when provider is nil. A nil
// cache disables caching.
func New(p Provider, c Cache, target string, opts ...Option) *Translator {
	if p == nil {
		return nil
	}
	res := &Translator{
		provider: p,
		cache:    c,
		target:   NormalizeTarget(target),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// NormalizeTarget returns a canonical language tag for target or
// DefaultTarget if target cannot be parsed.
func NormalizeTarget(target string) string {
	tag, err := language.Parse(strings.TrimSpace(target))
	if err != nil || tag == language.Und {
		return DefaultTarget
	}
	return tag.String()
}

// Target returns the target language.
func (t *Translator) Target() string {
	if t == nil {
		return ""
	}
	return t.target
}

// Text translates s. Empty text and provider failures return s.
func (t *Translator) Text(ctx context.Context, s string) string {
	if t == nil || strings.TrimSpace(s) == "" {
		return s
	}

	key := t.key(s)
	if t.cache != nil {
		if res, ok := t.cache.Get(key); ok {
			t.observe(OutcomeHit)
			return res
		}
	}

	res, err := t.provider.Translate(ctx, s, t.target)
	if err != nil || res == "" {
		t.observe(OutcomeError)
		slog.Warn("Translation failed, keeping original text",
			"provider", t.provider.Name(),
			"target", t.target,
			"error", err,
		)
		return s
	}

	t.observe(OutcomeMiss)
	if t.cache != nil {
		t.cache.Put(key, res)
	}
	return res
}

// Record returns a copy of r with translatable fields translated. List
// elements are translated one by one.
func (t *Translator) Record(ctx context.Context, r plant.Record) plant.Record {
	res := r.Clone()
	if t == nil {
		return res
	}

	for _, spec := range plant.Fields {
		if !spec.Translatable {
			continue
		}
		v := res.Get(spec.Name)
		if v.IsEmpty() {
			continue
		}
		switch spec.Kind {
		case plant.KindScalar:
			res.Set(spec.Name, plant.Scalar(t.Text(ctx, v.Str)))
		case plant.KindList:
			items := make([]string, len(v.Items))
			for i := range v.Items {
				items[i] = t.Text(ctx, v.Items[i])
			}
			res.Set(spec.Name, plant.List(items))
		}
	}
	return res
}

func (t *Translator) key(s string) string {
	return fmt.Sprintf("%s|%s|%s", t.provider.Name(), t.target, gnuuid.New(s).String())
}

func (t *Translator) observe(o Outcome) {
	if t.observer != nil {
		t.observer.ObserveTranslation(o)
	}
}
