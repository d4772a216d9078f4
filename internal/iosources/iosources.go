// Package iosources implements source clients over the HTTP APIs of
// Perenual, Trefle and Wikipedia, and over a local CSV dataset.
//
// Clients never return errors from Search. A failed lookup is logged,
// counted and turns into a nil payload, so that enrichment goes on with
// the next source.
package iosources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/source"
)

// DefaultTimeout limits a single request to a source.
const DefaultTimeout = 15 * time.Second

// UserAgent identifies herbdb to the APIs.
const UserAgent = "herbdb/1.0 (https://github.com/herbolive/herbdb)"

// responses bigger than that are rejected
const maxBody = 8 << 20

var (
	errNoData  = errors.New("empty response")
	errNoToken = errors.New("no credentials")
)

// Option configures a source client.
type Option func(*base)

// OptMetrics sets the instruments that count lookups.
func OptMetrics(m *iometrics.Metrics) Option {
	return func(b *base) {
		b.metrics = m
	}
}

// OptTimeout sets the timeout of one request.
func OptTimeout(d time.Duration) Option {
	return func(b *base) {
		if d > 0 {
			b.http.Timeout = d
		}
	}
}

// OptHTTPClient replaces the HTTP client.
func OptHTTPClient(c *http.Client) Option {
	return func(b *base) {
		if c != nil {
			b.http = c
		}
	}
}

// Clients creates all source clients of the configuration in the order of
// their priority.
func Clients(cfg *config.Config, opts ...Option) []source.Client {
	opts = append(
		[]Option{OptTimeout(time.Duration(cfg.Sources.TimeoutSec) * time.Second)},
		opts...,
	)
	src := cfg.Sources
	res := []source.Client{
		NewPerenual(src.PerenualURL, src.PerenualKey, opts...),
		NewTrefle(src.TrefleURL, src.TrefleToken, opts...),
		NewWikipedia(src.WikipediaURL, opts...),
	}
	if src.CSVPath != "" {
		res = append(res, NewCSV(src.CSVPath, src.CSVMaxRead, opts...))
	}
	return res
}

// base keeps what HTTP clients of all sources share.
type base struct {
	name    plant.Source
	http    *http.Client
	metrics *iometrics.Metrics
}

func newBase(name plant.Source, opts []Option) base {
	res := base{
		name: name,
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

// Name returns the source of the client.
func (b *base) Name() plant.Source {
	return b.name
}

// getJSON decodes the body of a GET request into out.
func (b *base) getJSON(ctx context.Context, u *url.URL, out any) error {
	endpoint := u.Scheme + "://" + u.Host + u.Path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return SourceUnavailableError(b.name, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := b.http.Do(req)
	if err != nil {
		return SourceUnavailableError(b.name, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return RateLimitedError(b.name, endpoint)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		err = fmt.Errorf("unexpected status %s", resp.Status)
		return SourceUnavailableError(b.name, endpoint, err)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return SourceUnavailableError(b.name, endpoint, err)
	}
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, out); err != nil {
		return DecodeError(b.name, endpoint, err)
	}
	return nil
}

// finish logs and counts a lookup and returns its payload. Failed and
// empty lookups give nil.
func (b *base) finish(
	query string,
	start time.Time,
	res map[string]any,
	err error,
) map[string]any {
	dur := time.Since(start)
	switch {
	case errors.Is(err, errNoData) || (err == nil && len(res) == 0):
		slog.Debug("Source has no record", "source", b.name, "query", query)
		b.metrics.ObserveSource(b.name, iometrics.SourceMiss, dur)
		return nil
	case err != nil:
		slog.Warn("Source lookup failed",
			"source", b.name,
			"query", query,
			"duration", dur,
			"error", err,
		)
		b.metrics.ObserveSource(b.name, iometrics.SourceError, dur)
		return nil
	}
	b.metrics.ObserveSource(b.name, iometrics.SourceHit, dur)
	res["source"] = string(b.name)
	return res
}

func parseBase(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", raw)
	}
	return u, nil
}

// first returns the first element of a JSON array of strings, or the
// value itself when it is not an array.
func first(v any) any {
	if l, ok := v.([]any); ok {
		if len(l) == 0 {
			return nil
		}
		return l[0]
	}
	return v
}
