// Package iotranslate implements translation providers over the HTTP APIs
// of LibreTranslate, DeepL and Google Cloud Translation.
package iotranslate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/translate"
)

const (
	// Attempts is the number of tries of one translation.
	Attempts = 3

	// Backoff is multiplied by the attempt number to get the pause before
	// the next attempt.
	Backoff = 500 * time.Millisecond

	// DefaultTimeout limits one request to a provider.
	DefaultTimeout = 15 * time.Second
)

const maxBody = 1 << 20

var errEmpty = errors.New("provider returned no translation")

// Option configures a provider.
type Option func(*base)

// OptHTTPClient replaces the HTTP client.
func OptHTTPClient(c *http.Client) Option {
	return func(b *base) {
		if c != nil {
			b.http = c
		}
	}
}

// OptBackoff sets the pause unit between attempts.
func OptBackoff(d time.Duration) Option {
	return func(b *base) {
		if d >= 0 {
			b.backoff = d
		}
	}
}

// New creates the provider of the configuration. It returns nil when
// translation is off or the provider is unknown.
func New(cfg config.TranslateConfig, opts ...Option) translate.Provider {
	switch strings.ToLower(cfg.Provider) {
	case "libretranslate":
		return NewLibreTranslate(cfg.URL, cfg.APIKey, opts...)
	case "deepl":
		return NewDeepL(cfg.URL, cfg.APIKey, opts...)
	case "google":
		return NewGoogle(cfg.URL, cfg.APIKey, opts...)
	default:
		return nil
	}
}

type base struct {
	name    string
	url     string
	key     string
	http    *http.Client
	backoff time.Duration
}

func newBase(name, endpoint, defaultURL, key string, opts []Option) base {
	if endpoint == "" {
		endpoint = defaultURL
	}
	res := base{
		name:    name,
		url:     endpoint,
		key:     key,
		http:    &http.Client{Timeout: DefaultTimeout},
		backoff: Backoff,
	}
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

// Name returns the provider name.
func (b *base) Name() string {
	return b.name
}

// post sends the request made by newReq and decodes the JSON answer into
// out. Failed attempts are repeated after a growing pause.
func (b *base) post(
	ctx context.Context,
	newReq func(context.Context) (*http.Request, error),
	out any,
) error {
	var err error
	for attempt := 1; attempt <= Attempts; attempt++ {
		if err = b.try(ctx, newReq, out); err == nil {
			return nil
		}
		if ctx.Err() != nil || attempt == Attempts {
			break
		}

		select {
		case <-time.After(b.backoff * time.Duration(attempt)):
		case <-ctx.Done():
		}
	}
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	return TranslationError(b.name, Attempts, err)
}

func (b *base) try(
	ctx context.Context,
	newReq func(context.Context) (*http.Request, error),
	out any,
) error {
	req, err := newReq(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s: %.200s", resp.Status, data)
	}

	enc := gnfmt.GNjson{}
	return enc.Decode(data, out)
}

func jsonRequest(endpoint string, payload any) func(context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		enc := gnfmt.GNjson{}
		body, err := enc.Encode(payload)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, endpoint, strings.NewReader(string(body)),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}
}
