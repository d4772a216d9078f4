package iosources

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/source"
)

// Wikipedia takes descriptions and thumbnails from page summaries of the
// Wikipedia REST API.
type Wikipedia struct {
	base
	baseURL string
}

var _ source.Client = (*Wikipedia)(nil)

// NewWikipedia creates a Wikipedia client.
func NewWikipedia(baseURL string, opts ...Option) *Wikipedia {
	return &Wikipedia{
		base:    newBase(plant.SourceWikipedia, opts),
		baseURL: baseURL,
	}
}

type wikiSummary struct {
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// Search returns the summary of the page titled query.
func (w *Wikipedia) Search(ctx context.Context, query string) map[string]any {
	title := strings.Join(strings.Fields(query), "_")
	if title == "" {
		return nil
	}

	start := time.Now()
	res, err := w.search(ctx, title)
	return w.finish(query, start, res, err)
}

func (w *Wikipedia) search(ctx context.Context, title string) (map[string]any, error) {
	u, err := parseBase(w.baseURL)
	if err != nil {
		return nil, SourceUnavailableError(w.name, w.baseURL, err)
	}
	u = summaryURL(u, title)

	var resp wikiSummary
	if err = w.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	res := make(map[string]any, 2)
	if resp.Extract != "" {
		res["description"] = resp.Extract
	}
	if resp.Thumbnail.Source != "" {
		res["image_url"] = resp.Thumbnail.Source
	}
	return res, nil
}

// summaryURL appends the summary path of title to the API base. A slash
// in the title is escaped, not treated as a path separator.
func summaryURL(base *url.URL, title string) *url.URL {
	u := base.JoinPath("page", "summary")
	raw := u.EscapedPath() + "/" + url.PathEscape(title)
	u.Path += "/" + title
	u.RawPath = raw
	return u
}
