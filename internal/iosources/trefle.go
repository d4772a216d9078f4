package iosources

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/source"
)

// TreflePageSize is the number of species requested per listing page.
const TreflePageSize = 20

// Trefle looks plants up in the Trefle API. It also lists species for
// bulk import.
type Trefle struct {
	base
	baseURL string
	token   string
}

var (
	_ source.Client = (*Trefle)(nil)
	_ source.Bulk   = (*Trefle)(nil)
)

// NewTrefle creates a Trefle client. The client is disabled when token is
// empty.
func NewTrefle(baseURL, token string, opts ...Option) *Trefle {
	return &Trefle{
		base:    newBase(plant.SourceTrefle, opts),
		baseURL: baseURL,
		token:   token,
	}
}

type trefleResponse struct {
	Data  []map[string]any `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

// Search returns the first plant that matches query.
func (t *Trefle) Search(ctx context.Context, query string) map[string]any {
	if t.token == "" || query == "" {
		return nil
	}

	start := time.Now()
	res, err := t.search(ctx, query)
	return t.finish(query, start, res, err)
}

func (t *Trefle) search(ctx context.Context, query string) (map[string]any, error) {
	u, err := parseBase(t.baseURL)
	if err != nil {
		return nil, SourceUnavailableError(t.name, t.baseURL, err)
	}
	u = u.JoinPath("api", "v1", "plants", "search")
	q := u.Query()
	q.Set("token", t.token)
	q.Set("q", query)
	u.RawQuery = q.Encode()

	var resp trefleResponse
	if err = t.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errNoData
	}
	return flattenTrefle(resp.Data[0]), nil
}

// Rows pages through the species listing until max rows are collected or
// a page comes back empty. A failed page ends the listing. Its error is
// returned only when no rows were collected.
func (t *Trefle) Rows(ctx context.Context, max int) ([]map[string]any, error) {
	if t.token == "" {
		return nil, SourceUnavailableError(t.name, t.baseURL, errNoToken)
	}

	var res []map[string]any
	for page := 1; max <= 0 || len(res) < max; page++ {
		items, next, err := t.page(ctx, page)
		if err != nil {
			if len(res) == 0 {
				return nil, err
			}
			slog.Warn("Trefle listing stopped early",
				"page", page,
				"rows", len(res),
				"error", err,
			)
			break
		}
		for _, item := range items {
			res = append(res, flattenTrefle(item))
			if max > 0 && len(res) == max {
				break
			}
		}
		if len(items) == 0 || !next {
			break
		}
	}
	return res, nil
}

func (t *Trefle) page(ctx context.Context, page int) ([]map[string]any, bool, error) {
	u, err := parseBase(t.baseURL)
	if err != nil {
		return nil, false, SourceUnavailableError(t.name, t.baseURL, err)
	}
	u = u.JoinPath("api", "v1", "species")
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(TreflePageSize))
	q.Set("token", t.token)
	u.RawQuery = q.Encode()

	var resp trefleResponse
	if err = t.getJSON(ctx, u, &resp); err != nil {
		return nil, false, err
	}
	return resp.Data, resp.Links.Next != "", nil
}

// flattenTrefle converts a plant or species of Trefle to raw record
// fields.
func flattenTrefle(item map[string]any) map[string]any {
	res := make(map[string]any, len(item)+1)
	for k, v := range item {
		switch k {
		case "id", "links", "synonyms", "genus_id", "main_species_id":
			continue
		}
		res[k] = v
	}
	res["source"] = string(plant.SourceTrefle)
	return res
}
