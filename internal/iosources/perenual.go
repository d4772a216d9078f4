package iosources

import (
	"context"
	"time"

	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/source"
)

// Perenual looks plants up in the species list of the Perenual API.
type Perenual struct {
	base
	baseURL string
	key     string
}

var _ source.Client = (*Perenual)(nil)

// NewPerenual creates a Perenual client. The client is disabled when key
// is empty.
func NewPerenual(baseURL, key string, opts ...Option) *Perenual {
	return &Perenual{
		base:    newBase(plant.SourcePerenual, opts),
		baseURL: baseURL,
		key:     key,
	}
}

type perenualResponse struct {
	Data []map[string]any `json:"data"`
}

// Search returns the first species that matches query.
func (p *Perenual) Search(ctx context.Context, query string) map[string]any {
	if p.key == "" || query == "" {
		return nil
	}

	start := time.Now()
	res, err := p.search(ctx, query)
	return p.finish(query, start, res, err)
}

func (p *Perenual) search(ctx context.Context, query string) (map[string]any, error) {
	u, err := parseBase(p.baseURL)
	if err != nil {
		return nil, SourceUnavailableError(p.name, p.baseURL, err)
	}
	u = u.JoinPath("api", "species-list")
	q := u.Query()
	q.Set("key", p.key)
	q.Set("q", query)
	u.RawQuery = q.Encode()

	var resp perenualResponse
	if err = p.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errNoData
	}
	return flattenPerenual(resp.Data[0]), nil
}

// flattenPerenual converts a species of Perenual to raw record fields.
func flattenPerenual(item map[string]any) map[string]any {
	res := make(map[string]any, len(item))
	for k, v := range item {
		switch k {
		case "id", "default_image", "other_name", "cycle", "scientific_name":
			continue
		}
		res[k] = v
	}

	res["scientific_name"] = first(item["scientific_name"])
	if v, ok := item["cycle"]; ok {
		res["type"] = v
	}
	if img, ok := item["default_image"].(map[string]any); ok {
		for _, k := range []string{"original_url", "regular_url"} {
			if s, ok := img[k].(string); ok && s != "" {
				res["image_url"] = s
				break
			}
		}
	}
	return res
}
