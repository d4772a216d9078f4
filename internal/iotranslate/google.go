package iotranslate

import (
	"context"
	"net/url"
	"strings"

	"github.com/herbolive/herbdb/pkg/translate"
)

// GoogleURL is the endpoint of Google Cloud Translation v2.
const GoogleURL = "https://translation.googleapis.com/language/translate/v2"

// Google is a client of Google Cloud Translation.
type Google struct {
	base
}

var _ translate.Provider = (*Google)(nil)

// NewGoogle creates a Google provider with the given API key.
func NewGoogle(endpoint, key string, opts ...Option) *Google {
	return &Google{base: newBase("google", endpoint, GoogleURL, key, opts)}
}

type googleRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate translates text to target.
func (g *Google) Translate(
	ctx context.Context,
	text, target string,
) (string, error) {
	u, err := url.Parse(g.url)
	if err != nil {
		return "", TranslationError(g.name, 1, err)
	}
	q := u.Query()
	q.Set("key", g.key)
	u.RawQuery = q.Encode()

	payload := googleRequest{Q: text, Target: target, Format: "text"}

	var resp googleResponse
	if err = g.post(ctx, jsonRequest(u.String(), payload), &resp); err != nil {
		return "", err
	}
	tr := resp.Data.Translations
	if len(tr) == 0 || strings.TrimSpace(tr[0].TranslatedText) == "" {
		return "", TranslationError(g.name, 1, errEmpty)
	}
	return tr[0].TranslatedText, nil
}
