package iotranslate

import (
	"context"
	"strings"

	"github.com/herbolive/herbdb/pkg/translate"
)

// LibreTranslateURL is the default LibreTranslate endpoint.
const LibreTranslateURL = "https://libretranslate.de/translate"

// LibreTranslate is a client of a LibreTranslate server.
type LibreTranslate struct {
	base
}

var _ translate.Provider = (*LibreTranslate)(nil)

// NewLibreTranslate creates a LibreTranslate provider. The key is
// optional.
func NewLibreTranslate(endpoint, key string, opts ...Option) *LibreTranslate {
	return &LibreTranslate{
		base: newBase("libretranslate", endpoint, LibreTranslateURL, key, opts),
	}
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate detects the language of text and translates it to target.
func (l *LibreTranslate) Translate(
	ctx context.Context,
	text, target string,
) (string, error) {
	payload := libreRequest{
		Q:      text,
		Source: "auto",
		Target: target,
		Format: "text",
		APIKey: l.key,
	}

	var resp libreResponse
	if err := l.post(ctx, jsonRequest(l.url, payload), &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.TranslatedText) == "" {
		return "", TranslationError(l.name, 1, errEmpty)
	}
	return resp.TranslatedText, nil
}
