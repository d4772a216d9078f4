package iotranslate

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/herbolive/herbdb/pkg/translate"
	"golang.org/x/text/language"
)

// DeepLURL is the endpoint of the free DeepL API.
const DeepLURL = "https://api-free.deepl.com/v2/translate"

// DeepL is a client of the DeepL API.
type DeepL struct {
	base
}

var _ translate.Provider = (*DeepL)(nil)

// NewDeepL creates a DeepL provider with the given authentication key.
func NewDeepL(endpoint, key string, opts ...Option) *DeepL {
	return &DeepL{base: newBase("deepl", endpoint, DeepLURL, key, opts)}
}

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate translates text to the base language of target.
func (d *DeepL) Translate(
	ctx context.Context,
	text, target string,
) (string, error) {
	form := url.Values{}
	form.Set("auth_key", d.key)
	form.Set("text", text)
	form.Set("target_lang", deeplLang(target))

	newReq := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, d.url, strings.NewReader(form.Encode()),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	var resp deeplResponse
	if err := d.post(ctx, newReq, &resp); err != nil {
		return "", err
	}
	if len(resp.Translations) == 0 || strings.TrimSpace(resp.Translations[0].Text) == "" {
		return "", TranslationError(d.name, 1, errEmpty)
	}
	return resp.Translations[0].Text, nil
}

// deeplLang converts a language tag to an upper-case DeepL language code.
func deeplLang(target string) string {
	tag, err := language.Parse(target)
	if err != nil {
		return strings.ToUpper(target)
	}
	b, _ := tag.Base()
	return strings.ToUpper(b.String())
}
