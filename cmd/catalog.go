/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"time"

	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/internal/iosources"
	"github.com/herbolive/herbdb/internal/iostore"
	"github.com/herbolive/herbdb/internal/iotranslate"
	"github.com/herbolive/herbdb/pkg/catalog"
	"github.com/herbolive/herbdb/pkg/merge"
	"github.com/herbolive/herbdb/pkg/parserpool"
	"github.com/herbolive/herbdb/pkg/translate"
)

// newCatalog wires storage, enrichment sources and translation into a
// catalog service. The returned function waits for background write-backs
// and releases resources.
func newCatalog(
	ctx context.Context,
	m *iometrics.Metrics,
) (*catalog.Service, func(), error) {
	st, err := iostore.Open(ctx, cfg, iostore.OptMetrics(m))
	if err != nil {
		return nil, nil, err
	}

	parser := parserpool.NewPool(cfg.JobsNumber)

	timeout := time.Duration(cfg.Sources.TimeoutSec) * time.Second
	pipeline := merge.NewPipeline(
		iosources.Clients(cfg, iosources.OptMetrics(m)),
		merge.OptTimeout(timeout),
	)

	opts := []catalog.Option{
		catalog.OptEnricher(pipeline),
		catalog.OptParser(parser),
		catalog.OptDBFirst(cfg.Server.DBFirst),
		catalog.OptListConcurrency(cfg.Server.ListConcurrency),
	}

	if p := iotranslate.New(cfg.Translate); p != nil {
		tr := translate.New(
			p,
			translate.NewCache(cfg.Translate.CacheSize),
			cfg.Translate.Target,
			translate.OptObserver(m),
		)
		opts = append(opts, catalog.OptTranslator(tr))
	}

	cat := catalog.New(st, opts...)
	closeFn := func() {
		cat.Wait()
		parser.Close()
		st.Close()
	}
	return cat, closeFn, nil
}
