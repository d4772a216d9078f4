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
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/internal/ioweb"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API of the plant catalog",
		Long: `Start the HTTP API of the plant catalog.

Endpoints:
  GET /health              service status and mode
  GET /api/config          current lookup mode
  GET /api/plants          page of plants (q, page, perPage, limit)
  GET /api/plants/:id      plant by id, scientific or common name
  GET /metrics             Prometheus metrics

In db-first mode (default) stored records are enriched from
Perenual, Trefle, Wikipedia and the local CSV file, and new
fields are saved back to the database. With --api-first records
are returned as stored.

Examples:
  herbdb serve
  herbdb serve --port 8080
  herbdb serve -p 8080 --api-first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().IntP("port", "p", 0, "port of the HTTP server")
	serveCmd.Flags().BoolP("api-first", "a", false,
		"do not enrich stored records from external sources")

	return serveCmd
}

func runServe(cmd *cobra.Command) error {
	cfg.Update(flagOptions(cmd, portFlag, apiFirstFlag))

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	m := iometrics.New()
	cat, closeFn, err := newCatalog(ctx, m)
	if err != nil {
		return err
	}
	defer closeFn()

	srv := ioweb.New(cfg, cat, ioweb.OptMetrics(m))
	gn.Info("Serving <em>%s</em> API on <em>http://%s</em>",
		cat.Mode(), srv.Addr())

	if err = srv.Run(ctx); err != nil {
		return err
	}

	gn.Info("Waiting for pending database updates...")
	return nil
}
