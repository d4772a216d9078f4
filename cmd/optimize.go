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

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/internal/iooptimize"
	"github.com/herbolive/herbdb/internal/iostore"
	"github.com/herbolive/herbdb/pkg/parserpool"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize stored plants and database statistics",
		Long: `Optimize runs maintenance of the plants table.

This command:
  1. Fills empty genus and species from scientific names
  2. Runs VACUUM ANALYZE to update statistics

Populated genus and species are never replaced.
Safe to run multiple times.

Examples:
  herbdb optimize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOptimize(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return optimizeCmd
}

func runOptimize(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	parser := parserpool.NewPool(cfg.JobsNumber)
	defer parser.Close()

	return iooptimize.NewOptimizer(st, parser).Optimize(ctx)
}
