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
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/spf13/cobra"
)

// getGetCmd returns the get command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getGetCmd() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Look up a plant and print it as JSON",
		Long: `Look up a plant the same way the API does and print it as JSON.

KEY is one of:
  - a numeric id
  - a scientific name, spaces can be replaced by underscores
  - a part of a common name

In db-first mode the record is enriched from external sources and
the new fields are saved back to the database.

Examples:
  herbdb get 42
  herbdb get Quercus_robur
  herbdb get "dog rose"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGet(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return getCmd
}

func runGet(cmd *cobra.Command, key string) error {
	ctx := context.Background()

	cat, closeFn, err := newCatalog(ctx, iometrics.New())
	if err != nil {
		return err
	}
	defer closeFn()

	rec, err := cat.GetPlant(ctx, key)
	if err != nil {
		return err
	}

	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(rec)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
