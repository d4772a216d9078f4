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
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/herbolive/herbdb/internal/iocsv"
	"github.com/herbolive/herbdb/internal/ioimport"
	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/internal/iosources"
	"github.com/herbolive/herbdb/internal/iostore"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/errcode"
	"github.com/herbolive/herbdb/pkg/parserpool"
	"github.com/herbolive/herbdb/pkg/source"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getImportCmd() *cobra.Command {
	var (
		file    string
		trefle  bool
		maxRows int
	)

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import plant records into the database",
		Long: `Import plant records from a CSV dataset or the Trefle listing.

This command:
  1. Opens the database using configuration settings
  2. Reads rows from the CSV file or pages of the Trefle species listing
  3. Normalizes rows and fills genus and species from scientific names
  4. Updates matching plants and inserts new ones in batches
  5. Writes records that could not be stored to a failures report

The CSV separator (comma, semicolon or tab) is detected from the
header. Without --file and --trefle the CSV file from
sources.csv_path of config.yaml is imported.

Failures report: ~/.local/share/herbdb/logs/import-failures.yaml

Examples:
  herbdb import --file plants.csv
  herbdb import -i plants.csv -m 1000
  herbdb import --trefle --max-rows 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd, file, trefle, maxRows)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().StringVarP(
		&file, "file", "i", "",
		"CSV file to import",
	)
	importCmd.Flags().BoolVarP(
		&trefle, "trefle", "t", false,
		"import the Trefle species listing",
	)
	importCmd.Flags().IntVarP(
		&maxRows, "max-rows", "m", 0,
		"maximum number of rows to read (0 = configured limit)",
	)
	importCmd.MarkFlagsMutuallyExclusive("file", "trefle")

	return importCmd
}

func runImport(
	cmd *cobra.Command,
	file string,
	trefle bool,
	maxRows int,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bulk, max, err := importBulk(file, trefle)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-rows") && maxRows > 0 {
		max = maxRows
	}

	st, err := iostore.Open(ctx, cfg, iostore.OptMetrics(iometrics.New()))
	if err != nil {
		return err
	}
	defer st.Close()

	parser := parserpool.NewPool(cfg.JobsNumber)
	defer parser.Close()

	imp := ioimport.New(st,
		ioimport.OptParser(parser),
		ioimport.OptProgress(true),
	)

	gn.Info("Importing records from <em>%s</em>...", bulk.Name())
	sum, err := imp.Import(ctx, bulk, max)
	if sum != nil {
		printImportSummary(sum)
		path := config.FailuresFilePath(cfg.HomeDir)
		if werr := ioimport.WriteFailures(path, sum); werr != nil {
			gn.PrintErrorMessage(werr)
		} else if len(sum.Failures) > 0 {
			gn.Warn("Failed records are saved to <em>%s</em>", path)
		}
	}
	return err
}

// importBulk picks the bulk source of the import and its default row
// limit.
func importBulk(file string, trefle bool) (source.Bulk, int, error) {
	timeout := time.Duration(cfg.Sources.TimeoutSec) * time.Second

	switch {
	case trefle:
		t := iosources.NewTrefle(
			cfg.Sources.TrefleURL,
			cfg.Sources.TrefleToken,
			iosources.OptTimeout(timeout),
		)
		return t, cfg.Sources.ListingMax, nil
	case file != "":
		return iocsv.NewFile(file), cfg.Sources.CSVMaxRead, nil
	case cfg.Sources.CSVPath != "":
		return iocsv.NewFile(cfg.Sources.CSVPath), cfg.Sources.CSVMaxRead, nil
	default:
		err := &gn.Error{
			Code: errcode.ImportReadError,
			Msg: `<err>Nothing to import.</err>
   Use <em>--file</em>, <em>--trefle</em> or set <em>sources.csv_path</em>.`,
			Err: errors.New("import source is not set"),
		}
		return nil, 0, err
	}
}

func printImportSummary(sum *ioimport.Summary) {
	gn.Info(`Import of <em>%s</em> is done in %s:
   read:     %s
   inserted: %s
   updated:  %s
   failed:   %s`,
		sum.Source,
		gnfmt.TimeString(sum.Duration.Seconds()),
		humanize.Comma(int64(sum.Read)),
		humanize.Comma(int64(sum.Inserted)),
		humanize.Comma(int64(sum.Updated)),
		humanize.Comma(int64(len(sum.Failures))),
	)
}
