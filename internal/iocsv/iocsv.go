// Package iocsv reads plant datasets from CSV files. The reader is lenient:
// it accepts files exported from spreadsheets with unknown separators,
// stray quotes and rows of uneven length.
package iocsv

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/source"
)

const bom = "\uFEFF"

var separators = []rune{',', ';', '\t'}

// Read returns up to max data rows of r keyed by header names. Zero or
// negative max means no limit. Cells beyond the header width are joined
// into the last column, missing cells are empty strings.
func Read(r io.Reader, max int) ([]map[string]any, error) {
	br := bufio.NewReader(r)

	header, err := headerLine(br)
	if err != nil {
		return nil, err
	}
	if header == "" {
		return nil, nil
	}
	sep := detectSeparator(header)

	cr := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	cr.Comma = sep
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	cols, err := cr.Read()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, v := range cols {
		names[i] = strings.TrimSpace(v)
		if names[i] == "" {
			names[i] = fmt.Sprintf("col%d", i)
		}
	}

	var res []map[string]any
	for max <= 0 || len(res) < max {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		if isBlank(cells) {
			continue
		}
		res = append(res, toRow(names, cells, sep))
	}
	return res, nil
}

// ReadFile reads up to max rows of the CSV file at path.
func ReadFile(path string, max int) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	res, err := Read(f, max)
	if err != nil {
		return nil, ReadError(path, err)
	}
	return res, nil
}

// File is a bulk source of records kept in a CSV file.
type File struct {
	path string
}

var _ source.Bulk = (*File)(nil)

// NewFile creates a bulk source for the CSV file at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Name returns the csv source.
func (f *File) Name() plant.Source {
	return plant.SourceCSV
}

// Path returns the location of the file.
func (f *File) Path() string {
	return f.path
}

// Rows reads up to max rows of the file.
func (f *File) Rows(ctx context.Context, max int) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(f.path, max)
}

// headerLine returns the first non-blank line of br without its BOM.
func headerLine(br *bufio.Reader) (string, error) {
	first := true
	for {
		line, err := br.ReadString('\n')
		if first {
			line = strings.TrimPrefix(line, bom)
			first = false
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
	}
}

// detectSeparator picks the most frequent separator of the header. Comma
// wins ties.
func detectSeparator(header string) rune {
	res := separators[0]
	count := -1
	for _, sep := range separators {
		if n := strings.Count(header, string(sep)); n > count {
			res, count = sep, n
		}
	}
	return res
}

func toRow(names, cells []string, sep rune) map[string]any {
	res := make(map[string]any, len(names))
	last := len(names) - 1
	for i, name := range names {
		var v string
		switch {
		case i == last && len(cells) > len(names):
			extra := make([]string, 0, len(cells)-last)
			for _, c := range cells[last:] {
				extra = append(extra, strings.TrimSpace(c))
			}
			v = strings.Join(extra, string(sep))
		case i < len(cells):
			v = strings.TrimSpace(cells[i])
		}
		res[name] = v
	}
	return res
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
