package iocsv_test

import (
	"context"
	"strings"
	"testing"

	"github.com/herbolive/herbdb/internal/iocsv"
	"github.com/herbolive/herbdb/internal/iotesting"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		msg      string
		input    string
		expected []map[string]any
	}{
		{
			msg:   "comma with bom",
			input: "\uFEFFGenus,Species,CommonName\nRosa,canina,Dog rose\n",
			expected: []map[string]any{
				{"Genus": "Rosa", "Species": "canina", "CommonName": "Dog rose"},
			},
		},
		{
			msg:   "semicolon",
			input: "Genus;Species;Soils\r\nRosa;canina;loam, sand\r\n",
			expected: []map[string]any{
				{"Genus": "Rosa", "Species": "canina", "Soils": "loam, sand"},
			},
		},
		{
			msg:   "tab",
			input: "Genus\tSpecies\nQuercus\trobur\n",
			expected: []map[string]any{
				{"Genus": "Quercus", "Species": "robur"},
			},
		},
		{
			msg:   "extra cells go to last column",
			input: "Genus,Species,Description\nRosa,canina,A rose, wild, climbing\n",
			expected: []map[string]any{
				{"Genus": "Rosa", "Species": "canina", "Description": "A rose,wild,climbing"},
			},
		},
		{
			msg:   "missing cells",
			input: "Genus,Species,Description\nRosa\n",
			expected: []map[string]any{
				{"Genus": "Rosa", "Species": "", "Description": ""},
			},
		},
		{
			msg:   "blank lines",
			input: "\n\nGenus,Species\n\nRosa,canina\n  \nQuercus,robur\n",
			expected: []map[string]any{
				{"Genus": "Rosa", "Species": "canina"},
				{"Genus": "Quercus", "Species": "robur"},
			},
		},
		{
			msg:   "quotes",
			input: "Genus, CommonName ,Habitat\nRosa,\"Dog rose, wild\",said \"hedges\"\n",
			expected: []map[string]any{
				{"Genus": "Rosa", "CommonName": "Dog rose, wild", "Habitat": `said "hedges"`},
			},
		},
		{
			msg:   "empty header cell",
			input: "Genus,,Species\nRosa,x,canina\n",
			expected: []map[string]any{
				{"Genus": "Rosa", "col1": "x", "Species": "canina"},
			},
		},
		{msg: "header only", input: "Genus,Species\n", expected: nil},
		{msg: "empty", input: "", expected: nil},
	}

	for _, v := range tests {
		res, err := iocsv.Read(strings.NewReader(v.input), 0)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.expected, res, v.msg)
	}
}

func TestReadMax(t *testing.T) {
	input := "Genus,Species\nRosa,canina\nRosa,gallica\nRosa,rugosa\n"

	res, err := iocsv.Read(strings.NewReader(input), 2)
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, "gallica", res[1]["Species"])

	res, err = iocsv.Read(strings.NewReader(input), -1)
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := iotesting.WriteFile(t, dir, "plants.csv",
		"Genus,Species,CommonName\nRosa,canina,Dog rose\nQuercus,robur,Oak\n")

	f := iocsv.NewFile(path)
	assert.Equal(t, plant.SourceCSV, f.Name())
	assert.Equal(t, path, f.Path())

	rows, err := f.Rows(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Oak", rows[1]["CommonName"])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Rows(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = iocsv.ReadFile(dir+"/missing.csv", 0)
	assert.Error(t, err)
}
