package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/internal/iocsv"
	"github.com/herbolive/herbdb/internal/iosources"
	"github.com/herbolive/herbdb/internal/iostore"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/errcode"
	"github.com/herbolive/herbdb/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetImportCmd_Flags verifies import flags.
func TestGetImportCmd_Flags(t *testing.T) {
	cmd := getImportCmd()
	assert.Equal(t, "import", cmd.Use)

	tests := []struct {
		name, short, def string
	}{
		{"file", "i", ""},
		{"trefle", "t", "false"},
		{"max-rows", "m", "0"},
	}
	for _, v := range tests {
		f := cmd.Flags().Lookup(v.name)
		require.NotNil(t, f, v.name)
		assert.Equal(t, v.short, f.Shorthand, v.name)
		assert.Equal(t, v.def, f.DefValue, v.name)
	}
}

// TestImportBulk verifies the choice of the bulk source.
func TestImportBulk(t *testing.T) {
	useSQLite(t)

	_, _, err := importBulk("", false)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ImportReadError, gnErr.Code)

	bulk, max, err := importBulk("plants.csv", false)
	require.NoError(t, err)
	assert.IsType(t, &iocsv.File{}, bulk)
	assert.Equal(t, cfg.Sources.CSVMaxRead, max)

	cfg.Update([]config.Option{config.OptSourcesCSVPath("default.csv")})
	bulk, _, err = importBulk("", false)
	require.NoError(t, err)
	assert.Equal(t, "default.csv", bulk.(*iocsv.File).Path())

	bulk, max, err = importBulk("", true)
	require.NoError(t, err)
	assert.IsType(t, &iosources.Trefle{}, bulk)
	assert.Equal(t, cfg.Sources.ListingMax, max)
}

// TestRunImport imports a CSV file into sqlite and writes the
// failures report.
func TestRunImport(t *testing.T) {
	useSQLite(t)

	path := filepath.Join(t.TempDir(), "plants.csv")
	data := "scientific_name;common_name;family\n" +
		"Lavandula angustifolia;Lavender;Lamiaceae\n" +
		"Salvia officinalis;Sage;Lamiaceae\n" +
		";;Nobody\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cmd := getImportCmd()
	require.NoError(t, cmd.Flags().Set("max-rows", "10"))
	require.NoError(t, runImport(cmd, path, false, 10))

	st, err := iostore.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer st.Close()

	rows, total, err := st.List(context.Background(), store.Query{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, rows, 2)

	_, err = st.FindByName(context.Background(), "Salvia", "officinalis")
	assert.NoError(t, err)

	report, err := os.ReadFile(config.FailuresFilePath(cfg.HomeDir))
	require.NoError(t, err)
	assert.Contains(t, string(report), "Nobody")
}
