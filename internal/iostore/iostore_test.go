package iostore_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/internal/iostore"
	"github.com/herbolive/herbdb/internal/iotesting"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/normalize"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertEmpty(t *testing.T) {
	st := iotesting.NewSQLiteStore(t)
	res, err := st.UpsertMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, &store.Report{}, res)
}

func TestRoundTrip(t *testing.T) {
	st := iotesting.NewSQLiteStore(t)
	ctx := context.Background()

	rec := plant.Record{
		Genus: "Lavandula", Species: "angustifolia",
		ScientificName: "Lavandula angustifolia",
		CommonName:     "English lavender",
		Pollinators:    []string{"bee", "moth"},
		Soils:          []string{"sand", "loam, well drained"},
		Edibility:      plant.FlagFalse,
		Height:         "0.6",
		ImageURL:       "lavender.jpg",
		Images:         []string{"lavender.jpg", "field.jpg"},
	}
	res, err := st.UpsertMany(ctx, []plant.Record{rec})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)

	row, err := st.FindByName(ctx, "Lavandula", "angustifolia")
	require.NoError(t, err)
	back := normalize.Normalize(row)

	assert.NotZero(t, back.ID)
	assert.Equal(t, plant.SourceDB, back.Source)
	assert.Equal(t, []string{"bee", "moth"}, back.Pollinators)
	assert.Equal(t, []string{"sand", "loam, well drained"}, back.Soils)
	assert.Equal(t, plant.FlagFalse, back.Edibility)
	assert.Equal(t, plant.FlagUnknown, back.Medicinal)
	assert.Empty(t, back.Description)

	rec.ID = back.ID
	rec.Source = plant.SourceDB
	assert.Equal(t, rec, back)
}

func TestUpsertIdentity(t *testing.T) {
	st := iotesting.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertMany(ctx, []plant.Record{{
		Genus: "Quercus", Species: "robur", CommonName: "English oak",
		Habitat: "forest",
	}})
	require.NoError(t, err)

	res, err := st.UpsertMany(ctx, []plant.Record{{
		Genus: "Quercus", Species: "robur", CommonName: "Pedunculate oak",
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 1, res.Updated)

	rows, total, err := st.List(ctx, store.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	rec := normalize.Normalize(rows[0])
	assert.Equal(t, "Pedunculate oak", rec.CommonName)
	// empty fields of the update keep stored values
	assert.Equal(t, "forest", rec.Habitat)
}

func TestUpsertCommonNameMatch(t *testing.T) {
	st := iotesting.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertMany(ctx, []plant.Record{{CommonName: "Yarrow"}})
	require.NoError(t, err)

	res, err := st.UpsertMany(ctx, []plant.Record{{
		Genus: "Achillea", Species: "millefolium", CommonName: "Yarrow",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)

	// a different pair with the same common name is the same plant
	res, err = st.UpsertMany(ctx, []plant.Record{{
		Genus: "Achillea", Species: "borealis", CommonName: "Yarrow",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)

	_, total, err := st.List(ctx, store.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestBatchIsolation(t *testing.T) {
	m := iometrics.New()
	st := iotesting.NewSQLiteStore(t, iostore.OptMetrics(m))
	ctx := context.Background()

	recs := make([]plant.Record, 500)
	for i := range recs {
		recs[i] = plant.Record{
			Genus:   fmt.Sprintf("Genus%03d", i),
			Species: "vulgaris",
		}
	}
	recs[137].Genus = strings.Repeat("x", 300)

	res, err := st.UpsertMany(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 499, res.Inserted)
	assert.Equal(t, 0, res.Updated)
	require.Len(t, res.Failures, 1)

	f := res.Failures[0]
	assert.Equal(t, 137, f.Index)
	assert.Equal(t, recs[137], f.Record)
	assert.Equal(t, plant.IdentityKey(recs[137]), f.Key)
	assert.NotEmpty(t, f.Error)

	_, total, err := st.List(ctx, store.Query{})
	require.NoError(t, err)
	assert.Equal(t, 499, total)

	n, err := testutil.GatherAndCount(m.Registry(), "herbdb_store_upserts_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBatchOffsets(t *testing.T) {
	st := iotesting.NewSQLiteStore(t, iostore.OptBatchSize(2))
	ctx := context.Background()

	recs := []plant.Record{
		{CommonName: "Dog rose"},
		{CommonName: "Field rose"},
		{CommonName: "Rock rose"},
		{CommonName: strings.Repeat("y", 256)},
		{CommonName: "Dog rose", Family: "Rosaceae"},
	}
	res, err := st.UpsertMany(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 3, res.Failures[0].Index)

	row, err := st.FindByCommonName(ctx, "dog")
	require.NoError(t, err)
	assert.Equal(t, "Rosaceae", normalize.Normalize(row).Family)
}

func TestEndToEnd(t *testing.T) {
	st := iotesting.NewSQLiteStore(t)
	ctx := context.Background()

	rec := normalize.Normalize(map[string]any{
		"Genus":       "Rosa",
		"Species":     "canina",
		"CommonName":  "Dog rose",
		"Pollinators": "bees, flies",
	})
	assert.Equal(t, "Rosa canina", rec.ScientificName)
	assert.Equal(t, []string{"bees", "flies"}, rec.Pollinators)

	res, err := st.UpsertMany(ctx, []plant.Record{rec})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)

	row, err := st.FindByName(ctx, "Rosa", "canina")
	require.NoError(t, err)
	back := normalize.Normalize(row)
	assert.Equal(t, "Dog rose", back.CommonName)
	assert.Equal(t, []string{"bees", "flies"}, back.Pollinators)
}

func TestFind(t *testing.T) {
	st := iotesting.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertMany(ctx, []plant.Record{
		{Genus: "Quercus", Species: "robur", CommonName: "English oak"},
		{Genus: "Quercus", Species: "alba", CommonName: "White oak"},
		{Genus: "Rosa", Species: "canina", CommonName: "Dog rose"},
	})
	require.NoError(t, err)

	row, err := st.FindByCommonName(ctx, "OAK")
	require.NoError(t, err)
	oak := normalize.Normalize(row)
	assert.Equal(t, "English oak", oak.CommonName)

	row, err = st.FindByID(ctx, oak.ID)
	require.NoError(t, err)
	assert.Equal(t, oak, normalize.Normalize(row))

	_, err = st.FindByID(ctx, 1000)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.FindByName(ctx, "quercus", "robur")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.FindByName(ctx, "Quercus", "")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.FindByCommonName(ctx, "birch")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.FindByCommonName(ctx, " ")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindLiteralText(t *testing.T) {
	st := iotesting.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertMany(ctx, []plant.Record{
		{Genus: "Rosa", Species: "canina", CommonName: "Dog rose"},
	})
	require.NoError(t, err)

	// wildcard characters match only themselves
	for _, text := range []string{"%", "_", "d_g", "d%e", `\`} {
		_, err = st.FindByCommonName(ctx, text)
		assert.ErrorIs(t, err, store.ErrNotFound, text)

		rows, total, err := st.List(ctx, store.Query{Text: text})
		require.NoError(t, err, text)
		assert.Zero(t, total, text)
		assert.Empty(t, rows, text)
	}

	_, err = st.UpsertMany(ctx, []plant.Record{
		{Genus: "Prunus", Species: "persica", CommonName: "Peach 100%"},
		{Genus: "Salix", Species: "alba", CommonName: `Willow_a\b`},
	})
	require.NoError(t, err)

	tests := []struct {
		text, expected string
	}{
		{"100%", "Peach 100%"},
		{"w_a", `Willow_a\b`},
		{`a\b`, `Willow_a\b`},
	}
	for _, v := range tests {
		row, err := st.FindByCommonName(ctx, v.text)
		require.NoError(t, err, v.text)
		assert.Equal(t, v.expected, normalize.Normalize(row).CommonName, v.text)
	}
}

func TestList(t *testing.T) {
	st := iotesting.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertMany(ctx, []plant.Record{
		{Genus: "Rosa", Species: "canina", CommonName: "Dog rose", Family: "Rosaceae"},
		{Genus: "Quercus", Species: "robur", CommonName: "English oak", Family: "Fagaceae"},
		{Genus: "Malus", Species: "domestica", CommonName: "Apple", Family: "Rosaceae"},
		{Genus: "Fagus", Species: "sylvatica", CommonName: "Beech", Family: "Fagaceae"},
	})
	require.NoError(t, err)

	tests := []struct {
		msg      string
		query    store.Query
		total    int
		expected []string
	}{
		{"all", store.Query{}, 4, []string{"Apple", "Beech", "Dog rose", "English oak"}},
		{"family", store.Query{Text: "rosaceae"}, 2, []string{"Apple", "Dog rose"}},
		{"binomial", store.Query{Text: "Quercus rob"}, 1, []string{"English oak"}},
		{"common", store.Query{Text: "oak"}, 1, []string{"English oak"}},
		{"page 1", store.Query{Page: 1, PerPage: 3}, 4, []string{"Apple", "Beech", "Dog rose"}},
		{"page 2", store.Query{Page: 2, PerPage: 3}, 4, []string{"English oak"}},
		{"none", store.Query{Text: "birch"}, 0, nil},
	}

	for _, v := range tests {
		rows, total, err := st.List(ctx, v.query)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.total, total, v.msg)
		var names []string
		for _, row := range rows {
			names = append(names, normalize.Normalize(row).CommonName)
		}
		assert.Equal(t, v.expected, names, v.msg)
	}
}

func TestUpdateFields(t *testing.T) {
	st := iotesting.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertMany(ctx, []plant.Record{{
		Genus: "Rosa", Species: "canina", CommonName: "Dog rose", Habitat: "hedges",
	}})
	require.NoError(t, err)
	row, err := st.FindByName(ctx, "Rosa", "canina")
	require.NoError(t, err)
	rec := normalize.Normalize(row)

	rec.Description = "A climbing wild rose"
	rec.Medicinal = plant.FlagTrue
	rec.Images = []string{"rose.jpg"}
	rec.Habitat = "ignored"
	err = st.UpdateFields(ctx, rec.ID, rec,
		plant.NewFieldSet(plant.Description, plant.Medicinal, plant.Images))
	require.NoError(t, err)

	row, err = st.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	back := normalize.Normalize(row)
	assert.Equal(t, "A climbing wild rose", back.Description)
	assert.Equal(t, plant.FlagTrue, back.Medicinal)
	assert.Equal(t, []string{"rose.jpg"}, back.Images)
	assert.Equal(t, "rose.jpg", back.ImageURL)
	assert.Equal(t, "hedges", back.Habitat)

	assert.NoError(t, st.UpdateFields(ctx, rec.ID, rec, plant.NewFieldSet()))
	err = st.UpdateFields(ctx, 1000, rec, plant.NewFieldSet(plant.Description))
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.ErrorIs(t, gnErr.Err, store.ErrNotFound)
}

func TestOpen(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(iotesting.TempHome(t)),
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabaseSQLitePath(filepath.Join(t.TempDir(), "open.sqlite")),
	})

	st, err := iostore.Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, st.Close())

	cfg.Database.Driver = "oracle"
	_, err = iostore.Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestErrorCaller(t *testing.T) {
	err := iostore.QueryError("list", errors.New("boom"))
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Contains(t, gnErr.Err.Error(), "TestErrorCaller")
	assert.NotContains(t, gnErr.Err.Error(), "&{")
}
