package iosources_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/internal/iosources"
	"github.com/herbolive/herbdb/internal/iotesting"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/normalize"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerenual(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/species-list", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "Rosa canina", r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"data":[{
			"id": 42,
			"common_name": "Dog rose",
			"scientific_name": ["Rosa canina"],
			"cycle": "Perennial",
			"default_image": {"regular_url": "r.jpg", "original_url": ""}
		}, {"common_name": "other"}]}`)
	}))
	defer srv.Close()

	c := iosources.NewPerenual(srv.URL, "secret")
	assert.Equal(t, plant.SourcePerenual, c.Name())

	raw := c.Search(context.Background(), "Rosa canina")
	require.NotNil(t, raw)
	assert.NotContains(t, raw, "id")

	rec := normalize.Normalize(raw)
	assert.Equal(t, int64(0), rec.ID)
	assert.Equal(t, "Dog rose", rec.CommonName)
	assert.Equal(t, "Rosa canina", rec.ScientificName)
	assert.Equal(t, "Perennial", rec.Type)
	assert.Equal(t, "r.jpg", rec.ImageURL)
	assert.Equal(t, plant.SourcePerenual, rec.Source)
}

func TestPerenualDisabled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := iosources.NewPerenual(srv.URL, "")
	assert.Nil(t, c.Search(context.Background(), "Rosa canina"))
	assert.Equal(t, int32(0), calls.Load())
}

func TestFailures(t *testing.T) {
	tests := []struct {
		msg     string
		status  int
		body    string
		outcome string
	}{
		{"server error", http.StatusInternalServerError, `{}`, "error"},
		{"rate limit", http.StatusTooManyRequests, `{}`, "error"},
		{"not found", http.StatusNotFound, `{}`, "error"},
		{"bad json", http.StatusOK, `{"data": [`, "error"},
		{"empty", http.StatusOK, `{"data": []}`, "miss"},
	}

	for _, v := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(v.status)
			fmt.Fprint(w, v.body)
		}))
		m := iometrics.New()
		c := iosources.NewTrefle(srv.URL, "token", iosources.OptMetrics(m))

		assert.Nil(t, c.Search(context.Background(), "Rosa canina"), v.msg)

		expected := fmt.Sprintf(`
# HELP herbdb_source_requests_total Total number of source lookups by source and outcome
# TYPE herbdb_source_requests_total counter
herbdb_source_requests_total{outcome="%s",source="trefle"} 1
`, v.outcome)
		err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
			"herbdb_source_requests_total")
		assert.NoError(t, err, v.msg)
		srv.Close()
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := iosources.NewWikipedia(url)
	assert.Nil(t, c.Search(context.Background(), "Rosa canina"))

	c = iosources.NewWikipedia("not a url")
	assert.Nil(t, c.Search(context.Background(), "Rosa canina"))
}

func TestTrefleSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/plants/search", r.URL.Path)
		assert.Equal(t, "token", r.URL.Query().Get("token"))
		fmt.Fprint(w, `{"data":[{
			"id": 7,
			"common_name": "English oak",
			"scientific_name": "Quercus robur",
			"genus": "Quercus",
			"family": "Fagaceae",
			"image_url": "oak.jpg"
		}]}`)
	}))
	defer srv.Close()

	m := iometrics.New()
	c := iosources.NewTrefle(srv.URL, "token", iosources.OptMetrics(m))
	rec := normalize.Normalize(c.Search(context.Background(), "Quercus robur"))
	assert.Equal(t, "English oak", rec.CommonName)
	assert.Equal(t, "Quercus", rec.Genus)
	assert.Equal(t, "Fagaceae", rec.Family)
	assert.Equal(t, []string{"oak.jpg"}, rec.Images)
	assert.Equal(t, plant.SourceTrefle, rec.Source)
	assert.Zero(t, rec.ID)

	n, err := testutil.GatherAndCount(m.Registry(), "herbdb_source_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTrefleRows(t *testing.T) {
	var pages atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/species", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		page := r.URL.Query().Get("page")
		pages.Add(1)
		switch page {
		case "1":
			fmt.Fprint(w, `{"data":[{"scientific_name":"Rosa canina"},{"scientific_name":"Rosa gallica"}],
				"links":{"next":"/api/v1/species?page=2"}}`)
		case "2":
			fmt.Fprint(w, `{"data":[{"scientific_name":"Quercus robur"}],"links":{}}`)
		default:
			t.Errorf("unexpected page %s", page)
		}
	}))
	defer srv.Close()

	c := iosources.NewTrefle(srv.URL, "token")
	rows, err := c.Rows(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Quercus robur", rows[2]["scientific_name"])
	assert.Equal(t, "trefle", rows[2]["source"])
	assert.Equal(t, int32(2), pages.Load())

	pages.Store(0)
	rows, err = c.Rows(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int32(1), pages.Load())

	_, err = iosources.NewTrefle(srv.URL, "").Rows(context.Background(), 0)
	assert.Error(t, err)
}

func TestTrefleRowsFailure(t *testing.T) {
	var down atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !down.Load() && r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `{"data":[{"scientific_name":"Rosa canina"}],"links":{"next":"x"}}`)
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := iosources.NewTrefle(srv.URL, "token")
	rows, err := c.Rows(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	down.Store(true)
	_, err = c.Rows(context.Background(), 0)
	assert.Error(t, err)
}

func TestWikipedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rest_v1/page/summary/Rosa_canina", r.URL.Path)
		assert.Equal(t, iosources.UserAgent, r.Header.Get("User-Agent"))
		fmt.Fprint(w, `{"title":"Rosa canina","extract":"Rosa canina is a climbing wild rose.",
			"thumbnail":{"source":"thumb.jpg","width":320}}`)
	}))
	defer srv.Close()

	c := iosources.NewWikipedia(srv.URL + "/api/rest_v1")
	rec := normalize.Normalize(c.Search(context.Background(), " Rosa  canina "))
	assert.Equal(t, "Rosa canina is a climbing wild rose.", rec.Description)
	assert.Equal(t, "thumb.jpg", rec.ImageURL)
	assert.Equal(t, plant.SourceWikipedia, rec.Source)

	assert.Nil(t, c.Search(context.Background(), "  "))
}

func TestWikipediaSlashTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/page/summary/Rosa_alba%2FHybrid", r.URL.EscapedPath())
		assert.Equal(t, "/page/summary/Rosa_alba/Hybrid", r.URL.Path)
		fmt.Fprint(w, `{"extract":"A rambler."}`)
	}))
	defer srv.Close()

	c := iosources.NewWikipedia(srv.URL)
	rec := normalize.Normalize(c.Search(context.Background(), "Rosa alba/Hybrid"))
	assert.Equal(t, "A rambler.", rec.Description)
}

func TestCSV(t *testing.T) {
	path := iotesting.WriteFile(t, t.TempDir(), "plants.csv",
		"Genus,Species,CommonName,Habitat\n"+
			"Rosa,canina,Dog rose,hedges\n"+
			"Quercus,robur,English oak,forest\n")

	m := iometrics.New()
	c := iosources.NewCSV(path, 0, iosources.OptMetrics(m))
	assert.Equal(t, plant.SourceCSV, c.Name())

	tests := []struct {
		msg, query, habitat string
	}{
		{"scientific", "ROSA CANINA", "hedges"},
		{"common", "english oak", "forest"},
		{"none", "Betula pendula", ""},
	}
	for _, v := range tests {
		raw := c.Search(context.Background(), v.query)
		if v.habitat == "" {
			assert.Nil(t, raw, v.msg)
			continue
		}
		rec := normalize.Normalize(raw)
		assert.Equal(t, v.habitat, rec.Habitat, v.msg)
		assert.Equal(t, plant.SourceCSV, rec.Source, v.msg)
	}

	// payloads are copies
	raw := c.Search(context.Background(), "Rosa canina")
	raw["Habitat"] = "changed"
	rec := normalize.Normalize(c.Search(context.Background(), "Rosa canina"))
	assert.Equal(t, "hedges", rec.Habitat)

	missing := iosources.NewCSV(path+".none", 0)
	assert.Nil(t, missing.Search(context.Background(), "Rosa canina"))
}

func TestClients(t *testing.T) {
	cfg := config.New()
	clients := iosources.Clients(cfg)
	require.Len(t, clients, 3)

	cfg.Update([]config.Option{config.OptSourcesCSVPath("/tmp/plants.csv")})
	clients = iosources.Clients(cfg)
	var names []plant.Source
	for _, c := range clients {
		names = append(names, c.Name())
	}
	assert.Equal(t, []plant.Source{
		plant.SourcePerenual,
		plant.SourceTrefle,
		plant.SourceWikipedia,
		plant.SourceCSV,
	}, names)
}
