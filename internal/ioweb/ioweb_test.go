package ioweb_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/internal/iotesting"
	"github.com/herbolive/herbdb/internal/ioweb"
	"github.com/herbolive/herbdb/pkg/catalog"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...catalog.Option) *ioweb.Server {
	t.Helper()

	st := iotesting.NewSQLiteStore(t)
	_, err := st.UpsertMany(context.Background(), []plant.Record{
		{Genus: "Rosa", Species: "canina", CommonName: "Dog rose", Family: "Rosaceae"},
		{Genus: "Quercus", Species: "robur", CommonName: "English oak", Family: "Fagaceae"},
		{Genus: "Malus", Species: "domestica", CommonName: "Apple", Family: "Rosaceae"},
	})
	require.NoError(t, err)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptSourcesListingMax(2)})
	cat := catalog.New(st, opts...)
	t.Cleanup(cat.Wait)
	return ioweb.New(cfg, cat, ioweb.OptMetrics(iometrics.New()))
}

func get(t *testing.T, s *ioweb.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"mode":"db-first"}`, rec.Body.String())

	rec = get(t, s, "/api/config")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"useDbFirst":true}`, rec.Body.String())

	s = newServer(t, catalog.OptDBFirst(false))
	rec = get(t, s, "/api/config")
	assert.JSONEq(t, `{"useDbFirst":false}`, rec.Body.String())
}

func TestListPlants(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		msg     string
		target  string
		total   int
		page    int
		perPage int
		names   []string
	}{
		{"capped page", "/api/plants", 3, 1, 2, []string{"Apple", "Dog rose"}},
		{"second page", "/api/plants?page=2&perPage=2", 3, 2, 2, []string{"English oak"}},
		{"search", "/api/plants?q=rosaceae", 2, 1, 2, []string{"Apple", "Dog rose"}},
		{"limit", "/api/plants?limit=1&page=3", 3, 1, 1, []string{"Apple"}},
	}

	for _, v := range tests {
		rec := get(t, s, v.target)
		require.Equal(t, http.StatusOK, rec.Code, v.msg)

		var page catalog.Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page), v.msg)
		assert.Equal(t, v.total, page.Total, v.msg)
		assert.Equal(t, v.page, page.Page, v.msg)
		assert.Equal(t, v.perPage, page.PerPage, v.msg)
		var names []string
		for _, item := range page.Items {
			names = append(names, item.CommonName)
		}
		assert.Equal(t, v.names, names, v.msg)
	}

	rec := get(t, s, "/api/plants?page=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlant(t *testing.T) {
	s := newServer(t)

	rec := get(t, s, "/api/plants/Quercus_robur")
	require.Equal(t, http.StatusOK, rec.Code)
	var oak plant.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &oak))
	assert.Equal(t, "English oak", oak.CommonName)
	assert.Equal(t, plant.SourceDB, oak.Source)

	rec = get(t, s, fmt.Sprintf("/api/plants/%d", oak.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"common_name":"English oak"`)
	assert.Contains(t, rec.Body.String(), `"edibility":null`)

	rec = get(t, s, "/api/plants/9999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	s := newServer(t)
	rec := get(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))
}

func TestRun(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptServerHost("127.0.0.1"),
		config.OptServerPort(port),
	})
	s := ioweb.New(cfg, catalog.New(iotesting.NewSQLiteStore(t)))
	assert.Equal(t, fmt.Sprintf("127.0.0.1:%d", port), s.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	url := fmt.Sprintf("http://%s/health", s.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
