package ioweb

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/herbolive/herbdb/pkg/catalog"
	"github.com/herbolive/herbdb/pkg/store"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	OK   bool   `json:"ok"`
	Mode string `json:"mode"`
}

// ConfigResponse is the body of /api/config.
type ConfigResponse struct {
	UseDBFirst bool `json:"useDbFirst"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true, Mode: s.catalog.Mode()})
}

func (s *Server) config(c echo.Context) error {
	res := ConfigResponse{UseDBFirst: s.catalog.Mode() == catalog.ModeDBFirst}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) listPlants(c echo.Context) error {
	q, err := s.query(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	page, err := s.catalog.ListPlants(c.Request().Context(), q)
	if err != nil {
		slog.Error("Cannot list plants", "query", q.Text, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) getPlant(c echo.Context) error {
	key := strings.TrimSpace(c.Param("id"))

	rec, err := s.catalog.GetPlant(c.Request().Context(), key)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case err != nil:
		slog.Error("Cannot get plant", "key", key, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, rec)
}

// query reads the listing parameters. A limit asks for the first page of
// that size. Page sizes are capped by the listing maximum.
func (s *Server) query(c echo.Context) (store.Query, error) {
	res := store.Query{
		Text:    strings.TrimSpace(c.QueryParam("q")),
		Page:    1,
		PerPage: s.pageSize,
	}

	var err error
	if res.Page, err = intParam(c, "page", res.Page); err != nil {
		return res, err
	}
	if res.PerPage, err = intParam(c, "perPage", res.PerPage); err != nil {
		return res, err
	}
	limit, err := intParam(c, "limit", 0)
	if err != nil {
		return res, err
	}
	if limit > 0 && c.QueryParam("perPage") == "" {
		res.Page = 1
		res.PerPage = limit
	}

	if res.Page < 1 {
		res.Page = 1
	}
	if res.PerPage <= 0 {
		res.PerPage = s.pageSize
	}
	if s.listingMax > 0 && res.PerPage > s.listingMax {
		res.PerPage = s.listingMax
	}
	return res, nil
}

func intParam(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	res, err := strconv.Atoi(v)
	if err != nil {
		return def, errors.New("invalid " + name + " parameter")
	}
	return res, nil
}
