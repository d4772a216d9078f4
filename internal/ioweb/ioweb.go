// Package ioweb serves the plant catalog over HTTP.
package ioweb

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/herbolive/herbdb/internal/iometrics"
	"github.com/herbolive/herbdb/pkg/catalog"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// RequestTimeout limits the handling of one request.
	RequestTimeout = 60 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Catalog is the plant lookup the server exposes.
type Catalog interface {
	GetPlant(ctx context.Context, key string) (plant.Record, error)
	ListPlants(ctx context.Context, q store.Query) (catalog.Page, error)
	Mode() string
}

// Server is the HTTP API of herbdb.
type Server struct {
	echo    *echo.Echo
	catalog Catalog
	metrics *iometrics.Metrics

	addr       string
	pageSize   int
	listingMax int
	timeout    time.Duration
}

// Option configures a Server.
type Option func(*Server)

// OptMetrics exposes the instruments on /metrics.
func OptMetrics(m *iometrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// OptTimeout sets the time limit of one request.
func OptTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a server for the catalog.
func New(cfg *config.Config, cat Catalog, opts ...Option) *Server {
	res := &Server{
		catalog:    cat,
		addr:       net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		pageSize:   cfg.Server.PageSize,
		listingMax: cfg.Sources.ListingMax,
		timeout:    RequestTimeout,
	}
	for _, opt := range opts {
		opt(res)
	}
	res.echo = res.routes()
	return res
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves requests until ctx is done, then waits for requests in flight
// to finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		err := s.echo.Start(s.addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	slog.Info("HTTP server started", "addr", s.addr, "mode", s.catalog.Mode())

	select {
	case err := <-errCh:
		if err != nil {
			return ServerStartError(s.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.echo.Shutdown(shutCtx)
	slog.Info("HTTP server stopped", "addr", s.addr)
	return err
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger())
	e.Use(middleware.ContextTimeout(s.timeout))

	e.GET("/health", s.health)
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := e.Group("/api")
	api.GET("/config", s.config)
	api.GET("/plants", s.listPlants)
	api.GET("/plants/:id", s.getPlant)
	return e
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.Log(context.Background(), level, "HTTP request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"error", v.Error,
			)
			return nil
		},
	})
}
