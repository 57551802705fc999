/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/friendsincode/munin_tv/internal/catalog"
	"github.com/friendsincode/munin_tv/internal/config"
	"github.com/friendsincode/munin_tv/internal/playlist"
	"github.com/friendsincode/munin_tv/internal/probe"
	"github.com/friendsincode/munin_tv/internal/schedule"
	"github.com/friendsincode/munin_tv/internal/telemetry"
	"github.com/friendsincode/munin_tv/internal/web"
)

// Server bundles the scheduling core and the HTTP delivery layer.
type Server struct {
	cfg        *config.Config
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server

	catalog  *catalog.Catalog
	table    *schedule.Table
	engine   *schedule.Engine
	resolver *probe.Resolver
}

// New loads the channel lineup, builds every playlist exactly once, and
// wires the HTTP routes. After New returns, the schedule table is frozen
// for the process lifetime.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	cat, err := catalog.Load(cfg.ChannelsPath)
	if err != nil {
		return nil, fmt.Errorf("load channel lineup: %w", err)
	}

	prober := probe.NewFFProbe(cfg.ProbeBin, cfg.ProbeTimeout)
	resolver := probe.NewResolver(prober, cfg.DurationCacheSize, logger)

	builder := playlist.NewBuilder(cfg.FillerPath(), logger)
	table := schedule.Initialize(cat, builder, logger)
	engine := schedule.NewEngine(table, resolver, cfg.Epoch, logger)

	webHandler, err := web.NewHandler(cat, engine, resolver, cfg.MediaRoot, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize web handler: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(securityHeadersMiddleware)
	router.Use(telemetry.MetricsMiddleware)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", telemetry.Handler())
	webHandler.Routes(router)

	srv := &Server{
		cfg:      cfg,
		logger:   logger,
		router:   router,
		catalog:  cat,
		table:    table,
		engine:   engine,
		resolver: resolver,
	}

	srv.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort),
		Handler: otelhttp.NewHandler(router, "munin-tv-http"),
		// Header deadline guards against slowloris; no full-body write
		// deadline so long media responses are not cut off mid-stream.
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	return srv, nil
}

// HTTPServer returns the configured HTTP server.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// Router returns the chi router, exposed for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Frame-Options", "DENY")

		// Only advertise HSTS for requests served over HTTPS.
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
