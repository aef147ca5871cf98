/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package server wires configuration, storage and services into the HTTP
// process.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/praisefmmedia/praisefm_companion/internal/albumart"
	"github.com/praisefmmedia/praisefm_companion/internal/api"
	"github.com/praisefmmedia/praisefm_companion/internal/auth"
	"github.com/praisefmmedia/praisefm_companion/internal/config"
	"github.com/praisefmmedia/praisefm_companion/internal/db"
	"github.com/praisefmmedia/praisefm_companion/internal/eventbus"
	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/favorites"
	"github.com/praisefmmedia/praisefm_companion/internal/nowplaying"
	"github.com/praisefmmedia/praisefm_companion/internal/schedule"
	"github.com/praisefmmedia/praisefm_companion/internal/stationclock"
	"github.com/praisefmmedia/praisefm_companion/internal/storage"
	"github.com/praisefmmedia/praisefm_companion/internal/telemetry"
)

// Server bundles HTTP and supporting services.
type Server struct {
	cfg        *config.Config
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	closers    []func() error

	db         *gorm.DB
	redis      *redis.Client
	bus        *events.Bus
	busMirror  *eventbus.Mirror
	clock      *stationclock.StationClock
	resolver   *schedule.Resolver
	sessions   auth.SessionProvider
	favorites  favorites.Repository
	avatars    storage.ObjectStore
	localStore *storage.LocalStore
	nowPlaying *nowplaying.Service
	api        *api.API

	bgCancel context.CancelFunc
	bgWG     sync.WaitGroup
}

// New constructs the server and wires dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(securityHeadersMiddleware)
	router.Use(telemetry.TracingMiddleware)
	router.Use(telemetry.MetricsMiddleware)
	// Skip the timeout for WebSocket connections, which live for the whole
	// listening session.
	router.Use(func(next http.Handler) http.Handler {
		timeout := middleware.Timeout(60 * time.Second)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Upgrade") == "websocket" {
				next.ServeHTTP(w, r)
				return
			}
			timeout(next).ServeHTTP(w, r)
		})
	})

	srv := &Server{
		cfg:    cfg,
		logger: logger,
		router: router,
		bus:    events.NewBus(),
	}

	if err := srv.initDependencies(); err != nil {
		return nil, err
	}

	srv.configureRoutes()
	srv.startBackgroundWorkers()

	addr := fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort)
	srv.httpServer = &http.Server{
		Addr:              addr,
		Handler:           srv.router,
		ReadHeaderTimeout: 15 * time.Second,
		// WriteTimeout stays 0 for the websocket event stream; the
		// middleware timeout covers plain routes.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	return srv, nil
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self' 'unsafe-inline' data: blob: https:; frame-ancestors 'none'; base-uri 'self'")

		// Only advertise HSTS for requests served over HTTPS.
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) initDependencies() error {
	database, err := db.Connect(s.cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(database); err != nil {
		return err
	}
	s.db = database
	s.DeferClose(func() error { return db.Close(database) })

	if s.cfg.RedisEnabled {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPassword,
			DB:       s.cfg.RedisDB,
		})
		s.DeferClose(func() error { return s.redis.Close() })

		mirror, err := eventbus.NewMirror(eventbus.Config{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPassword,
			DB:       s.cfg.RedisDB,
		}, s.bus, []events.EventType{
			events.EventNowPlayingTrack,
			events.EventScheduleUpdate,
		}, s.logger)
		if err != nil {
			s.logger.Warn().Err(err).Msg("event mirror unavailable, running single-node")
		} else {
			s.busMirror = mirror
			s.DeferClose(func() error { return s.busMirror.Close() })
		}
	}

	clock, err := stationclock.New(s.cfg.StationTimezone)
	if err != nil {
		return err
	}
	s.clock = clock

	timetable, err := schedule.Load(s.cfg.TimetablePath)
	if err != nil {
		return fmt.Errorf("load timetable: %w", err)
	}
	s.logger.Info().Int("entries", timetable.Len()).Msg("timetable loaded")
	s.resolver = schedule.NewResolver(timetable, s.cfg.StationName, s.cfg.StationImage)

	switch s.cfg.AuthBackend {
	case config.AuthMock:
		s.sessions = auth.NewMockProvider(s.bus)
		s.favorites = favorites.NewMemoryRepository(s.bus)
		s.logger.Warn().Msg("mock auth backend active, sessions are not persistent")
	default:
		s.sessions = auth.NewLocalProvider(database, s.bus, []byte(s.cfg.JWTSigningKey), s.cfg.SessionTTL, s.cfg.BaseURL)
		s.favorites = favorites.NewGormRepository(database, s.bus)
	}

	if s.cfg.S3Bucket != "" {
		store, err := storage.NewS3Store(context.Background(), s.cfg)
		if err != nil {
			return fmt.Errorf("init s3 store: %w", err)
		}
		s.avatars = store
	} else {
		store, err := storage.NewLocalStore(s.cfg.AvatarDir, "/static/avatars")
		if err != nil {
			return fmt.Errorf("init avatar dir: %w", err)
		}
		s.avatars = store
		s.localStore = store
	}

	art := albumart.NewResolver(s.redis, "", s.logger)
	s.nowPlaying = nowplaying.NewService(
		s.cfg.MetadataURL,
		s.cfg.StationName,
		s.cfg.RecentTracksMax,
		art,
		s.bus,
		database,
		s.logger,
	)

	s.api = api.New(s.cfg, database, s.sessions, s.resolver, s.clock, s.nowPlaying, s.favorites, s.avatars, s.bus, s.logger)
	return nil
}

func (s *Server) configureRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if s.localStore != nil {
		fileServer := http.StripPrefix("/static/avatars", http.FileServer(http.Dir(s.localStore.Dir())))
		s.router.Get("/static/avatars/*", fileServer.ServeHTTP)
	}

	s.api.Routes(s.router)
}

func (s *Server) startBackgroundWorkers() {
	ctx, cancel := context.WithCancel(context.Background())
	s.bgCancel = cancel

	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()
		s.nowPlaying.Run(ctx)
	}()

	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()
		s.runScheduleRefresh(ctx)
	}()

	if s.cfg.MetricsBind != "" {
		s.startMetricsListener()
	}
}

// startMetricsListener serves Prometheus metrics on a separate bind so the
// scrape endpoint never shares the public port.
func (s *Server) startMetricsListener() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler())

	metricsServer := &http.Server{
		Addr:              s.cfg.MetricsBind,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}
	s.DeferClose(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsServer.Shutdown(ctx)
	})

	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()
		s.logger.Info().Str("addr", s.cfg.MetricsBind).Msg("metrics listener started")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("metrics listener exited")
		}
	}()
}

func (s *Server) stopBackgroundWorkers() {
	if s.bgCancel == nil {
		return
	}
	s.bgCancel()
	s.bgWG.Wait()
	s.bgCancel = nil
}

// HTTPServer exposes the configured HTTP server to the caller that runs it.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// Close releases owned resources in reverse order.
func (s *Server) Close() error {
	s.stopBackgroundWorkers()
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// DeferClose registers a cleanup hook.
func (s *Server) DeferClose(fn func() error) {
	s.closers = append(s.closers, fn)
}
