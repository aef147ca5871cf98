/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package api exposes the companion app's HTTP/JSON surface.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/praisefmmedia/praisefm_companion/internal/auth"
	"github.com/praisefmmedia/praisefm_companion/internal/config"
	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/favorites"
	"github.com/praisefmmedia/praisefm_companion/internal/nowplaying"
	"github.com/praisefmmedia/praisefm_companion/internal/schedule"
	"github.com/praisefmmedia/praisefm_companion/internal/stationclock"
	"github.com/praisefmmedia/praisefm_companion/internal/storage"
)

// API exposes HTTP handlers.
type API struct {
	cfg        *config.Config
	db         *gorm.DB
	jwtSecret  []byte
	sessions   auth.SessionProvider
	resolver   *schedule.Resolver
	clock      *stationclock.StationClock
	nowPlaying *nowplaying.Service
	favorites  favorites.Repository
	avatars    storage.ObjectStore
	bus        *events.Bus
	logger     zerolog.Logger
}

// New creates the API handler set.
func New(cfg *config.Config, db *gorm.DB, sessions auth.SessionProvider, resolver *schedule.Resolver, clock *stationclock.StationClock, np *nowplaying.Service, favs favorites.Repository, avatars storage.ObjectStore, bus *events.Bus, logger zerolog.Logger) *API {
	return &API{
		cfg:        cfg,
		db:         db,
		jwtSecret:  []byte(cfg.JWTSigningKey),
		sessions:   sessions,
		resolver:   resolver,
		clock:      clock,
		nowPlaying: np,
		favorites:  favs,
		avatars:    avatars,
		bus:        bus,
		logger:     logger.With().Str("component", "api").Logger(),
	}
}

// Routes mounts API routes on the provided router.
func (a *API) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		// Public endpoints (no auth required)
		r.Get("/station", a.handleStation)
		r.Get("/schedule/now", a.handleScheduleNow)
		r.Get("/schedule/today", a.handleScheduleToday)
		r.Get("/schedule/day/{weekday}", a.handleScheduleDay)
		r.Get("/tracks/now", a.handleTrackNow)
		r.Get("/tracks/recent", a.handleTracksRecent)
		r.Get("/devotionals", a.handleDevotionalsList)
		r.Get("/devotionals/today", a.handleDevotionalToday)
		r.Get("/events/ws", a.handleEvents)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", a.handleSignUp)
			r.Post("/signin", a.handleSignIn)
			r.Post("/signout", a.handleSignOut)
			r.Get("/oauth/{provider}", a.handleOAuthRedirect)
			r.Get("/session", a.handleSession)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(auth.Middleware(a.jwtSecret))

			pr.Route("/users/me", func(r chi.Router) {
				r.Patch("/", a.handleUserUpdate)
				r.Post("/avatar", a.handleAvatarUpload)

				r.Route("/favorites/{kind}", func(r chi.Router) {
					r.Get("/", a.handleFavoritesList)
					r.Post("/", a.handleFavoritesAdd)
					r.Delete("/{itemID}", a.handleFavoritesRemove)
				})
			})
		})
	})
}

type stationResponse struct {
	Name      string `json:"name"`
	Timezone  string `json:"timezone"`
	StreamURL string `json:"stream_url"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStation describes the station the client tunes into.
func (a *API) handleStation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stationResponse{
		Name:      a.cfg.StationName,
		Timezone:  a.cfg.StationTimezone,
		StreamURL: a.cfg.StreamURL,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
