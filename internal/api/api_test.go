/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/praisefmmedia/praisefm_companion/internal/auth"
	"github.com/praisefmmedia/praisefm_companion/internal/config"
	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/favorites"
	"github.com/praisefmmedia/praisefm_companion/internal/models"
	"github.com/praisefmmedia/praisefm_companion/internal/nowplaying"
	"github.com/praisefmmedia/praisefm_companion/internal/schedule"
	"github.com/praisefmmedia/praisefm_companion/internal/stationclock"
)

// 2026-01-07 is a Wednesday; 09:30 station time falls inside the
// weekday-morning block of the built-in grid.
var testInstant = time.Date(2026, 1, 7, 9, 30, 0, 0, time.UTC)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	router, _ := testRouterWithBus(t)
	return router
}

func testRouterWithBus(t *testing.T) (http.Handler, *events.Bus) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		StationName:     "Praise FM",
		StationTimezone: "UTC",
		StreamURL:       "https://stream.example/praisefm",
		JWTSigningKey:   "test-signing-key",
	}

	bus := events.NewBus()
	sessions := auth.NewLocalProvider(db, bus, []byte(cfg.JWTSigningKey), time.Hour, "http://localhost:8080")

	tt, err := schedule.New(schedule.DefaultGrid())
	if err != nil {
		t.Fatalf("build timetable: %v", err)
	}
	resolver := schedule.NewResolver(tt, cfg.StationName, "")

	clock, err := stationclock.NewWithClock("UTC", stationclock.FixedClock{Instant: testInstant})
	if err != nil {
		t.Fatalf("station clock: %v", err)
	}

	np := nowplaying.NewService("http://unused", cfg.StationName, 15, nil, bus, nil, zerolog.Nop())
	favs := favorites.NewMemoryRepository(bus)

	a := New(cfg, db, sessions, resolver, clock, np, favs, nil, bus, zerolog.Nop())
	r := chi.NewRouter()
	a.Routes(r)
	return r, bus
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func signUp(t *testing.T, router http.Handler) string {
	t.Helper()
	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":    "listener@praise.fm",
		"password": "hallelujah",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("sign up: got %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("sign up returned no access token")
	}
	return token
}

func TestHealthAndStation(t *testing.T) {
	router := testRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", rec.Code, body)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/api/v1/station", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("station: got %d", rec.Code)
	}
	if body["name"] != "Praise FM" || body["stream_url"] != "https://stream.example/praisefm" {
		t.Fatalf("station body: %v", body)
	}
}

func TestScheduleNow(t *testing.T) {
	router := testRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/schedule/now", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}

	current, ok := body["current"].(map[string]any)
	if !ok {
		t.Fatalf("no current show in %v", body)
	}
	if live, _ := current["is_live"].(bool); !live {
		t.Fatalf("current show not live: %v", current)
	}
	next, ok := body["next"].([]any)
	if !ok || len(next) != 2 {
		t.Fatalf("want two upcoming shows, got %v", body["next"])
	}
}

func TestScheduleDayValidation(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/api/v1/schedule/day/7", "/api/v1/schedule/day/-1", "/api/v1/schedule/day/abc"} {
		rec, _ := doJSON(t, router, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", path, rec.Code)
		}
	}

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/schedule/day/3", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid day: got %d", rec.Code)
	}
	shows, ok := body["shows"].([]any)
	if !ok || len(shows) == 0 {
		t.Fatalf("no shows for Wednesday: %v", body)
	}
}

func TestScheduleDayGrouped(t *testing.T) {
	router := testRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/schedule/day/3?grouped=1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	for _, part := range []string{"early", "morning", "afternoon", "evening"} {
		if _, ok := body[part]; !ok {
			t.Errorf("grouped schedule missing %q: %v", part, body)
		}
	}
}

func TestTracksEndpoints(t *testing.T) {
	router := testRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/tracks/now", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tracks/now: got %d", rec.Code)
	}
	if playing, _ := body["playing"].(bool); playing {
		t.Fatalf("no feed consumed but playing=true: %v", body)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/api/v1/tracks/recent", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tracks/recent: got %d", rec.Code)
	}
	if _, ok := body["tracks"].([]any); !ok {
		t.Fatalf("tracks/recent body: %v", body)
	}
}

func TestDevotionalToday(t *testing.T) {
	router := testRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/devotionals/today", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	// Wednesday rotation slot
	if body["id"] != "daily-verse-3" {
		t.Fatalf("got %v, want daily-verse-3", body["id"])
	}

	rec, body = doJSON(t, router, http.MethodGet, "/api/v1/devotionals", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	if list, ok := body["devotionals"].([]any); !ok || len(list) != 7 {
		t.Fatalf("list body: %v", body)
	}
}

func TestAuthFlow(t *testing.T) {
	router := testRouter(t)
	token := signUp(t, router)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/auth/session", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("session: got %d", rec.Code)
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["email"] != "listener@praise.fm" {
		t.Fatalf("session user: %v", body)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/auth/session", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("session without token: got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/signin", "", map[string]string{
		"email":    "listener@praise.fm",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":    "listener@praise.fm",
		"password": "other",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: got %d", rec.Code)
	}
}

func TestUserUpdate(t *testing.T) {
	router := testRouter(t)
	token := signUp(t, router)

	rec, body := doJSON(t, router, http.MethodPatch, "/api/v1/users/me", token, map[string]string{
		"name": "New Listener",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	if body["name"] != "New Listener" {
		t.Fatalf("name not updated: %v", body)
	}

	rec, _ = doJSON(t, router, http.MethodPatch, "/api/v1/users/me", "", map[string]string{"name": "x"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated patch: got %d", rec.Code)
	}
}

func TestFavoritesFlow(t *testing.T) {
	router := testRouter(t)
	token := signUp(t, router)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/users/me/favorites/favorite_songs", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/users/me/favorites/playlists", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown kind: got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/users/me/favorites/favorite_songs", token, map[string]any{
		"item_id": "hillsong|oceans",
		"payload": map[string]string{"title": "Oceans"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: got %d: %s", rec.Code, rec.Body.String())
	}

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/users/me/favorites/favorite_songs", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	items, ok := body["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("list body: %v", body)
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/v1/users/me/favorites/favorite_songs/hillsong%7Coceans", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: got %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/v1/users/me/favorites/favorite_songs/hillsong%7Coceans", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("remove missing: got %d", rec.Code)
	}
}

func TestOAuthRedirect(t *testing.T) {
	router := testRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/auth/oauth/google?redirect_to=/profile", "", nil)
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc == "" {
		t.Fatal("no redirect location")
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/auth/oauth/myspace", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unsupported provider: got %d", rec.Code)
	}
}
