/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package nowplaying follows the stream metadata feed and keeps the current
// track plus a bounded recent-track history.
package nowplaying

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/praisefmmedia/praisefm_companion/internal/albumart"
	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/models"
	"github.com/praisefmmedia/praisefm_companion/internal/telemetry"
)

const (
	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// Track is one played song.
type Track struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Artist   string    `json:"artist"`
	Artwork  string    `json:"artwork"`
	PlayedAt time.Time `json:"played_at"`
}

// Service consumes the SSE metadata feed and exposes the running state.
type Service struct {
	metadataURL string
	stationName string
	historyMax  int

	art    *albumart.Resolver
	bus    *events.Bus
	db     *gorm.DB // optional history mirror; nil skips persistence
	logger zerolog.Logger
	client *http.Client
	now    func() time.Time

	mu      sync.RWMutex
	current *Track
	history []Track
}

// NewService builds the metadata consumer. db may be nil.
func NewService(metadataURL, stationName string, historyMax int, art *albumart.Resolver, bus *events.Bus, db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{
		metadataURL: metadataURL,
		stationName: stationName,
		historyMax:  historyMax,
		art:         art,
		bus:         bus,
		db:          db,
		logger:      logger.With().Str("component", "nowplaying").Logger(),
		client:      &http.Client{},
		now:         time.Now,
	}
}

// Current returns the track on air, if any has been seen yet.
func (s *Service) Current() (Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Track{}, false
	}
	return *s.current, true
}

// Recent returns the history, newest first.
func (s *Service) Recent() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Track, len(s.history))
	copy(out, s.history)
	return out
}

// Run follows the feed until ctx is done, reconnecting with backoff.
func (s *Service) Run(ctx context.Context) {
	backoff := reconnectMin
	for {
		err := s.consume(ctx)
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Dur("retry_in", backoff).Msg("metadata feed disconnected")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > reconnectMax {
			backoff = reconnectMax
		}
	}
}

// consume opens the SSE stream and processes events until it breaks.
func (s *Service) consume(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.metadataURL, nil)
	if err != nil {
		return fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("connect feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	s.logger.Info().Str("url", s.metadataURL).Msg("metadata feed connected")

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}
		data := bytes.TrimSpace(bytes.TrimPrefix(line, []byte("data:")))
		if len(data) == 0 {
			continue
		}
		if raw, ok := decodeEvent(data); ok {
			s.handleStreamTitle(ctx, raw)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read feed: %w", err)
	}
	return errors.New("feed closed")
}

// handleStreamTitle turns one stream title into a track transition.
func (s *Service) handleStreamTitle(ctx context.Context, raw string) {
	if filtered(raw) {
		s.logger.Debug().Str("title", raw).Msg("filtered station filler")
		return
	}

	artist, title := parseStreamTitle(raw)
	if title == "" {
		return
	}
	if artist == "" {
		artist = s.stationName
	}

	// The feed repeats the current title on reconnect and on keepalives.
	if s.isCurrent(artist, title) {
		return
	}

	track := Track{
		ID:       trackID(artist, title),
		Title:    title,
		Artist:   artist,
		PlayedAt: s.now(),
	}
	if s.art != nil {
		track.Artwork = s.art.Resolve(ctx, artist, title)
	}

	s.push(track)
	s.persist(ctx, track)
	telemetry.TrackChangesTotal.Inc()
	s.bus.Publish(events.EventNowPlayingTrack, events.Payload{
		"id":      track.ID,
		"title":   track.Title,
		"artist":  track.Artist,
		"artwork": track.Artwork,
	})
	s.logger.Info().Str("artist", artist).Str("title", title).Msg("track change")
}

func (s *Service) isCurrent(artist, title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Artist == artist && s.current.Title == title
}

func (s *Service) push(track Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &track
	s.history = append([]Track{track}, s.history...)
	if len(s.history) > s.historyMax {
		s.history = s.history[:s.historyMax]
	}
}

func (s *Service) persist(ctx context.Context, track Track) {
	if s.db == nil {
		return
	}
	row := models.PlayedTrack{
		ID:       uuid.NewString(),
		TrackID:  track.ID,
		Title:    track.Title,
		Artist:   track.Artist,
		Artwork:  track.Artwork,
		PlayedAt: track.PlayedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.logger.Warn().Err(err).Msg("persist played track failed")
	}
}

// trackID is a stable identity for favoriting, derived from the pair.
func trackID(artist, title string) string {
	norm := func(v string) string {
		return strings.ToLower(strings.Join(strings.Fields(v), " "))
	}
	return norm(artist) + "|" + norm(title)
}
