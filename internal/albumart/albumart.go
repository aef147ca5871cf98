/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package albumart resolves cover art for tracks via the iTunes Search API.
package albumart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultEndpoint = "https://itunes.apple.com/search"
	lookupTimeout   = 3 * time.Second
	cacheTTL        = 24 * time.Hour
	cachePrefix     = "praisefm:albumart:"
)

// DefaultPlaceholder is served when no artwork can be found.
const DefaultPlaceholder = "/static/img/album-placeholder.png"

// Resolver looks up artwork URLs, with an optional redis cache in front of
// the remote API. A nil redis client disables caching.
type Resolver struct {
	endpoint    string
	client      *http.Client
	cache       *redis.Client
	placeholder string
	logger      zerolog.Logger
}

// NewResolver builds an artwork resolver.
func NewResolver(cache *redis.Client, placeholder string, logger zerolog.Logger) *Resolver {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Resolver{
		endpoint:    defaultEndpoint,
		client:      &http.Client{Timeout: lookupTimeout},
		cache:       cache,
		placeholder: placeholder,
		logger:      logger.With().Str("component", "albumart").Logger(),
	}
}

type searchResponse struct {
	ResultCount int `json:"resultCount"`
	Results     []struct {
		ArtworkURL100 string `json:"artworkUrl100"`
	} `json:"results"`
}

// Resolve returns an artwork URL for the artist/title pair. Lookups that
// fail or find nothing return the placeholder, never an error: artwork is
// decoration, not data.
func (r *Resolver) Resolve(ctx context.Context, artist, title string) string {
	term := strings.TrimSpace(strings.TrimSpace(artist) + " " + strings.TrimSpace(title))
	if term == "" {
		return r.placeholder
	}

	if cached, ok := r.cacheGet(ctx, term); ok {
		return cached
	}

	art := r.lookup(ctx, term)
	r.cacheSet(ctx, term, art)
	return art
}

func (r *Resolver) lookup(ctx context.Context, term string) string {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("term", term)
	query.Set("media", "music")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return r.placeholder
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug().Err(err).Str("term", term).Msg("artwork lookup failed")
		return r.placeholder
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Debug().Int("status", resp.StatusCode).Str("term", term).Msg("artwork lookup rejected")
		return r.placeholder
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return r.placeholder
	}
	if body.ResultCount == 0 || len(body.Results) == 0 || body.Results[0].ArtworkURL100 == "" {
		return r.placeholder
	}

	// iTunes returns 100x100 thumbnails; the CDN serves larger renditions
	// at the same path.
	return strings.Replace(body.Results[0].ArtworkURL100, "100x100", "600x600", 1)
}

func (r *Resolver) cacheGet(ctx context.Context, term string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	val, err := r.cache.Get(ctx, cacheKey(term)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Resolver) cacheSet(ctx context.Context, term, art string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(term), art, cacheTTL).Err(); err != nil {
		r.logger.Debug().Err(err).Msg("artwork cache write failed")
	}
}

func cacheKey(term string) string {
	return fmt.Sprintf("%s%s", cachePrefix, strings.ToLower(term))
}
