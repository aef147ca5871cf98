/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"net/http"

	"github.com/praisefmmedia/praisefm_companion/internal/devotional"
	"github.com/praisefmmedia/praisefm_companion/internal/nowplaying"
)

// handleTrackNow returns the song currently on the stream, if known.
func (a *API) handleTrackNow(w http.ResponseWriter, r *http.Request) {
	track, ok := a.nowPlaying.Current()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"playing": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"playing": true, "track": track})
}

// handleTracksRecent returns the bounded play history, newest first.
func (a *API) handleTracksRecent(w http.ResponseWriter, r *http.Request) {
	recent := a.nowPlaying.Recent()
	if recent == nil {
		recent = []nowplaying.Track{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": recent})
}

func (a *API) handleDevotionalsList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"devotionals": devotional.All()})
}

func (a *API) handleDevotionalToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, devotional.Today(a.clock.Read()))
}
