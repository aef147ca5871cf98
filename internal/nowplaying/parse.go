/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package nowplaying

import (
	"encoding/json"
	"strings"
)

// denylist holds lowercase fragments of stream titles that are station
// branding, spot blocks or ramps rather than songs. Matching is done by
// case-insensitive substring.
var denylist = []string{
	"praise fm u.s",
	"spots",
	"comerciais",
	"ramps",
	"praise fm usa",
	"intro",
	"ramp 3",
}

type metadataEvent struct {
	StreamTitle string `json:"streamTitle"`
}

// parseStreamTitle splits a raw "Artist - Title" stream title. A title
// without the separator is treated as title-only with the station left as
// artist fallback by the caller.
func parseStreamTitle(raw string) (artist, title string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	if artist, title, ok := strings.Cut(raw, " - "); ok {
		return strings.TrimSpace(artist), strings.TrimSpace(title)
	}
	return "", raw
}

// filtered reports whether the stream title is station filler that should
// never surface as a track.
func filtered(raw string) bool {
	lower := strings.ToLower(raw)
	for _, frag := range denylist {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// decodeEvent extracts the stream title from one SSE data payload.
func decodeEvent(data []byte) (string, bool) {
	var ev metadataEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return "", false
	}
	title := strings.TrimSpace(ev.StreamTitle)
	return title, title != ""
}
