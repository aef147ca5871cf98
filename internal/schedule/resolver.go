/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"sort"

	"github.com/praisefmmedia/praisefm_companion/internal/stationclock"
)

// ResolvedShow is a timetable entry enriched with live-session context for a
// specific clock reading. Values are built fresh per resolution and never
// mutated.
type ResolvedShow struct {
	Entry
	ID              string  `json:"id"`
	IsLive          bool    `json:"is_live"`
	ProgressPercent float64 `json:"progress_percent"`
}

// NowAndNext is the hero payload: the live show plus the next two programs.
type NowAndNext struct {
	Current ResolvedShow    `json:"current"`
	Next    [2]ResolvedShow `json:"next"`
}

// Resolver answers now-playing and day-schedule queries against one
// timetable. It holds no mutable state.
type Resolver struct {
	tt     *Timetable
	offAir Entry
}

// NewResolver builds a resolver. stationName and stationImage identify the
// synthetic off-air placeholder returned when no slot covers the present
// instant, so the presentation layer always has something to render.
func NewResolver(tt *Timetable, stationName, stationImage string) *Resolver {
	return &Resolver{
		tt: tt,
		offAir: Entry{
			Start:       "00:00",
			End:         "23:59",
			Name:        stationName,
			Description: "Praise & Worship",
			Image:       stationImage,
		},
	}
}

// OffAir exposes the placeholder entry.
func (r *Resolver) OffAir() Entry {
	return r.offAir
}

type candidate struct {
	entry Entry
	start int
}

// ResolveCurrentAndNext determines the live show and the next two upcoming
// programs at the given reading, looking into the following day when today's
// grid is exhausted.
func (r *Resolver) ResolveCurrentAndNext(reading stationclock.Reading) NowAndNext {
	today := reading.Weekday()
	now := reading.MinutesSinceMidnight()

	var (
		current       *Entry
		currentEffEnd int
		currentStart  int
		currentEnd    int
		future        []candidate
	)

	for _, e := range r.tt.Entries() {
		if !e.AppliesTo(today) {
			continue
		}
		// Times were validated at load; ignore the impossible error.
		start, _ := ToMinutes(e.Start)
		end, _ := ToMinutes(e.End)
		effEnd := EffectiveEnd(start, end)

		if now >= float64(start) && now < float64(effEnd) {
			// Overlaps should not occur in a well-formed grid; prefer the
			// entry that runs longest so a spanning program wins.
			if current == nil || effEnd > currentEffEnd {
				entry := e
				current = &entry
				currentEffEnd = effEnd
				currentStart = start
				currentEnd = end
			}
		}
		if now < float64(start) {
			future = append(future, candidate{entry: e, start: start})
		}
	}

	sort.SliceStable(future, func(i, j int) bool {
		return future[i].start < future[j].start
	})

	if len(future) < 2 {
		tomorrow := (today + 1) % 7
		var next []candidate
		for _, e := range r.tt.Entries() {
			if !e.AppliesTo(tomorrow) {
				continue
			}
			start, _ := ToMinutes(e.Start)
			next = append(next, candidate{entry: e, start: start})
		}
		sort.SliceStable(next, func(i, j int) bool {
			return next[i].start < next[j].start
		})
		future = append(future, next...)
	}

	out := NowAndNext{}
	if current != nil {
		out.Current = resolveLive(*current, Progress(now, currentStart, currentEnd))
	} else {
		out.Current = resolveLive(r.offAir, 0)
	}
	for i := 0; i < 2 && i < len(future); i++ {
		out.Next[i] = resolveUpcoming(future[i].entry)
	}
	return out
}

func resolveLive(e Entry, progress float64) ResolvedShow {
	return ResolvedShow{
		Entry:           e,
		ID:              e.ID(),
		IsLive:          true,
		ProgressPercent: progress,
	}
}

func resolveUpcoming(e Entry) ResolvedShow {
	return ResolvedShow{
		Entry:  e,
		ID:     e.ID(),
		IsLive: false,
	}
}
