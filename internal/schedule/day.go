/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import "sort"

// DayPart buckets a daily agenda by start hour for display grouping.
type DayPart string

const (
	PartEarly     DayPart = "early"     // [00:00, 06:00)
	PartMorning   DayPart = "morning"   // [06:00, 12:00)
	PartAfternoon DayPart = "afternoon" // [12:00, 18:00)
	PartEvening   DayPart = "evening"   // [18:00, 24:00)
)

// BuildDaySchedule returns the programs airing on the given weekday, sorted
// ascending by start time. An empty result is valid: the day simply has no
// scheduled programs.
func (r *Resolver) BuildDaySchedule(weekday int) []ResolvedShow {
	var out []ResolvedShow
	for _, e := range r.tt.Entries() {
		if !e.AppliesTo(weekday) {
			continue
		}
		out = append(out, resolveUpcoming(e))
	}
	// Zero-padded HH:MM strings order the same lexicographically as
	// numerically.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// GroupedDaySchedule is a daily agenda partitioned into time-of-day buckets.
// Ordering within each bucket stays ascending by start time.
type GroupedDaySchedule struct {
	Early     []ResolvedShow `json:"early"`
	Morning   []ResolvedShow `json:"morning"`
	Afternoon []ResolvedShow `json:"afternoon"`
	Evening   []ResolvedShow `json:"evening"`
}

// BuildGroupedDaySchedule partitions BuildDaySchedule output by start hour.
func (r *Resolver) BuildGroupedDaySchedule(weekday int) GroupedDaySchedule {
	var g GroupedDaySchedule
	for _, show := range r.BuildDaySchedule(weekday) {
		switch PartOf(show.Start) {
		case PartEarly:
			g.Early = append(g.Early, show)
		case PartMorning:
			g.Morning = append(g.Morning, show)
		case PartAfternoon:
			g.Afternoon = append(g.Afternoon, show)
		default:
			g.Evening = append(g.Evening, show)
		}
	}
	return g
}

// PartOf maps a validated "HH:MM" start time to its day part.
func PartOf(start string) DayPart {
	mins, err := ToMinutes(start)
	if err != nil {
		return PartEarly
	}
	switch hour := mins / 60; {
	case hour < 6:
		return PartEarly
	case hour < 12:
		return PartMorning
	case hour < 18:
		return PartAfternoon
	default:
		return PartEvening
	}
}
