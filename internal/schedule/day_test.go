/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"sort"
	"testing"
)

func TestBuildDayScheduleFiltersAndSorts(t *testing.T) {
	r := testResolver(t, []Entry{
		{Start: "18:00", End: "20:00", Name: "Drive", Days: []int{1, 2, 3, 4, 5, 6}},
		{Start: "07:00", End: "12:00", Name: "Morning Show", Days: []int{1, 2, 3, 4, 5, 6}},
		{Start: "07:00", End: "12:00", Name: "Sunday Morning", Days: []int{0}},
		{Start: "12:00", End: "18:00", Name: "Midday"},
	})

	sunday := r.BuildDaySchedule(0)
	for _, show := range sunday {
		if show.Name == "Morning Show" || show.Name == "Drive" {
			t.Fatalf("weekday-restricted show %q leaked into Sunday", show.Name)
		}
	}
	if len(sunday) != 2 {
		t.Fatalf("expected 2 Sunday shows, got %d", len(sunday))
	}

	for day := 1; day <= 6; day++ {
		shows := r.BuildDaySchedule(day)
		found := false
		for _, show := range shows {
			if show.Name == "Morning Show" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected Morning Show on weekday %d", day)
		}
		if !sort.SliceIsSorted(shows, func(i, j int) bool { return shows[i].Start < shows[j].Start }) {
			t.Fatalf("day %d schedule not sorted by start time", day)
		}
	}
}

func TestBuildDayScheduleEmptyDayIsValid(t *testing.T) {
	r := testResolver(t, []Entry{
		{Start: "07:00", End: "12:00", Name: "Weekdays Only", Days: []int{1, 2, 3, 4, 5}},
	})
	if got := r.BuildDaySchedule(6); len(got) != 0 {
		t.Fatalf("expected empty Saturday schedule, got %d shows", len(got))
	}
}

func TestBuildGroupedDaySchedule(t *testing.T) {
	r := testResolver(t, []Entry{
		{Start: "00:00", End: "06:00", Name: "Midnight Grace"},
		{Start: "06:00", End: "07:00", Name: "Sunrise"},
		{Start: "11:59", End: "12:30", Name: "Almost Noon"},
		{Start: "12:00", End: "16:00", Name: "Midday"},
		{Start: "18:00", End: "22:00", Name: "Evening Drive"},
	})

	g := r.BuildGroupedDaySchedule(2)
	if len(g.Early) != 1 || g.Early[0].Name != "Midnight Grace" {
		t.Fatalf("unexpected early bucket: %+v", g.Early)
	}
	if len(g.Morning) != 2 || g.Morning[0].Name != "Sunrise" || g.Morning[1].Name != "Almost Noon" {
		t.Fatalf("unexpected morning bucket: %+v", g.Morning)
	}
	if len(g.Afternoon) != 1 || g.Afternoon[0].Name != "Midday" {
		t.Fatalf("unexpected afternoon bucket: %+v", g.Afternoon)
	}
	if len(g.Evening) != 1 || g.Evening[0].Name != "Evening Drive" {
		t.Fatalf("unexpected evening bucket: %+v", g.Evening)
	}
}

func TestPartOfBoundaries(t *testing.T) {
	cases := map[string]DayPart{
		"00:00": PartEarly,
		"05:59": PartEarly,
		"06:00": PartMorning,
		"11:59": PartMorning,
		"12:00": PartAfternoon,
		"17:59": PartAfternoon,
		"18:00": PartEvening,
		"23:59": PartEvening,
	}
	for in, want := range cases {
		if got := PartOf(in); got != want {
			t.Fatalf("PartOf(%q) = %q, want %q", in, got, want)
		}
	}
}
