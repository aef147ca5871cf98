/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package devotional

import (
	"testing"
	"time"

	"github.com/praisefmmedia/praisefm_companion/internal/stationclock"
)

func TestAllCoversTheWeek(t *testing.T) {
	all := All()
	if len(all) != 7 {
		t.Fatalf("got %d entries, want 7", len(all))
	}
	seen := map[string]bool{}
	for _, d := range all {
		if d.ID == "" || d.Verse == "" || d.Reference == "" {
			t.Fatalf("incomplete entry: %+v", d)
		}
		if seen[d.ID] {
			t.Fatalf("duplicate id %q", d.ID)
		}
		seen[d.ID] = true
	}
}

func TestTodayFollowsStationWeekday(t *testing.T) {
	// 2026-01-04 is a Sunday.
	sunday := time.Date(2026, 1, 4, 9, 30, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		reading := stationclock.Reading{Instant: sunday.AddDate(0, 0, offset)}
		got := Today(reading)
		want := All()[offset]
		if got.ID != want.ID {
			t.Errorf("day offset %d: got %q, want %q", offset, got.ID, want.ID)
		}
	}
}

func TestByID(t *testing.T) {
	first := All()[0]
	if got, ok := ByID(first.ID); !ok || got.Reference != first.Reference {
		t.Fatalf("ByID(%q) = (%+v, %v)", first.ID, got, ok)
	}
	if _, ok := ByID("daily-verse-99"); ok {
		t.Fatal("unknown id resolved")
	}
}
