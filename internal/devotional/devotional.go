/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package devotional serves the daily verse rotation. The table is static;
// selection follows the station clock so every listener sees the same verse
// regardless of their own timezone.
package devotional

import (
	"fmt"

	"github.com/praisefmmedia/praisefm_companion/internal/stationclock"
)

// Devotional is one daily verse entry.
type Devotional struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Verse     string `json:"verse"`
	Reference string `json:"reference"`
}

// dailyVerses is indexed by weekday, 0 = Sunday.
var dailyVerses = [7]Devotional{
	{
		Title:     "A Day of Worship",
		Verse:     "Let everything that has breath praise the Lord. Praise the Lord!",
		Reference: "Psalm 150:6",
	},
	{
		Title:     "Strength for the Week",
		Verse:     "But those who hope in the Lord will renew their strength. They will soar on wings like eagles.",
		Reference: "Isaiah 40:31",
	},
	{
		Title:     "Trust",
		Verse:     "Trust in the Lord with all your heart and lean not on your own understanding.",
		Reference: "Proverbs 3:5",
	},
	{
		Title:     "New Mercies",
		Verse:     "Because of the Lord's great love we are not consumed, for his compassions never fail. They are new every morning.",
		Reference: "Lamentations 3:22-23",
	},
	{
		Title:     "Be Still",
		Verse:     "Be still, and know that I am God.",
		Reference: "Psalm 46:10",
	},
	{
		Title:     "Do Not Fear",
		Verse:     "So do not fear, for I am with you; do not be dismayed, for I am your God.",
		Reference: "Isaiah 41:10",
	},
	{
		Title:     "Rest",
		Verse:     "Come to me, all you who are weary and burdened, and I will give you rest.",
		Reference: "Matthew 11:28",
	},
}

func init() {
	for i := range dailyVerses {
		dailyVerses[i].ID = fmt.Sprintf("daily-verse-%d", i)
	}
}

// All returns the full weekly rotation, Sunday first.
func All() []Devotional {
	out := make([]Devotional, len(dailyVerses))
	copy(out, dailyVerses[:])
	return out
}

// Today selects the verse for the station's current weekday.
func Today(reading stationclock.Reading) Devotional {
	return dailyVerses[reading.Weekday()]
}

// ByID finds a devotional in the rotation.
func ByID(id string) (Devotional, bool) {
	for _, d := range dailyVerses {
		if d.ID == id {
			return d, true
		}
	}
	return Devotional{}, false
}
