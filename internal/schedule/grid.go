/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

const programSite = "https://praisefm.usa/program/"

// DefaultGrid is the station's weekly broadcast grid, used when no timetable
// file is configured.
func DefaultGrid() []Entry {
	return []Entry{
		{Start: "00:00", End: "06:00", Name: "Midnight Grace", Host: "Daniel Brooks",
			Description: "Peaceful hours with gentle worship.", Website: programSite + "midnight-grace"},
		{Start: "06:00", End: "07:00", Name: "Praise FM Worship",
			Description: "The finest worship music.", Website: programSite + "worship"},
		{Start: "07:00", End: "12:00", Name: "Morning Show", Host: "Stancy Campbell", Days: []int{1, 2, 3, 4, 5, 6},
			Description: "Inspiration and worship to start your day.", Website: programSite + "morning-show"},
		{Start: "07:00", End: "12:00", Name: "Sunday Morning With Christ", Host: "Matt Riley", Days: []int{0},
			Description: "Sunday reflection and praise.", Website: programSite + "sunday-morning"},
		{Start: "12:00", End: "13:00", Name: "Praise FM Worship",
			Description: "The finest worship music.", Website: programSite + "worship"},
		{Start: "13:00", End: "16:00", Name: "Midday Grace", Host: "Michael Ray",
			Description: "Michael Ray brings grace through the midday.", Website: programSite + "midday-grace"},
		{Start: "16:00", End: "17:00", Name: "Praise FM Non Stop",
			Description: "Non-stop praise hits.", Website: programSite + "non-stop"},
		{Start: "17:00", End: "18:00", Name: "Future Artists", Host: "Sarah Jordan",
			Description: "Emerging talent in worship.", Website: programSite + "future-artists"},
		{Start: "18:00", End: "20:00", Name: "Praise FM Carpool", Host: "Rachael Harris", Days: []int{1, 2, 3, 4, 5, 6},
			Description: "Tunes for your drive home.", Website: programSite + "carpool"},
		{Start: "18:00", End: "20:00", Name: "Praise FM Worship", Days: []int{0},
			Description: "Sunday praise session.", Website: programSite + "worship"},
		{Start: "20:00", End: "21:00", Name: "Praise FM POP", Host: "Jordan Reys", Days: []int{1, 2, 4, 5, 6, 0},
			Description: "Contemporary praise hits.", Website: programSite + "pop"},
		{Start: "20:00", End: "21:00", Name: "Praise FM Live Show", Days: []int{3},
			Description: "Live sessions and guests.", Website: programSite + "live-show"},
		{Start: "21:00", End: "22:00", Name: "Praise FM Classics", Host: "Scott Turner",
			Description: "Timeless anthems of faith.", Website: programSite + "classics"},
		{Start: "22:00", End: "22:30", Name: "Living The Message", Days: []int{0},
			Description: "Deep dive into the Word.", Website: programSite + "living-the-message"},
		{Start: "22:00", End: "00:00", Name: "Praise FM Worship", Days: []int{1, 2, 3, 4, 5, 6},
			Description: "Nightly worship session.", Website: programSite + "worship"},
	}
}
