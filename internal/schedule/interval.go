/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 1440

// ToMinutes converts a 24-hour "HH:MM" string to minutes since midnight.
func ToMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", t)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q: hour out of range", t)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", t)
	}
	return hour*60 + minute, nil
}

// EffectiveEnd adjusts an end offset for slots that run past midnight: a
// program from 22:00 to 00:00 ends at minute 1440 relative to its own day.
func EffectiveEnd(start, end int) int {
	if end <= start {
		return end + minutesPerDay
	}
	return end
}

// Progress returns the elapsed percentage of [start, effective end) at now,
// where now carries fractional minutes. Outside the live window it is 0; the
// clamp keeps it below 100 even with clock skew.
func Progress(now float64, start, end int) float64 {
	effEnd := EffectiveEnd(start, end)
	if now < float64(start) || now >= float64(effEnd) {
		return 0
	}
	total := float64(effEnd - start)
	pct := (now - float64(start)) / total * 100
	if pct < 0 {
		return 0
	}
	if pct >= 100 {
		return 99.999
	}
	return pct
}
