/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package stationclock renders the current instant in the station's fixed
// broadcast timezone, independent of the listener's local zone.
package stationclock

import (
	"fmt"
	"time"
)

// Clock yields the current instant. Injecting a fixed clock lets schedule
// scenarios pin "Wednesday 09:00" in tests.
type Clock interface {
	Now() time.Time
}

// StationClock reads the system clock and converts into the station zone.
type StationClock struct {
	loc   *time.Location
	clock Clock
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (f FixedClock) Now() time.Time { return f.Instant }

// New resolves the IANA zone and returns a station clock backed by the
// system clock. An unknown zone is a configuration error.
func New(timezone string) (*StationClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load station timezone %q: %w", timezone, err)
	}
	return &StationClock{loc: loc, clock: systemClock{}}, nil
}

// NewWithClock is New with an injected time source.
func NewWithClock(timezone string, clock Clock) (*StationClock, error) {
	sc, err := New(timezone)
	if err != nil {
		return nil, err
	}
	sc.clock = clock
	return sc, nil
}

// Reading is one snapshot of station time. Resolution passes take a single
// Reading so that repeated lookups within one pass stay consistent.
type Reading struct {
	Instant time.Time
}

// Read snapshots the current station time.
func (sc *StationClock) Read() Reading {
	return Reading{Instant: sc.clock.Now().In(sc.loc)}
}

// Location exposes the station zone for callers formatting timestamps.
func (sc *StationClock) Location() *time.Location {
	return sc.loc
}

// Weekday returns the station-local weekday, 0=Sunday..6=Saturday.
func (r Reading) Weekday() int {
	return int(r.Instant.Weekday())
}

// MinutesSinceMidnight returns station-local minutes since midnight with
// fractional seconds, so progress bars advance between whole minutes.
func (r Reading) MinutesSinceMidnight() float64 {
	return float64(r.Instant.Hour())*60 +
		float64(r.Instant.Minute()) +
		float64(r.Instant.Second())/60 +
		float64(r.Instant.Nanosecond())/6e10
}
