/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package schedule computes the live broadcast grid: which program is on air
// right now, what comes next, and the per-day agenda. Everything here is a
// pure function over an immutable Timetable and a station clock reading.
package schedule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one recurring weekly program placement. Start and End are
// station-local "HH:MM" strings; End numerically at or before Start means the
// program runs past midnight.
type Entry struct {
	Start       string `yaml:"start" json:"start"`
	End         string `yaml:"end" json:"end"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
	Website     string `yaml:"website" json:"website"`
	Host        string `yaml:"host" json:"host"`
	// Days restricts the entry to weekday indices 0=Sunday..6=Saturday.
	// Empty means every day.
	Days []int `yaml:"days" json:"days,omitempty"`
}

// ID derives the entry identity. Names repeat across the grid (the same
// program airs in several slots), so identity includes the start time.
func (e Entry) ID() string {
	return e.Name + e.Start
}

// AppliesTo reports whether the entry airs on the given weekday.
func (e Entry) AppliesTo(weekday int) bool {
	if len(e.Days) == 0 {
		return true
	}
	for _, d := range e.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// Timetable is the validated, immutable weekly grid.
type Timetable struct {
	entries []Entry
}

// Entries returns the slots in grid order.
func (t *Timetable) Entries() []Entry {
	return t.entries
}

// Len returns the number of slots.
func (t *Timetable) Len() int {
	return len(t.entries)
}

// FindByName returns the first entry with the given program name.
func (t *Timetable) FindByName(name string) (Entry, bool) {
	for _, e := range t.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// New validates entries and builds a timetable. An empty or malformed grid is
// a configuration error; callers are expected to fail startup on it.
func New(entries []Entry) (*Timetable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("timetable is empty")
	}

	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		start, err := ToMinutes(e.Start)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): start: %w", i, e.Name, err)
		}
		end, err := ToMinutes(e.End)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): end: %w", i, e.Name, err)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: name is required", i)
		}
		duration := EffectiveEnd(start, end) - start
		if duration <= 0 || duration > minutesPerDay {
			return nil, fmt.Errorf("entry %d (%q): duration %d minutes out of range", i, e.Name, duration)
		}
		for _, d := range e.Days {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("entry %d (%q): weekday %d out of range", i, e.Name, d)
			}
		}
		if _, dup := seen[e.ID()]; dup {
			return nil, fmt.Errorf("entry %d: duplicate program %q at %s", i, e.Name, e.Start)
		}
		seen[e.ID()] = struct{}{}
	}

	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &Timetable{entries: copied}, nil
}

type timetableFile struct {
	Entries []Entry `yaml:"schedule"`
}

// LoadFile reads a YAML timetable override.
func LoadFile(path string) (*Timetable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timetable file: %w", err)
	}

	var file timetableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse timetable file: %w", err)
	}

	tt, err := New(file.Entries)
	if err != nil {
		return nil, fmt.Errorf("timetable file %s: %w", path, err)
	}
	return tt, nil
}

// Load returns the timetable from path when set, otherwise the built-in grid.
func Load(path string) (*Timetable, error) {
	if path != "" {
		return LoadFile(path)
	}
	return New(DefaultGrid())
}
