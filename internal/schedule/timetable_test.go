/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRejectsEmptyTimetable(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for empty timetable")
	}
}

func TestNewRejectsMalformedTimes(t *testing.T) {
	cases := [][]Entry{
		{{Start: "25:00", End: "26:00", Name: "Bad Hour"}},
		{{Start: "07:00", End: "07:60", Name: "Bad Minute"}},
		{{Start: "breakfast", End: "09:00", Name: "Not A Time"}},
	}
	for _, entries := range cases {
		if _, err := New(entries); err == nil {
			t.Fatalf("expected error for %+v", entries[0])
		}
	}
}

func TestNewRejectsDuplicateIdentity(t *testing.T) {
	_, err := New([]Entry{
		{Start: "07:00", End: "09:00", Name: "Morning Show"},
		{Start: "07:00", End: "10:00", Name: "Morning Show", Days: []int{0}},
	})
	if err == nil {
		t.Fatal("expected error for duplicate (name, start) pair")
	}
}

func TestNewAllowsSameNameDifferentStart(t *testing.T) {
	tt, err := New([]Entry{
		{Start: "06:00", End: "07:00", Name: "Praise FM Worship"},
		{Start: "12:00", End: "13:00", Name: "Praise FM Worship"},
	})
	if err != nil {
		t.Fatalf("expected same name at different starts to be valid: %v", err)
	}
	if tt.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", tt.Len())
	}
}

func TestNewRejectsBadWeekday(t *testing.T) {
	if _, err := New([]Entry{{Start: "07:00", End: "09:00", Name: "Show", Days: []int{7}}}); err == nil {
		t.Fatal("expected error for weekday 7")
	}
}

func TestDefaultGridIsValid(t *testing.T) {
	tt, err := New(DefaultGrid())
	if err != nil {
		t.Fatalf("default grid must validate: %v", err)
	}
	if tt.Len() == 0 {
		t.Fatal("default grid must not be empty")
	}
	if _, ok := tt.FindByName("Morning Show"); !ok {
		t.Fatal("expected Morning Show in default grid")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable.yaml")
	data := `schedule:
  - start: "07:00"
    end: "12:00"
    name: Morning Show
    days: [1, 2, 3, 4, 5, 6]
  - start: "22:00"
    end: "00:00"
    name: Night Worship
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tt, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if tt.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", tt.Len())
	}
	entry, ok := tt.FindByName("Night Worship")
	if !ok {
		t.Fatal("expected Night Worship entry")
	}
	if entry.End != "00:00" {
		t.Fatalf("expected midnight end preserved, got %q", entry.End)
	}
}

func TestLoadFileRejectsInvalidGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable.yaml")
	if err := os.WriteFile(path, []byte("schedule:\n  - start: \"99:00\"\n    end: \"10:00\"\n    name: Broken\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for invalid timetable file")
	}
}
