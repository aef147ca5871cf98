/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleScheduleNow returns the show on air and the next two.
func (a *API) handleScheduleNow(w http.ResponseWriter, r *http.Request) {
	resolved := a.resolver.ResolveCurrentAndNext(a.clock.Read())
	writeJSON(w, http.StatusOK, resolved)
}

// handleScheduleToday returns the full grid for the station's current day.
func (a *API) handleScheduleToday(w http.ResponseWriter, r *http.Request) {
	a.writeDaySchedule(w, r, a.clock.Read().Weekday())
}

// handleScheduleDay returns the grid for an explicit weekday, 0=Sunday.
func (a *API) handleScheduleDay(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(chi.URLParam(r, "weekday"))
	if err != nil || weekday < 0 || weekday > 6 {
		writeError(w, http.StatusBadRequest, "weekday must be 0 (Sunday) through 6 (Saturday)")
		return
	}
	a.writeDaySchedule(w, r, weekday)
}

func (a *API) writeDaySchedule(w http.ResponseWriter, r *http.Request, weekday int) {
	if grouped := r.URL.Query().Get("grouped"); grouped == "1" || grouped == "true" {
		writeJSON(w, http.StatusOK, a.resolver.BuildGroupedDaySchedule(weekday))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"weekday": weekday,
		"shows":   a.resolver.BuildDaySchedule(weekday),
	})
}
