/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"context"
	"time"

	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/telemetry"
)

// runScheduleRefresh recomputes the live show on a fixed cadence and
// publishes a schedule update whenever the show identity changes, so
// connected clients flip the hero card without polling.
func (s *Server) runScheduleRefresh(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	lastID := ""
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resolved := s.resolver.ResolveCurrentAndNext(s.clock.Read())
			if resolved.Current.ID == lastID {
				telemetry.ScheduleRefreshTotal.WithLabelValues("unchanged").Inc()
				continue
			}
			lastID = resolved.Current.ID
			telemetry.ScheduleRefreshTotal.WithLabelValues("changed").Inc()

			s.bus.Publish(events.EventScheduleUpdate, events.Payload{
				"current_id":   resolved.Current.ID,
				"current_name": resolved.Current.Name,
				"next": []string{
					resolved.Next[0].Name,
					resolved.Next[1].Name,
				},
			})
			s.logger.Info().Str("show", resolved.Current.Name).Msg("live show changed")
		}
	}
}
