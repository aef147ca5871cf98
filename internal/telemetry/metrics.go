/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package telemetry provides Prometheus metrics and OpenTelemetry tracing.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts HTTP API requests by method, endpoint and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "praisefm",
			Name:      "api_requests_total",
			Help:      "Total number of API requests.",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration observes HTTP API request latency in seconds.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "praisefm",
			Name:      "api_request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIActiveConnections gauges in-flight API requests.
	APIActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "praisefm",
			Name:      "api_active_connections",
			Help:      "In-flight API requests.",
		},
	)

	// ScheduleRefreshTotal counts schedule recompute passes by outcome.
	ScheduleRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "praisefm",
			Name:      "schedule_refresh_total",
			Help:      "Schedule recompute passes.",
		},
		[]string{"outcome"},
	)

	// TrackChangesTotal counts track transitions seen on the metadata feed.
	TrackChangesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "praisefm",
			Name:      "track_changes_total",
			Help:      "Track transitions observed on the metadata feed.",
		},
	)

	// EventClientsConnected gauges live websocket event subscribers.
	EventClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "praisefm",
			Name:      "event_clients_connected",
			Help:      "Connected websocket event clients.",
		},
	)
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
