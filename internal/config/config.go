/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// AuthBackend selects the session provider implementation.
type AuthBackend string

const (
	AuthLocal AuthBackend = "local"
	AuthMock  AuthBackend = "mock"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int
	BaseURL     string // Public base URL (e.g., https://app.praisefm.usa)

	StationName     string
	StationImage    string // Artwork shown for the off-air placeholder
	StationTimezone string // IANA zone the station broadcasts in
	StreamURL       string
	MetadataURL     string // SSE feed of stream title updates
	TimetablePath   string // Optional YAML override of the built-in grid

	DBBackend DatabaseBackend
	DBDSN     string

	AuthBackend   AuthBackend
	JWTSigningKey string
	SessionTTL    time.Duration

	RefreshInterval time.Duration // schedule recompute cadence
	RecentTracksMax int

	MetricsBind string

	// Redis (album art cache + cross-instance event mirror)
	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// S3 avatar storage; empty bucket selects the local directory store
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3Endpoint        string // For S3-compatible services (MinIO, Spaces, etc.)
	S3PublicBaseURL   string // Optional CDN/CloudFront URL
	S3UsePathStyle    bool   // Required for MinIO
	AvatarDir         string

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("PRAISEFM_ENV", "development"),
		HTTPBind:    getEnv("PRAISEFM_HTTP_BIND", "0.0.0.0"),
		HTTPPort:    getEnvInt("PRAISEFM_HTTP_PORT", 8080),
		BaseURL:     getEnv("PRAISEFM_BASE_URL", ""),

		StationName:     getEnv("PRAISEFM_STATION_NAME", "Praise FM"),
		StationImage:    getEnv("PRAISEFM_STATION_IMAGE", "/static/img/station-default.png"),
		StationTimezone: getEnv("PRAISEFM_STATION_TZ", "America/Chicago"),
		StreamURL:       getEnv("PRAISEFM_STREAM_URL", "https://stream.zeno.fm/hvwifp8ezc6tv"),
		MetadataURL:     getEnv("PRAISEFM_METADATA_URL", "https://api.zeno.fm/mounts/metadata/subscribe/hvwifp8ezc6tv"),
		TimetablePath:   getEnv("PRAISEFM_TIMETABLE_PATH", ""),

		DBBackend: DatabaseBackend(getEnv("PRAISEFM_DB_BACKEND", string(DatabaseSQLite))),
		DBDSN:     getEnv("PRAISEFM_DB_DSN", "praisefm.db"),

		AuthBackend:   AuthBackend(getEnv("PRAISEFM_AUTH_BACKEND", string(AuthLocal))),
		JWTSigningKey: getEnv("PRAISEFM_JWT_SIGNING_KEY", ""),
		SessionTTL:    time.Duration(getEnvInt("PRAISEFM_SESSION_TTL_HOURS", 720)) * time.Hour,

		RefreshInterval: time.Duration(getEnvInt("PRAISEFM_REFRESH_INTERVAL_SECONDS", 5)) * time.Second,
		RecentTracksMax: getEnvInt("PRAISEFM_RECENT_TRACKS_MAX", 15),

		MetricsBind: getEnv("PRAISEFM_METRICS_BIND", "127.0.0.1:9000"),

		RedisEnabled:  getEnvBool("PRAISEFM_REDIS_ENABLED", false),
		RedisAddr:     getEnv("PRAISEFM_REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("PRAISEFM_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("PRAISEFM_REDIS_DB", 0),

		S3AccessKeyID:     getEnvAny([]string{"PRAISEFM_S3_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID"}, ""),
		S3SecretAccessKey: getEnvAny([]string{"PRAISEFM_S3_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY"}, ""),
		S3Region:          getEnvAny([]string{"PRAISEFM_S3_REGION", "AWS_REGION"}, "us-east-1"),
		S3Bucket:          getEnvAny([]string{"PRAISEFM_S3_BUCKET", "S3_BUCKET"}, ""),
		S3Endpoint:        getEnvAny([]string{"PRAISEFM_S3_ENDPOINT", "S3_ENDPOINT"}, ""),
		S3PublicBaseURL:   getEnvAny([]string{"PRAISEFM_S3_PUBLIC_BASE_URL", "S3_PUBLIC_BASE_URL"}, ""),
		S3UsePathStyle:    getEnvBool("PRAISEFM_S3_USE_PATH_STYLE", false),
		AvatarDir:         getEnv("PRAISEFM_AVATAR_DIR", "./avatars"),

		TracingEnabled:    getEnvBool("PRAISEFM_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("PRAISEFM_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("PRAISEFM_TRACING_SAMPLE_RATE", 1.0),
	}

	if cfg.DBBackend != DatabasePostgres && cfg.DBBackend != DatabaseMySQL && cfg.DBBackend != DatabaseSQLite {
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}

	if cfg.AuthBackend != AuthLocal && cfg.AuthBackend != AuthMock {
		return nil, fmt.Errorf("unsupported auth backend %q", cfg.AuthBackend)
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("PRAISEFM_DB_DSN must be provided")
	}

	if cfg.AuthBackend == AuthLocal && cfg.JWTSigningKey == "" {
		if strings.EqualFold(cfg.Environment, "production") {
			return nil, fmt.Errorf("PRAISEFM_JWT_SIGNING_KEY must be provided in production")
		}
		cfg.JWTSigningKey = "praisefm-dev-signing-key"
	}

	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("PRAISEFM_REFRESH_INTERVAL_SECONDS must be positive")
	}

	if cfg.RecentTracksMax <= 0 {
		return nil, fmt.Errorf("PRAISEFM_RECENT_TRACKS_MAX must be positive")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvAny returns the first non-empty environment variable value from keys, or def if none set.
func getEnvAny(keys []string, def string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
