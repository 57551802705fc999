/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultEpoch anchors every channel's loop. All viewers compute their
// position against the same instant, so everyone sees the same program.
const DefaultEpoch = "2025-01-01T00:00:00Z"

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int
	MetricsBind string

	MediaRoot    string // Root directory all served media lives beneath
	ChannelsPath string // YAML channel definitions
	FillerDir    string // Shared folder of filler clips, relative to MediaRoot

	ProbeBin          string // ffprobe binary
	ProbeTimeout      time.Duration
	DurationCacheSize int

	Epoch time.Time // Reference epoch for loop position

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("MUNINTV_ENV", "development"),
		HTTPBind:    getEnv("MUNINTV_HTTP_BIND", "0.0.0.0"),
		HTTPPort:    getEnvInt("MUNINTV_HTTP_PORT", 5050),
		MetricsBind: getEnv("MUNINTV_METRICS_BIND", "127.0.0.1:9000"),

		MediaRoot:    getEnv("MUNINTV_MEDIA_ROOT", "./media"),
		ChannelsPath: getEnv("MUNINTV_CHANNELS_PATH", "./channels.yaml"),
		FillerDir:    getEnv("MUNINTV_FILLER_DIR", "commercials"),

		ProbeBin:          getEnv("MUNINTV_PROBE_BIN", "ffprobe"),
		ProbeTimeout:      time.Duration(getEnvInt("MUNINTV_PROBE_TIMEOUT_SECONDS", 10)) * time.Second,
		DurationCacheSize: getEnvInt("MUNINTV_DURATION_CACHE_SIZE", 256),

		TracingEnabled:    getEnvBool("MUNINTV_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("MUNINTV_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("MUNINTV_TRACING_SAMPLE_RATE", 1.0),
	}

	epoch := getEnv("MUNINTV_EPOCH", DefaultEpoch)
	parsed, err := time.Parse(time.RFC3339, epoch)
	if err != nil {
		return nil, fmt.Errorf("MUNINTV_EPOCH must be RFC 3339: %w", err)
	}
	cfg.Epoch = parsed.UTC()

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("MUNINTV_HTTP_PORT out of range: %d", cfg.HTTPPort)
	}
	if cfg.DurationCacheSize <= 0 {
		return nil, fmt.Errorf("MUNINTV_DURATION_CACHE_SIZE must be positive: %d", cfg.DurationCacheSize)
	}
	if cfg.ProbeTimeout <= 0 {
		return nil, fmt.Errorf("MUNINTV_PROBE_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

// FillerPath returns the shared filler clip folder. A relative FillerDir
// resolves beneath MediaRoot.
func (c *Config) FillerPath() string {
	if filepath.IsAbs(c.FillerDir) {
		return c.FillerDir
	}
	return filepath.Join(c.MediaRoot, c.FillerDir)
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
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
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "true" || v == "1" || v == "yes" {
			return true
		}
		if v == "false" || v == "0" || v == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}
