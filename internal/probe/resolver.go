/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package probe

import (
	"context"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// FallbackSeconds is returned whenever a duration probe fails. 22 minutes,
// the length of a typical half-hour broadcast episode without ads.
const FallbackSeconds = 1320.0

// DefaultCacheSize bounds the duration cache when no capacity is configured.
const DefaultCacheSize = 256

// Resolver answers duration and metadata queries with a never-fail
// contract. Durations are cached in a bounded LRU keyed by absolute path;
// metadata is not cached. Concurrent misses for the same path may probe
// more than once, which is harmless.
type Resolver struct {
	prober Prober
	cache  *lru.Cache[string, float64]
	logger zerolog.Logger
}

// NewResolver builds a resolver around a prober with the given cache capacity.
func NewResolver(prober Prober, cacheSize int, logger zerolog.Logger) *Resolver {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	// lru.New only fails for non-positive sizes, which are normalized above.
	cache, _ := lru.New[string, float64](cacheSize)
	return &Resolver{
		prober: prober,
		cache:  cache,
		logger: logger.With().Str("component", "probe").Logger(),
	}
}

// Resolve returns the playback length of path in seconds. Any probe
// failure (missing binary, corrupt file, timeout, unparsable output)
// yields FallbackSeconds instead of an error.
func (r *Resolver) Resolve(ctx context.Context, path string) float64 {
	key := cacheKey(path)
	if seconds, ok := r.cache.Get(key); ok {
		cacheHits.Inc()
		return seconds
	}
	cacheMisses.Inc()

	probeInvocations.WithLabelValues("duration").Inc()
	seconds, err := r.prober.Duration(ctx, path)
	if err != nil {
		probeFailures.WithLabelValues("duration").Inc()
		r.logger.Warn().Err(err).Str("file", path).Msg("duration probe failed, using fallback")
		seconds = FallbackSeconds
	}

	r.cache.Add(key, seconds)
	return seconds
}

// Metadata returns the container format record for path, or the zero
// Format when the probe fails. Results are not cached.
func (r *Resolver) Metadata(ctx context.Context, path string) Format {
	probeInvocations.WithLabelValues("format").Inc()
	format, err := r.prober.Format(ctx, path)
	if err != nil {
		probeFailures.WithLabelValues("format").Inc()
		r.logger.Warn().Err(err).Str("file", path).Msg("metadata probe failed")
		return Format{}
	}
	return format
}

func cacheKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
