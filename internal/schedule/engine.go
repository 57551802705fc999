/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// DurationResolver supplies playback lengths in seconds. Never fails;
// see internal/probe for the fallback contract.
type DurationResolver interface {
	Resolve(ctx context.Context, path string) float64
}

// NowPlaying describes one channel's program at a given instant.
type NowPlaying struct {
	File      string  // currently playing file
	Offset    float64 // seconds into File
	Duration  float64 // total length of File in seconds
	Next      string  // following entry, wrapping to the first
	NextStart time.Time
}

// Engine answers "what is on right now". For a fixed table and fixed
// durations it is a pure function of the query time: no state is written
// anywhere except the resolver's cache, so concurrent callers at the same
// instant get the same answer.
type Engine struct {
	table    *Table
	resolver DurationResolver
	epoch    time.Time
	logger   zerolog.Logger
}

// NewEngine builds a schedule engine over a frozen table.
func NewEngine(table *Table, resolver DurationResolver, epoch time.Time, logger zerolog.Logger) *Engine {
	return &Engine{
		table:    table,
		resolver: resolver,
		epoch:    epoch,
		logger:   logger.With().Str("component", "schedule").Logger(),
	}
}

// NowPlaying computes the current program for a channel at the given
// instant. The second return is false when nothing is playing: unknown
// channel, empty playlist, or a degenerate zero-length loop.
func (e *Engine) NowPlaying(ctx context.Context, channelID string, now time.Time) (NowPlaying, bool) {
	files := e.table.Playlist(channelID)
	if len(files) == 0 {
		return NowPlaying{}, false
	}

	durations := make([]float64, len(files))
	total := 0.0
	for i, f := range files {
		durations[i] = e.resolver.Resolve(ctx, f)
		total += durations[i]
	}
	if total <= 0 {
		// All durations zero. Guard the modulo below.
		e.logger.Warn().Str("channel", channelID).Msg("playlist has zero total duration")
		return NowPlaying{}, false
	}

	// Position within one full loop, identical for every caller at this
	// instant because the epoch is shared process-wide.
	elapsed := math.Mod(now.Sub(e.epoch).Seconds(), total)
	if elapsed < 0 {
		elapsed += total
	}

	offset := elapsed
	for i, d := range durations {
		if offset < d {
			return e.entryAt(files, durations, i, offset, now), true
		}
		offset -= d
	}

	// Floating point can land offset exactly on total; wrap to the start.
	return e.entryAt(files, durations, 0, 0, now), true
}

func (e *Engine) entryAt(files []string, durations []float64, i int, offset float64, now time.Time) NowPlaying {
	remaining := durations[i] - offset
	return NowPlaying{
		File:      files[i],
		Offset:    offset,
		Duration:  durations[i],
		Next:      files[(i+1)%len(files)],
		NextStart: now.Add(time.Duration(remaining * float64(time.Second))),
	}
}
