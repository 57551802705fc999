/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package playlist turns a channel's raw file list into the finalized,
// endlessly looping sequence the schedule engine walks.
package playlist

import (
	"math/rand/v2"
	"sort"

	"github.com/rs/zerolog"

	"github.com/friendsincode/munin_tv/internal/catalog"
)

// Playlist is the finalized, ordered, looping file sequence for one
// channel. Its end wraps to its beginning; empty means nothing to play.
type Playlist []string

// Builder assembles playlists, interleaving filler clips from a shared
// folder when a channel asks for them.
type Builder struct {
	fillerDir string
	logger    zerolog.Logger
}

// NewBuilder constructs a playlist builder. fillerDir is the shared
// filler clip folder; it may be missing or empty.
func NewBuilder(fillerDir string, logger zerolog.Logger) *Builder {
	return &Builder{
		fillerDir: fillerDir,
		logger:    logger.With().Str("component", "playlist").Logger(),
	}
}

// Build produces the channel's playlist. Main content order is fixed
// across rebuilds (sorted, or deterministically shuffled for random
// channels); filler interleaving is intentionally unseeded so breaks feel
// fresh after every restart.
func (b *Builder) Build(ch catalog.Channel) Playlist {
	files := catalog.ListFiles(ch)
	if len(files) == 0 {
		b.logger.Warn().Str("channel", ch.ID).Str("path", ch.Path).Msg("no playable files, channel is off the air")
		return nil
	}

	if ch.Rotation == catalog.RotationRandom {
		files = Shuffle(files, ch.ID)
	} else {
		sort.Strings(files)
	}

	if !ch.FillerEnabled() {
		return files
	}

	fillers := catalog.ListDir(b.fillerDir)
	if len(fillers) == 0 {
		return files
	}

	// After every main entry, 0-2 filler clips drawn without replacement.
	out := make(Playlist, 0, len(files)*3)
	for _, f := range files {
		out = append(out, f)
		out = append(out, sample(fillers, rand.IntN(3))...)
	}

	b.logger.Debug().
		Str("channel", ch.ID).
		Int("main", len(files)).
		Int("total", len(out)).
		Msg("playlist built")
	return out
}

// sample draws n distinct entries from pool, or all of it when the pool
// is smaller than n.
func sample(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	if n == 0 {
		return nil
	}
	picks := make([]string, 0, n)
	for _, i := range rand.Perm(len(pool))[:n] {
		picks = append(picks, pool[i])
	}
	return picks
}
