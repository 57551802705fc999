/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package schedule converts wall-clock time into "which file, how far in"
// for every channel's endless loop.
package schedule

import (
	"github.com/rs/zerolog"

	"github.com/friendsincode/munin_tv/internal/catalog"
	"github.com/friendsincode/munin_tv/internal/playlist"
)

// Table maps channel identifiers to their finalized playlists. Built
// exactly once by Initialize during startup and read-only afterwards, so
// concurrent queries need no locking. A restart is the only rebuild.
type Table struct {
	playlists map[string]playlist.Playlist
}

// Initialize builds every channel's playlist and freezes the result.
func Initialize(cat *catalog.Catalog, builder *playlist.Builder, logger zerolog.Logger) *Table {
	playlists := make(map[string]playlist.Playlist, len(cat.Channels()))
	for _, ch := range cat.Channels() {
		pl := builder.Build(ch)
		playlists[ch.ID] = pl
		logger.Info().
			Str("channel", ch.ID).
			Str("rotation", string(ch.Rotation)).
			Int("entries", len(pl)).
			Msg("channel scheduled")
	}
	return &Table{playlists: playlists}
}

// Playlist returns the finalized playlist for a channel, or nil for an
// unknown channel.
func (t *Table) Playlist(channelID string) playlist.Playlist {
	return t.playlists[channelID]
}
