/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/friendsincode/munin_tv/internal/catalog"
	"github.com/friendsincode/munin_tv/internal/playlist"
	"github.com/friendsincode/munin_tv/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print every channel's finalized playlist",
	Long:  "Build the schedule table exactly as serve would and dump each channel's loop, in order, to stdout. Filler interleaving is re-drawn on every run; main content order is stable.",
	RunE:  runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.ChannelsPath)
	if err != nil {
		return fmt.Errorf("load channel lineup: %w", err)
	}

	builder := playlist.NewBuilder(cfg.FillerPath(), logger)
	table := schedule.Initialize(cat, builder, logger)

	for _, ch := range cat.Channels() {
		fmt.Printf("\nChannel: %s (%s)\n", ch.Name, ch.ID)
		entries := table.Playlist(ch.ID)
		if len(entries) == 0 {
			fmt.Println("  (off the air: no playable files)")
			continue
		}
		for i, f := range entries {
			fmt.Printf("  %02d. %s\n", i+1, filepath.Base(f))
		}
	}
	return nil
}
