/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friendsincode/munin_tv/internal/probe"
)

var probeCmd = &cobra.Command{
	Use:   "probe <file>",
	Short: "Probe one media file",
	Long:  "Run the duration and format probes against a single file and print the result, including the fallback behavior the scheduler would see.",
	Args:  cobra.ExactArgs(1),
	RunE:  runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	prober := probe.NewFFProbe(cfg.ProbeBin, cfg.ProbeTimeout)
	resolver := probe.NewResolver(prober, cfg.DurationCacheSize, logger)

	path := args[0]
	seconds := resolver.Resolve(cmd.Context(), path)
	fmt.Printf("duration: %.3fs", seconds)
	if seconds == probe.FallbackSeconds {
		fmt.Printf(" (may be the fallback; probe could have failed)")
	}
	fmt.Println()

	format := resolver.Metadata(cmd.Context(), path)
	if format == (probe.Format{}) {
		fmt.Println("metadata: unavailable")
		return nil
	}
	fmt.Printf("name:     %s\n", format.Filename)
	fmt.Printf("format:   %s\n", format.FormatName)
	if format.BitRate != "" {
		fmt.Printf("bitrate:  %s\n", format.BitRate)
	}
	return nil
}
