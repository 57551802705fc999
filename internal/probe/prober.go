/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package probe extracts playback durations and container metadata from
// media files by shelling out to ffprobe. Callers above the resolver never
// see a probe failure: durations fall back to a fixed default and metadata
// degrades to an empty record.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Format is the container-level metadata record used for presentation.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	BitRate    string `json:"bit_rate"`
}

// Prober extracts duration and format information from a media file.
// Injected so scheduling can be tested without ffprobe on the PATH.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
	Format(ctx context.Context, path string) (Format, error)
}

// FFProbe runs the ffprobe binary over a subprocess boundary.
type FFProbe struct {
	bin     string
	timeout time.Duration
}

// NewFFProbe builds a prober around the given ffprobe binary. A slow or
// wedged subprocess is cut off after timeout and treated as a failure.
func NewFFProbe(bin string, timeout time.Duration) *FFProbe {
	if bin == "" {
		bin = "ffprobe"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FFProbe{bin: bin, timeout: timeout}
}

// Duration asks ffprobe for format.duration as a bare number.
func (p *FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration: %w", err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration %f for %s", seconds, path)
	}
	return seconds, nil
}

// Format asks ffprobe for the presentation fields as JSON.
func (p *FFProbe) Format(ctx context.Context, path string) (Format, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.bin,
		"-v", "error",
		"-show_entries", "format=filename,format_name,duration,bit_rate",
		"-of", "json",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return Format{}, fmt.Errorf("ffprobe: %w", err)
	}

	var probed struct {
		Format Format `json:"format"`
	}
	if err := json.Unmarshal(output, &probed); err != nil {
		return Format{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	probed.Format.Filename = displayName(probed.Format.Filename)
	return probed.Format, nil
}

// displayName strips directories and the extension so the UI shows a
// title, not a filesystem path.
func displayName(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
