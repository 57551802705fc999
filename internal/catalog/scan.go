/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Video file extensions eligible for playout.
var videoExts = map[string]struct{}{
	".mp4": {},
	".m4v": {},
	".mov": {},
	".avi": {},
	".mkv": {},
}

// IsVideoFile reports whether a filename carries a playable extension.
func IsVideoFile(name string) bool {
	_, ok := videoExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ListDir returns the playable files directly inside dir, sorted
// lexicographically by filename and joined with dir. A missing or
// unreadable directory yields an empty list, never an error: a mistyped
// channel path means an empty channel, not a dead process.
func ListDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.TrimSpace(entry.Name())
		if !IsVideoFile(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files
}

// ListFiles returns a channel's main content in canonical sequential order.
func ListFiles(ch Channel) []string {
	return ListDir(ch.Path)
}
