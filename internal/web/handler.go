/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package web is the thin delivery layer over the scheduling core:
// server-rendered guide and player pages plus the JSON sync endpoints.
package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/friendsincode/munin_tv/internal/catalog"
	"github.com/friendsincode/munin_tv/internal/probe"
	"github.com/friendsincode/munin_tv/internal/schedule"
)

// clockFormat renders the "up next" instant as a local time of day.
const clockFormat = "3:04PM"

// Handler serves the guide, player, media files and JSON sync endpoints.
type Handler struct {
	catalog   *catalog.Catalog
	engine    *schedule.Engine
	resolver  *probe.Resolver
	mediaRoot string
	templates *template.Template
	logger    zerolog.Logger
	now       func() time.Time
}

// NewHandler parses the embedded templates and wires the delivery layer.
func NewHandler(cat *catalog.Catalog, engine *schedule.Engine, resolver *probe.Resolver, mediaRoot string, logger zerolog.Logger) (*Handler, error) {
	templates, err := template.ParseFS(TemplateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		catalog:   cat,
		engine:    engine,
		resolver:  resolver,
		mediaRoot: mediaRoot,
		templates: templates,
		logger:    logger.With().Str("component", "web").Logger(),
		now:       time.Now,
	}, nil
}

type guideEntry struct {
	ID   string
	Name string
	File string
}

// Index renders the channel guide with each channel's current program.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	entries := make([]guideEntry, 0, len(h.catalog.Channels()))
	for _, ch := range h.catalog.Channels() {
		entry := guideEntry{ID: ch.ID, Name: ch.Name, File: "N/A"}
		if np, ok := h.engine.NowPlaying(r.Context(), ch.ID, now); ok {
			entry.File = filepath.Base(np.File)
		}
		entries = append(entries, entry)
	}

	h.render(w, "index.html", map[string]any{"Channels": entries})
}

type playerData struct {
	Channel     catalog.Channel
	Channels    []catalog.Channel
	CurrentFile string
	Offset      float64
	Duration    float64
	Metadata    probe.Format
	NextFile    string
	NextTime    string
}

// Watch renders the player page for one channel, seeked to the shared
// schedule position.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.catalog.Get(chi.URLParam(r, "channel"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	np, ok := h.engine.NowPlaying(r.Context(), ch.ID, h.now())
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.render(w, "player.html", playerData{
		Channel:     ch,
		Channels:    h.catalog.Channels(),
		CurrentFile: h.relToMedia(np.File),
		Offset:      np.Offset,
		Duration:    np.Duration,
		Metadata:    h.resolver.Metadata(r.Context(), np.File),
		NextFile:    filepath.Base(np.Next),
		NextTime:    np.NextStart.Local().Format(clockFormat),
	})
}

// Now returns the JSON sync record viewers poll to stay on schedule.
func (h *Handler) Now(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.catalog.Get(chi.URLParam(r, "channel"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	np, ok := h.engine.NowPlaying(r.Context(), ch.ID, h.now())
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.writeJSON(w, map[string]any{
		"file":      h.relToMedia(np.File),
		"offset":    np.Offset,
		"duration":  np.Duration,
		"next_file": filepath.Base(np.Next),
		"next_time": np.NextStart.Local().Format(clockFormat),
	})
}

// Media serves files beneath the media root.
func (h *Handler) Media(w http.ResponseWriter, r *http.Request) {
	filePath, ok := h.mediaPath(chi.URLParam(r, "*"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filePath)
}

// Metadata returns the probed container record for a file as JSON.
func (h *Handler) Metadata(w http.ResponseWriter, r *http.Request) {
	filePath, ok := h.mediaPath(chi.URLParam(r, "*"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, h.resolver.Metadata(r.Context(), filePath))
}

// mediaPath resolves a request path against the media root, rejecting
// traversal outside it and missing files.
func (h *Handler) mediaPath(rel string) (string, bool) {
	// Clean with a rooted path so ".." cannot climb out, then re-relativize.
	cleaned := path.Clean("/" + rel)
	filePath := filepath.Join(h.mediaRoot, filepath.FromSlash(cleaned))

	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		return "", false
	}
	return filePath, true
}

func (h *Handler) relToMedia(file string) string {
	rel, err := filepath.Rel(h.mediaRoot, file)
	if err != nil {
		return filepath.Base(file)
	}
	return filepath.ToSlash(rel)
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("template render failed")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("encode response failed")
	}
}
