/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package catalog holds the static channel lineup: which channels exist,
// where their files live, and how each channel orders its loop.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rotation selects how a channel orders its main content.
type Rotation string

const (
	RotationSequential Rotation = "sequential"
	RotationRandom     Rotation = "random"
)

// Channel is one entry in the lineup. Immutable after load.
type Channel struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Path     string   `yaml:"path"`
	Rotation Rotation `yaml:"rotation"`
	Filler   *bool    `yaml:"filler"` // nil means enabled
}

// FillerEnabled reports whether filler clips are interleaved into this
// channel's playlist. Filler is on unless explicitly disabled.
func (c Channel) FillerEnabled() bool {
	return c.Filler == nil || *c.Filler
}

// Catalog is the loaded channel lineup, fixed for the process lifetime.
type Catalog struct {
	channels []Channel
	byID     map[string]Channel
}

type lineupFile struct {
	Channels []Channel `yaml:"channels"`
}

// Load reads and validates the channel lineup from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read channels file: %w", err)
	}

	var lineup lineupFile
	if err := yaml.Unmarshal(data, &lineup); err != nil {
		return nil, fmt.Errorf("parse channels file: %w", err)
	}

	return New(lineup.Channels)
}

// New validates a channel list and builds the catalog.
func New(channels []Channel) (*Catalog, error) {
	byID := make(map[string]Channel, len(channels))
	for i := range channels {
		ch := channels[i]
		if ch.ID == "" {
			return nil, fmt.Errorf("channel %d: missing id", i)
		}
		if ch.Path == "" {
			return nil, fmt.Errorf("channel %q: missing path", ch.ID)
		}
		if _, dup := byID[ch.ID]; dup {
			return nil, fmt.Errorf("duplicate channel id %q", ch.ID)
		}
		switch ch.Rotation {
		case "", RotationSequential, RotationRandom:
		default:
			return nil, fmt.Errorf("channel %q: unknown rotation %q", ch.ID, ch.Rotation)
		}
		if ch.Rotation == "" {
			ch.Rotation = RotationSequential
			channels[i] = ch
		}
		byID[ch.ID] = ch
	}

	return &Catalog{channels: channels, byID: byID}, nil
}

// Channels returns the lineup in configuration order.
func (c *Catalog) Channels() []Channel {
	return c.channels
}

// Get looks up a channel by its identifier.
func (c *Catalog) Get(id string) (Channel, bool) {
	ch, ok := c.byID[id]
	return ch, ok
}
