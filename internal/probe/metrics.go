/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package probe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	probeInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "munintv_probe_invocations_total",
		Help: "Number of ffprobe subprocess invocations by query type.",
	}, []string{"query"})

	probeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "munintv_probe_failures_total",
		Help: "Number of failed ffprobe invocations by query type.",
	}, []string{"query"})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "munintv_duration_cache_hits_total",
		Help: "Duration cache hits.",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "munintv_duration_cache_misses_total",
		Help: "Duration cache misses.",
	})
)
