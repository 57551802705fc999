/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import (
	"github.com/go-chi/chi/v5"
)

// Routes registers the delivery-layer routes on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/watch/{channel}", h.Watch)
	r.Get("/now/{channel}", h.Now)
	r.Get("/media/*", h.Media)
	r.Get("/metadata/*", h.Metadata)
}
