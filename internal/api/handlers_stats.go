// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/tomtom215/splatfolio/internal/store"
)

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.ComputeStats(r.Context(), h.store)
	if err != nil {
		respondStoreError(w, r, err, "stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
