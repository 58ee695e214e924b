// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/store"
)

// createCategoryRequest is the body of POST /api/categories.
type createCategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// objectID renders an id the way the frontend reads category ids:
// {"$oid": "..."}.
type objectID struct {
	OID string `json:"$oid"`
}

// categoryResponse is the wire shape of a category.
type categoryResponse struct {
	ID   objectID `json:"_id"`
	Name string   `json:"name"`
}

func toCategoryResponse(c *store.Category) categoryResponse {
	return categoryResponse{ID: objectID{OID: c.ID}, Name: c.Name}
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		respondStoreError(w, r, err, "list categories")
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateCategory handles POST /api/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSONBody(w, r, maxJSONBody, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", nil)
		return
	}
	if verr := validationError(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, verr.Message, verr.Details)
		return
	}

	category, err := h.store.CreateCategory(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		respondStoreError(w, r, err, "create category")
		return
	}

	logging.Ctx(r.Context()).Info().Str("id", category.ID).Str("name", category.Name).Msg("Category created")
	respondJSON(w, http.StatusCreated, toCategoryResponse(category))
}
