// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/metrics"
	"github.com/tomtom215/splatfolio/internal/splat"
	"github.com/tomtom215/splatfolio/internal/store"
)

// ServeFile handles GET /static/{folder}/{file} and its /public alias.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindForFolder(chi.URLParam(r, "folder"))
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
		return
	}
	path, err := h.media.Path(kind, chi.URLParam(r, "file"))
	if err != nil {
		metrics.RecordAssetServe(string(kind), "not_found")
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
		return
	}

	if kind == store.KindModel {
		h.serveModel(w, r, path)
		return
	}
	h.serveMedia(w, r, kind, path)
}

// serveModel streams a point-cloud file through the splat codec under the
// configured alignment policy.
func (h *Handler) serveModel(w http.ResponseWriter, r *http.Request, path string) {
	kind := string(store.KindModel)

	info, err := splat.Serve(w, r, path, h.policy)
	switch {
	case err == nil:
		metrics.RecordAssetServe(kind, "served")
		if info.Misaligned() {
			metrics.RecordMisalignedFile(h.policy.String())
			logging.Ctx(r.Context()).Warn().
				Str("path", path).
				Int64("file_size", info.FileSize).
				Int64("served_size", info.AlignedSize).
				Msg("Served aligned prefix of misaligned model")
		}
	case splat.IsMisaligned(err):
		metrics.RecordAssetServe(kind, "misaligned")
		metrics.RecordMisalignedFile(h.policy.String())
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Refusing to serve misaligned model")
		respondError(w, r, http.StatusUnprocessableEntity, ErrCodeAssetUnavailable, "Asset unavailable", nil)
	case errors.Is(err, fs.ErrNotExist):
		metrics.RecordAssetServe(kind, "not_found")
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
	default:
		metrics.RecordAssetServe(kind, "error")
		logging.Ctx(r.Context()).Error().Err(err).Str("path", path).Msg("Failed to open model")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to read asset", nil)
	}
}

// serveMedia serves photos and videos with range support.
func (h *Handler) serveMedia(w http.ResponseWriter, r *http.Request, kind store.Kind, path string) {
	f, err := os.Open(path) //nolint:gosec // path is confined to the kind folder by media.Path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RecordAssetServe(string(kind), "not_found")
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
			return
		}
		metrics.RecordAssetServe(string(kind), "error")
		logging.Ctx(r.Context()).Error().Err(err).Str("path", path).Msg("Failed to open asset")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to read asset", nil)
		return
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil || !st.Mode().IsRegular() {
		metrics.RecordAssetServe(string(kind), "not_found")
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
		return
	}

	metrics.RecordAssetServe(string(kind), "served")
	w.Header().Set("Cache-Control", "public, max-age=86400, no-transform")
	http.ServeContent(w, r, st.Name(), st.ModTime(), f)
}

// kindForFolder accepts only the exact folder names.
func kindForFolder(folder string) (store.Kind, bool) {
	for _, k := range store.Kinds {
		if k.Folder() == folder {
			return k, true
		}
	}
	return "", false
}
