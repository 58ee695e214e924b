// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/media"
	"github.com/tomtom215/splatfolio/internal/metrics"
	"github.com/tomtom215/splatfolio/internal/store"
)

// maxTextField bounds the name and category form values.
const maxTextField = 1 << 10

// uploadFields is what an upload form carried once every part is read.
type uploadFields struct {
	Name     string `json:"name" validate:"required,notblank,max=200"`
	Category string `json:"category" validate:"required,notblank"`
	// Filename is set once the file part has been stored.
	Filename string `json:"file" validate:"required"`
}

// uploadResponse is the body of a successful upload.
type uploadResponse struct {
	Success  bool   `json:"success"`
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

var (
	// errEmptyFile rejects a file part that leaves nothing on disk.
	errEmptyFile = errors.New("uploaded file is empty")
	// errBodyRead marks failures reading the request, as opposed to
	// failures writing the stored file.
	errBodyRead = errors.New("read upload body")
)

// bodyReader tags read errors with errBodyRead.
type bodyReader struct {
	r io.Reader
}

func (b bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = fmt.Errorf("%w: %w", errBodyRead, err)
	}
	return n, err
}

// Upload handles POST /api/upload-<kind>. The body is read as a stream:
// text fields are buffered (bounded), the file part goes straight to disk.
// Models are truncated to whole point records on the way.
func (h *Handler) Upload(kind store.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

		mr, err := r.MultipartReader()
		if err != nil {
			metrics.RecordUpload(string(kind), "rejected", 0)
			respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Expected a multipart/form-data body", nil)
			return
		}

		fields, saved, err := h.readUploadForm(ctx, kind, mr)
		if err != nil {
			h.discardUpload(ctx, kind, fields.Filename)
			h.respondUploadError(w, r, kind, err)
			return
		}

		if verr := validationError(&fields); verr != nil {
			h.discardUpload(ctx, kind, fields.Filename)
			metrics.RecordUpload(string(kind), "rejected", 0)
			respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, verr.Message, verr.Details)
			return
		}

		if _, err := h.store.GetCategory(ctx, fields.Category); err != nil {
			h.discardUpload(ctx, kind, fields.Filename)
			metrics.RecordUpload(string(kind), "rejected", 0)
			if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
				respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Unknown category", map[string]string{"category": fields.Category})
				return
			}
			respondStoreError(w, r, err, "get category")
			return
		}

		asset := &store.Asset{
			Kind:       kind,
			Name:       strings.TrimSpace(fields.Name),
			Filename:   fields.Filename,
			CategoryID: fields.Category,
		}
		if err := h.store.InsertAsset(ctx, asset); err != nil {
			h.discardUpload(ctx, kind, fields.Filename)
			metrics.RecordUpload(string(kind), "error", 0)
			respondStoreError(w, r, err, "insert asset")
			return
		}

		metrics.RecordUpload(string(kind), "success", saved.Size)
		event := logging.Ctx(ctx).Info().
			Str("kind", string(kind)).
			Str("id", asset.ID).
			Str("filename", asset.Filename).
			Int64("bytes", saved.Size)
		if saved.Splat != nil {
			event = event.Uint64("points", saved.Splat.PointCount)
		}
		event.Msg("Asset uploaded")

		respondJSON(w, http.StatusCreated, uploadResponse{
			Success:  true,
			ID:       asset.ID,
			URL:      kind.URL(asset.Filename),
			Filename: asset.Filename,
		})
	}
}

// readUploadForm consumes every part of the form. A second file part is
// drained and ignored. On error the returned fields still carry the
// filename of anything already written so the caller can remove it.
func (h *Handler) readUploadForm(ctx context.Context, kind store.Kind, mr *multipart.Reader) (uploadFields, media.SaveResult, error) {
	var fields uploadFields
	var saved media.SaveResult

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return fields, saved, nil
		}
		if err != nil {
			return fields, saved, fmt.Errorf("%w: %w", errBodyRead, err)
		}

		field := ParseFormField(part.FormName())
		switch field {
		case FieldName, FieldCategory:
			value, err := readTextField(part)
			if err != nil {
				_ = part.Close()
				return fields, saved, fmt.Errorf("%w: %s: %w", errBodyRead, field, err)
			}
			if field == FieldName {
				fields.Name = value
			} else {
				fields.Category = strings.TrimSpace(value)
			}

		case FieldFile:
			if fields.Filename != "" {
				_, err = io.Copy(io.Discard, part)
				break
			}
			filename := media.GenerateFilename(kind, part.FileName())
			saved, err = h.media.Save(ctx, kind, filename, bodyReader{r: part}, kind == store.KindModel)
			if err != nil {
				_ = part.Close()
				return fields, saved, fmt.Errorf("save %s: %w", kind, err)
			}
			fields.Filename = filename
			// A model shorter than one point record stores zero bytes.
			if saved.Size == 0 {
				_ = part.Close()
				return fields, saved, errEmptyFile
			}
			h.noteTruncation(ctx, kind, filename, saved)

		case FieldUnknown:
			logging.Ctx(ctx).Debug().Str("field", logging.Sanitize(part.FormName())).Msg("Ignoring unknown upload field")
			_, err = io.Copy(io.Discard, part)
		}

		_ = part.Close()
		if err != nil {
			return fields, saved, fmt.Errorf("%w: %w", errBodyRead, err)
		}
	}
}

func (h *Handler) noteTruncation(ctx context.Context, kind store.Kind, filename string, saved media.SaveResult) {
	if saved.Splat == nil || saved.Splat.DroppedBytes == 0 {
		return
	}
	metrics.RecordSplatTruncation(saved.Splat.DroppedBytes)
	logging.Ctx(ctx).Warn().
		Str("kind", string(kind)).
		Str("filename", filename).
		Uint32("dropped_bytes", saved.Splat.DroppedBytes).
		Uint64("points", saved.Splat.PointCount).
		Msg("Model upload ended mid-record; trailing bytes dropped")
}

func readTextField(part *multipart.Part) (string, error) {
	b, err := io.ReadAll(io.LimitReader(part, maxTextField+1))
	if err != nil {
		return "", err
	}
	if len(b) > maxTextField {
		return "", fmt.Errorf("field exceeds %d bytes", maxTextField)
	}
	return string(b), nil
}

// discardUpload removes a stored file whose upload failed after the write.
func (h *Handler) discardUpload(ctx context.Context, kind store.Kind, filename string) {
	if filename == "" {
		return
	}
	if err := h.media.Remove(kind, filename); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("filename", filename).Msg("Failed to remove rejected upload")
	}
}

func (h *Handler) respondUploadError(w http.ResponseWriter, r *http.Request, kind store.Kind, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		metrics.RecordUpload(string(kind), "too_large", 0)
		respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeTooLarge,
			fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit), nil)
	case errors.Is(err, errEmptyFile):
		metrics.RecordUpload(string(kind), "rejected", 0)
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Uploaded file is empty", nil)
	case errors.Is(err, context.Canceled):
		metrics.RecordUpload(string(kind), "aborted", 0)
		logging.Ctx(r.Context()).Info().Str("kind", string(kind)).Msg("Upload aborted by client")
	case errors.Is(err, errBodyRead):
		metrics.RecordUpload(string(kind), "rejected", 0)
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Malformed multipart body", nil)
	default:
		metrics.RecordUpload(string(kind), "error", 0)
		logging.Ctx(r.Context()).Error().Err(err).Str("kind", string(kind)).Msg("Failed to store upload")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to store upload", nil)
	}
}

// ListFiles handles GET /api/<kinds>: URLs of the stored files.
func (h *Handler) ListFiles(kind store.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := h.media.List(kind)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Str("kind", string(kind)).Msg("Failed to list stored files")
			respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to list files", nil)
			return
		}
		respondJSON(w, http.StatusOK, urls)
	}
}

// Details handles GET /api/<kinds>/details.
func (h *Handler) Details(kind store.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := store.Details(r.Context(), h.store, kind)
		if err != nil {
			respondStoreError(w, r, err, "asset details")
			return
		}
		respondJSON(w, http.StatusOK, details)
	}
}

// DeleteAsset handles DELETE /api/<kinds>/{id}. The record goes first; a
// file that cannot be removed afterwards is only logged.
func (h *Handler) DeleteAsset(kind store.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		asset, err := h.store.DeleteAsset(ctx, kind, id)
		if err != nil {
			respondStoreError(w, r, err, "delete asset")
			return
		}

		if err := h.media.Remove(kind, asset.Filename); err != nil {
			logging.Ctx(ctx).Warn().Err(err).
				Str("kind", string(kind)).
				Str("filename", asset.Filename).
				Msg("Asset record deleted but file removal failed")
		}

		logging.Ctx(ctx).Info().Str("kind", string(kind)).Str("id", asset.ID).Msg("Asset deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}
