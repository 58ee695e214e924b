// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/splatfolio/internal/auth"
	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/metrics"
)

// loginRequest is the body of POST /api/login.
type loginRequest struct {
	Username string `json:"username" validate:"required,max=256"`
	Password string `json:"password" validate:"required,max=1024"`
}

// loginResponse carries the bearer token.
type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, maxJSONBody, &req); err != nil {
		metrics.RecordLoginAttempt("invalid")
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", nil)
		return
	}
	if verr := validationError(&req); verr != nil {
		metrics.RecordLoginAttempt("invalid")
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, verr.Message, verr.Details)
		return
	}

	ctx := r.Context()
	if err := h.authenticator.Authenticate(ctx, req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.RecordLoginAttempt("failure")
			logging.Ctx(ctx).Warn().
				Str("username", logging.Sanitize(req.Username)).
				Str("remote_addr", r.RemoteAddr).
				Msg("Login failed")
			respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid username or password", nil)
			return
		}
		metrics.RecordLoginAttempt("error")
		respondStoreError(w, r, err, "authenticate")
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(req.Username)
	if err != nil {
		metrics.RecordLoginAttempt("error")
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to sign token")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to create token", nil)
		return
	}

	metrics.RecordLoginAttempt("success")
	logging.Ctx(ctx).Info().Str("username", logging.Sanitize(req.Username)).Msg("Login succeeded")
	respondJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

// unauthorized writes the envelope for requests the auth middleware rejects.
func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Debug().Err(err).Str("path", logging.Sanitize(r.URL.Path)).Msg("Rejected unauthenticated request")
	respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required", nil)
}
