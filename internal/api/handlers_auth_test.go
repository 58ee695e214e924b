// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/splatfolio/internal/config"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	before := time.Now()

	rec := env.serve(jsonRequest(t, http.MethodPost, "/api/login", map[string]string{
		"username": testAdmin,
		"password": testPassword,
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeJSON[loginResponse](t, rec)
	claims, err := env.jwt.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Username() != testAdmin {
		t.Errorf("subject = %q, want %q", claims.Username(), testAdmin)
	}
	if resp.ExpiresAt.Before(before.Add(time.Hour - time.Minute)) {
		t.Errorf("expires_at = %v, want about an hour out", resp.ExpiresAt)
	}

	// The token opens protected routes.
	req := jsonRequest(t, http.MethodPost, "/api/categories", map[string]string{"name": "Mine"})
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	if got := env.serve(req).Code; got != http.StatusCreated {
		t.Errorf("create with issued token status = %d", got)
	}
}

func TestLoginRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"wrong password", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"malformed json", `{"username":`, http.StatusBadRequest, ErrCodeBadRequest},
		{"missing password", `{"username":"admin"}`, http.StatusBadRequest, ErrCodeValidationFailed},
		{"missing username", `{"password":"x"}`, http.StatusBadRequest, ErrCodeValidationFailed},
	}

	env := newTestEnv(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			assertErrorCode(t, env.serve(req), tt.wantCode, tt.wantErr)
		})
	}
}

func TestLoginRateLimited(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, func(_ *config.Config, _ *Dependencies, mw *ChiMiddlewareConfig) {
		mw.RateLimitDisabled = false
		mw.LoginRateLimit = RateLimitConfig{Requests: 2, Window: time.Hour}
	})

	body := `{"username":"admin","password":"nope"}`
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := env.serve(req)
		codes = append(codes, rec.Code)
		if i == 2 {
			assertErrorCode(t, rec, http.StatusTooManyRequests, ErrCodeTooManyRequests)
		}
	}
	if codes[0] != http.StatusUnauthorized || codes[1] != http.StatusUnauthorized {
		t.Errorf("codes = %v, want two 401s before the limit", codes)
	}
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic YWRtaW46eA=="},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(t, http.MethodPost, "/api/categories", map[string]string{"name": "x"})
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assertErrorCode(t, env.serve(req), http.StatusUnauthorized, ErrCodeUnauthorized)
		})
	}
}
