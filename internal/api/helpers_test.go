// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/splatfolio/internal/auth"
	"github.com/tomtom215/splatfolio/internal/config"
	"github.com/tomtom215/splatfolio/internal/media"
	"github.com/tomtom215/splatfolio/internal/store"
	"github.com/tomtom215/splatfolio/internal/store/badgerstore"
)

const (
	testJWTSecret = "api-test-secret-with-at-least-32-characters"
	testAdmin     = "admin"
	testPassword  = "correct horse battery"
	testOrigin    = "http://portfolio.test"
)

// testEnv is a fully wired router over an in-memory store and a temp dir.
type testEnv struct {
	cfg     *config.Config
	store   store.Store
	media   *media.Storage
	jwt     *auth.JWTManager
	handler *Handler
	router  http.Handler
}

type envOption func(cfg *config.Config, deps *Dependencies, mw *ChiMiddlewareConfig)

func withPolicy(policy string) envOption {
	return func(cfg *config.Config, _ *Dependencies, _ *ChiMiddlewareConfig) {
		cfg.Storage.AlignmentPolicy = policy
	}
}

func withMaxUpload(n int64) envOption {
	return func(cfg *config.Config, _ *Dependencies, _ *ChiMiddlewareConfig) {
		cfg.Server.MaxUploadBytes = n
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{
		Server: config.ServerConfig{MaxUploadBytes: 1 << 20},
		Storage: config.StorageConfig{
			Root:            t.TempDir(),
			AlignmentPolicy: "strict",
		},
		Security: config.SecurityConfig{
			JWTSecret:   testJWTSecret,
			TokenTTL:    time.Hour,
			CORSOrigins: []string{testOrigin},
		},
	}

	st, err := badgerstore.Open("", true)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := st.UpsertAdmin(ctx, store.Admin{Username: testAdmin, PasswordHash: string(hash)}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true

	deps := Dependencies{Store: st}
	for _, opt := range opts {
		opt(cfg, &deps, mwCfg)
	}
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins

	storage := media.New(cfg.Storage.Root)
	if err := storage.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout: %v", err)
	}
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	deps.Media = storage
	deps.JWT = jwtManager
	deps.Authenticator = auth.NewAuthenticator(st, "", "")

	h, err := NewHandler(cfg, deps)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testEnv{
		cfg:     cfg,
		store:   deps.Store,
		media:   storage,
		jwt:     jwtManager,
		handler: h,
		router:  NewRouter(h, NewChiMiddleware(mwCfg)).Setup(),
	}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	token, _, err := e.jwt.GenerateToken(testAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// authed adds a valid bearer token to req.
func (e *testEnv) authed(t *testing.T, req *http.Request) *http.Request {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+e.token(t))
	return req
}

func (e *testEnv) createCategory(t *testing.T, name string) *store.Category {
	t.Helper()
	c, err := e.store.CreateCategory(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return c
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

// formPart is one multipart field. A non-empty filename makes it a file part.
type formPart struct {
	field    string
	filename string
	content  []byte
}

func multipartRequest(t *testing.T, target string, parts ...formPart) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		var w io.Writer
		var err error
		if p.filename != "" {
			w, err = mw.CreateFormFile(p.field, p.filename)
		} else {
			w, err = mw.CreateFormField(p.field)
		}
		if err != nil {
			t.Fatalf("create part %s: %v", p.field, err)
		}
		if _, err := w.Write(p.content); err != nil {
			t.Fatalf("write part %s: %v", p.field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, status, rec.Body.String())
	}
	resp := decodeJSON[APIResponse](t, rec)
	if resp.Success || resp.Error == nil {
		t.Fatalf("body %s is not an error envelope", rec.Body.String())
	}
	if resp.Error.Code != code {
		t.Errorf("error code = %q, want %q", resp.Error.Code, code)
	}
}
