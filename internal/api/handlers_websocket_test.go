// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/splatfolio/internal/config"
	ws "github.com/tomtom215/splatfolio/internal/websocket"
)

func withHub(t *testing.T) (envOption, *ws.Hub) {
	t.Helper()

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return func(_ *config.Config, deps *Dependencies, _ *ChiMiddlewareConfig) {
		deps.Hub = hub
	}, hub
}

func TestEventsWebSocket(t *testing.T) {
	t.Parallel()

	opt, hub := withHub(t)
	env := newTestEnv(t, opt)
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	header := http.Header{"Origin": []string{testOrigin}}
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/events", header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want 1", hub.GetClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.BroadcastJSON("asset.created", map[string]string{"id": "abc"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ws.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "asset.created" {
		t.Errorf("message type = %q", msg.Type)
	}
}

func TestEventsWebSocketRejectsForeignOrigin(t *testing.T) {
	t.Parallel()

	opt, _ := withHub(t)
	env := newTestEnv(t, opt)
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	header := http.Header{"Origin": []string{"http://evil.test"}}
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/events", header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err == nil {
		_ = conn.Close()
		t.Fatal("dial with a foreign origin succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}
}

func TestEventsDisabled(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/events", nil))
	assertErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)
}

func TestCheckWebSocketOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"exact match", []string{"https://a.test"}, "https://a.test", true},
		{"wildcard", []string{"*"}, "https://b.test", true},
		{"no match", []string{"https://a.test"}, "https://b.test", false},
		{"missing origin", []string{"*"}, "", false},
	}
	for _, tt := range tests {
		h := &Handler{corsOrigins: tt.allowed}
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := h.checkWebSocketOrigin(req); got != tt.want {
			t.Errorf("%s: checkWebSocketOrigin = %v, want %v", tt.name, got, tt.want)
		}
	}
}
