// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/splatfolio/internal/auth"
	"github.com/tomtom215/splatfolio/internal/config"
	"github.com/tomtom215/splatfolio/internal/media"
	"github.com/tomtom215/splatfolio/internal/splat"
	"github.com/tomtom215/splatfolio/internal/store"
	ws "github.com/tomtom215/splatfolio/internal/websocket"
)

// maxJSONBody bounds JSON request bodies (login, categories).
const maxJSONBody = 64 << 10

// Dependencies are the collaborators a Handler serves requests with.
// Hub may be nil when the live event feed is disabled.
type Dependencies struct {
	Store         store.Store
	Media         *media.Storage
	JWT           *auth.JWTManager
	Authenticator *auth.Authenticator
	Hub           *ws.Hub
}

// Handler implements the HTTP endpoints.
type Handler struct {
	store          store.Store
	media          *media.Storage
	jwt            *auth.JWTManager
	authenticator  *auth.Authenticator
	hub            *ws.Hub
	policy         splat.Policy
	maxUploadBytes int64
	corsOrigins    []string
	upgrader       websocket.Upgrader
	startTime      time.Time
}

// NewHandler validates deps and builds a Handler.
func NewHandler(cfg *config.Config, deps Dependencies) (*Handler, error) {
	if deps.Store == nil || deps.Media == nil || deps.JWT == nil || deps.Authenticator == nil {
		return nil, errors.New("api: store, media, jwt and authenticator are required")
	}
	policy, err := splat.ParsePolicy(cfg.Storage.AlignmentPolicy)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	maxUpload := cfg.Server.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = config.DefaultMaxUploadBytes
	}

	h := &Handler{
		store:          deps.Store,
		media:          deps.Media,
		jwt:            deps.JWT,
		authenticator:  deps.Authenticator,
		hub:            deps.Hub,
		policy:         policy,
		maxUploadBytes: maxUpload,
		corsOrigins:    cfg.Security.CORSOrigins,
		startTime:      time.Now(),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
	return h, nil
}
