// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tomtom215/splatfolio/internal/api"
	"github.com/tomtom215/splatfolio/internal/auth"
	"github.com/tomtom215/splatfolio/internal/config"
	"github.com/tomtom215/splatfolio/internal/events"
	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/media"
	"github.com/tomtom215/splatfolio/internal/supervisor"
	ws "github.com/tomtom215/splatfolio/internal/websocket"
)

func main() {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("db_backend", cfg.Database.Backend).
		Str("storage_root", cfg.Storage.Root).
		Str("alignment_policy", cfg.Storage.AlignmentPolicy).
		Bool("events", cfg.Events.Enabled).
		Msg("Configuration loaded")
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS before exposing the server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires every component and blocks until ctx is canceled.
func run(ctx context.Context, cfg *config.Config) error {
	st, err := openStore(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	configuredHash, err := seedAdmin(ctx, st, &cfg.Security)
	if err != nil {
		return err
	}

	mediaStorage := media.New(cfg.Storage.Root)
	if err := mediaStorage.EnsureLayout(); err != nil {
		return fmt.Errorf("prepare storage root: %w", err)
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("create JWT manager: %w", err)
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	deps := api.Dependencies{
		Store:         st,
		Media:         mediaStorage,
		JWT:           jwtManager,
		Authenticator: auth.NewAuthenticator(st, cfg.Security.AdminUsername, configuredHash),
	}

	if cfg.Events.Enabled {
		bus := events.NewBus(cfg.Events.BufferSize, events.NewLogger())
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()

		hub := ws.NewHub()
		deps.Store = events.WithPublishing(st, bus)
		deps.Hub = hub

		tree.AddMessagingService(hub)
		tree.AddMessagingService(events.NewForwarder(bus, hub))
		logging.Info().Msg("Live event feed enabled")
	}

	handler, err := api.NewHandler(cfg, deps)
	if err != nil {
		return fmt.Errorf("create API handler: %w", err)
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(supervisor.NewHTTPService(server, server.Addr, cfg.Server.ShutdownTimeout))

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", serveErr)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}
