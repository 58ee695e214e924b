// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package main is the entry point for the Splatfolio server.

Splatfolio stores and serves the assets behind a portfolio site: photos,
videos and Gaussian-splat point clouds, grouped into categories. Point
cloud files are kept as whole 24-byte records; uploads are truncated to a
record boundary and stored files are checked again before being served.

# Application Architecture

	splatfolio (root supervisor)
	├── messaging-layer
	│   ├── WebSocket hub (live asset feed)
	│   └── Event forwarder (watermill -> hub)
	└── api-layer
	    └── HTTP server (chi)

Startup order:

 1. .env file (optional, godotenv)
 2. Configuration: koanf defaults, config.yaml, environment
 3. Logging: zerolog
 4. Metadata store: MongoDB (circuit breaker) or embedded Badger
 5. Admin account seeding
 6. Media folders under STORAGE_ROOT
 7. Event bus and websocket hub (EVENTS_ENABLED)
 8. Router and supervisor tree

# Configuration

Common environment variables:

	HTTP_PORT                 listen port (default 3000)
	STORAGE_ROOT              upload root (default "static")
	SPLAT_ALIGNMENT_POLICY    strict | lenient
	DB_BACKEND                mongo | badger
	MONGODB_URI               mongodb://localhost:27017
	JWT_SECRET                32+ characters
	ADMIN_USERNAME            optional configured admin
	ADMIN_PASSWORD_HASH       bcrypt hash (see splatctl hash-password)

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT, then the store and
event bus are closed.

# Example Usage

	export JWT_SECRET=$(openssl rand -base64 32)
	export ADMIN_USERNAME=admin
	export ADMIN_PASSWORD_HASH=$(splatctl hash-password)
	./splatfolio
*/
package main
