// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package config provides centralized configuration management for Splatfolio.

Configuration is layered with koanf. Later layers override earlier ones:

 1. Struct defaults (defaultConfig)
 2. Optional YAML file (CONFIG_PATH, config.yaml, config.yml)
 3. Environment variables, mapped explicitly in envTransformFunc

A .env file is loaded into the process environment by cmd/server before
Load is called, so it participates as part of layer 3.

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)
  - MAX_UPLOAD_BYTES: Request body limit for uploads (default: 500 MiB)
  - ENVIRONMENT: development or production

Storage:
  - STORAGE_ROOT: Root directory for stored assets (default: static)
  - SPLAT_ALIGNMENT_POLICY: strict or lenient (default: strict)

Database:
  - DB_BACKEND: mongo or badger (default: mongo)
  - MONGODB_URI: MongoDB connection string
  - MONGODB_DATABASE: Database name (default: Portfolio)
  - MONGODB_CONNECT_TIMEOUT: Connection timeout (default: 10s)
  - BADGER_PATH: Badger data directory (default: data/badger)
  - BADGER_IN_MEMORY: Run badger without persistence (default: false)

Security:
  - JWT_SECRET: HMAC signing secret, at least 32 characters
  - TOKEN_TTL: Token lifetime (default: 24h)
  - ADMIN_USERNAME: Admin login name
  - ADMIN_PASSWORD_HASH: bcrypt hash of the admin password
  - ADMIN_PASSWORD: Plaintext admin password, hashed at startup
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - LOGIN_RATE_LIMIT, LOGIN_RATE_WINDOW: Login attempts per window per IP

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Events:
  - EVENTS_ENABLED: Publish asset events to websocket clients (default: true)
  - EVENTS_BUFFER_SIZE: Pub/sub output channel buffer (default: 64)
*/
package config
