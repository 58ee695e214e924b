// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package middleware provides HTTP middleware for the API router.

Key Components:

  - RequestID: X-Request-ID propagation into the logging context
  - AccessLog: one structured log line per request, slow requests at warn
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for JSON responses; responses marked no-transform
    (point cloud streams) pass through untouched

The middleware here uses the http.HandlerFunc form; the api package adapts
it for chi with a one-line wrapper.
*/
package middleware
