// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics holds the process-wide Prometheus collectors and small
// RecordX helpers used by the HTTP layer, the stores and the upload path.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of metadata store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed metadata store operations",
		},
		[]string{"backend", "operation"},
	)

	// Upload Metrics
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_uploads_total",
			Help: "Total number of asset uploads by kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: success, rejected, failed
	)

	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_upload_bytes_total",
			Help: "Total bytes written to storage by uploads",
		},
		[]string{"kind"},
	)

	// Point-cloud alignment metrics
	SplatTruncatedUploads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splat_truncated_uploads_total",
			Help: "Model uploads that ended with a partial point record",
		},
	)

	SplatDroppedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splat_dropped_bytes_total",
			Help: "Trailing bytes discarded from model uploads",
		},
	)

	SplatMisalignedFiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splat_misaligned_files_total",
			Help: "Stored model files found misaligned at read time",
		},
		[]string{"policy"}, // strict = rejected, lenient = served truncated
	)

	AssetServeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_serve_total",
			Help: "Stored file requests by kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: served, not_found, misaligned, error
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests passed through a circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	// Auth Metrics
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // success, invalid_credentials, error
	)

	// Live feed Metrics
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Connected websocket clients",
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_events_published_total",
			Help: "Asset events published to the event bus",
		},
		[]string{"type"},
	)

	// Cache Metrics
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "In-memory cache lookups by result (hit, miss)",
		},
		[]string{"cache", "result"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records the latency and outcome of one store call.
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordUpload records an upload outcome and the bytes it stored.
func RecordUpload(kind, outcome string, bytes int64) {
	UploadsTotal.WithLabelValues(kind, outcome).Inc()
	if bytes > 0 {
		UploadBytesTotal.WithLabelValues(kind).Add(float64(bytes))
	}
}

// RecordSplatTruncation records a model upload that lost a partial record.
func RecordSplatTruncation(droppedBytes uint32) {
	if droppedBytes == 0 {
		return
	}
	SplatTruncatedUploads.Inc()
	SplatDroppedBytes.Add(float64(droppedBytes))
}

// RecordMisalignedFile records a misaligned stored file seen under policy.
func RecordMisalignedFile(policy string) {
	SplatMisalignedFiles.WithLabelValues(policy).Inc()
}

// RecordAssetServe records the outcome of a stored file request.
func RecordAssetServe(kind, outcome string) {
	AssetServeTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordLoginAttempt records a login attempt result.
func RecordLoginAttempt(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

// RecordEventPublished records a published asset event.
func RecordEventPublished(eventType string) {
	EventsPublished.WithLabelValues(eventType).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}
