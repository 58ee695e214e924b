// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/stats", "200"))
	RecordAPIRequest("GET", "/api/stats", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/stats", "200"))

	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	errs := StoreOperationErrors.WithLabelValues("badger", "insert_asset")
	before := testutil.ToFloat64(errs)

	RecordStoreOperation("badger", "insert_asset", time.Millisecond, nil)
	if got := testutil.ToFloat64(errs); got != before {
		t.Errorf("successful operation counted as error: %v", got)
	}

	RecordStoreOperation("badger", "insert_asset", time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(errs); got != before+1 {
		t.Errorf("store errors = %v, want %v", got, before+1)
	}
}

func TestRecordUpload(t *testing.T) {
	uploads := UploadsTotal.WithLabelValues("model", "success")
	bytes := UploadBytesTotal.WithLabelValues("model")
	beforeUploads, beforeBytes := testutil.ToFloat64(uploads), testutil.ToFloat64(bytes)

	RecordUpload("model", "success", 240)

	if got := testutil.ToFloat64(uploads) - beforeUploads; got != 1 {
		t.Errorf("uploads delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(bytes) - beforeBytes; got != 240 {
		t.Errorf("bytes delta = %v, want 240", got)
	}
}

func TestRecordSplatTruncation(t *testing.T) {
	beforeUploads := testutil.ToFloat64(SplatTruncatedUploads)
	beforeBytes := testutil.ToFloat64(SplatDroppedBytes)

	RecordSplatTruncation(0)
	RecordSplatTruncation(7)

	if got := testutil.ToFloat64(SplatTruncatedUploads) - beforeUploads; got != 1 {
		t.Errorf("truncated uploads delta = %v, want 1 (zero drops are not counted)", got)
	}
	if got := testutil.ToFloat64(SplatDroppedBytes) - beforeBytes; got != 7 {
		t.Errorf("dropped bytes delta = %v, want 7", got)
	}
}

func TestRecordMisalignedFile(t *testing.T) {
	c := SplatMisalignedFiles.WithLabelValues("strict")
	before := testutil.ToFloat64(c)
	RecordMisalignedFile("strict")
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("misaligned delta = %v, want 1", got)
	}
}
