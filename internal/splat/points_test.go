// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package splat

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodePoints(t *testing.T) {
	t.Parallel()

	points := []Point{
		{X: 1, Y: 2, Z: 3, R: 0.5, G: 0.25, B: 1},
		{X: -4.5, Y: 0, Z: 10, R: 0, G: 0, B: 0},
	}
	buf := EncodePoints(nil, points...)
	if len(buf) != 2*RecordSize {
		t.Fatalf("encoded %d bytes, want %d", len(buf), 2*RecordSize)
	}

	// A partial trailing record must not produce a point.
	buf = append(buf, 0xff, 0xff, 0xff)
	if diff := cmp.Diff(points, DecodePoints(buf)); diff != "" {
		t.Errorf("DecodePoints mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLittleEndian(t *testing.T) {
	t.Parallel()

	// 1.0 as float32 little-endian is 00 00 80 3f.
	rec := bytes.Repeat([]byte{0x00, 0x00, 0x80, 0x3f}, FloatsPerRecord)
	got := DecodePoints(rec)
	want := []Point{{X: 1, Y: 1, Z: 1, R: 1, G: 1, B: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodePoints mismatch (-want +got):\n%s", diff)
	}
}

func TestScanBounds(t *testing.T) {
	t.Parallel()

	buf := EncodePoints(nil,
		Point{X: 1, Y: -2, Z: 3},
		Point{X: -1, Y: 5, Z: 0},
		Point{X: 0.5, Y: 0, Z: 9},
	)
	buf = append(buf, 1, 2, 3, 4, 5)

	b, count, ok, err := ScanBounds(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("ScanBounds: %v", err)
	}
	if !ok || count != 3 {
		t.Fatalf("ScanBounds count = %d ok = %v, want 3 true", count, ok)
	}
	want := Bounds{Min: [3]float32{-1, -2, 0}, Max: [3]float32{1, 5, 9}}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}

	if _, _, ok, _ := ScanBounds(bytes.NewReader(make([]byte, 10))); ok {
		t.Error("ScanBounds on a short buffer should report ok=false")
	}
}
