// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package splat

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

func sequentialBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestAlign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		size        int
		wantLen     int
		wantPoints  uint64
		wantDropped uint32
	}{
		{name: "empty", size: 0, wantLen: 0, wantPoints: 0, wantDropped: 0},
		{name: "one byte", size: 1, wantLen: 0, wantPoints: 0, wantDropped: 1},
		{name: "just under one record", size: 23, wantLen: 0, wantPoints: 0, wantDropped: 23},
		{name: "exactly one record", size: 24, wantLen: 24, wantPoints: 1, wantDropped: 0},
		{name: "fifty bytes", size: 50, wantLen: 48, wantPoints: 2, wantDropped: 2},
		{name: "ten records", size: 240, wantLen: 240, wantPoints: 10, wantDropped: 0},
		{name: "ten records plus one", size: 241, wantLen: 240, wantPoints: 10, wantDropped: 1},
		{name: "ten records plus 23", size: 263, wantLen: 240, wantPoints: 10, wantDropped: 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := sequentialBytes(tt.size)
			aligned, points, dropped := Align(in)

			if len(aligned) != tt.wantLen {
				t.Errorf("len(aligned) = %d, want %d", len(aligned), tt.wantLen)
			}
			if points != tt.wantPoints {
				t.Errorf("pointCount = %d, want %d", points, tt.wantPoints)
			}
			if dropped != tt.wantDropped {
				t.Errorf("droppedBytes = %d, want %d", dropped, tt.wantDropped)
			}
			if !bytes.Equal(aligned, in[:tt.wantLen]) {
				t.Error("aligned is not a prefix of the input")
			}
		})
	}
}

func TestAlignNil(t *testing.T) {
	t.Parallel()

	aligned, points, dropped := Align(nil)
	if len(aligned) != 0 || points != 0 || dropped != 0 {
		t.Errorf("Align(nil) = (%d bytes, %d, %d), want zeros", len(aligned), points, dropped)
	}
}

// TestAlignProperties checks the record invariants over random lengths.
func TestAlignProperties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(24, 6))
	for i := 0; i < 500; i++ {
		n := rng.IntN(4096)
		buf := make([]byte, n)
		for j := range buf {
			buf[j] = byte(rng.UintN(256))
		}

		aligned, points, dropped := Align(buf)

		if len(aligned)%RecordSize != 0 {
			t.Fatalf("len %d: aligned length %d not a multiple of %d", n, len(aligned), RecordSize)
		}
		if dropped >= RecordSize {
			t.Fatalf("len %d: dropped %d not below record size", n, dropped)
		}
		if uint64(len(aligned)) != points*RecordSize {
			t.Fatalf("len %d: pointCount %d disagrees with aligned length %d", n, points, len(aligned))
		}
		if len(aligned)+int(dropped) != n {
			t.Fatalf("len %d: aligned %d + dropped %d != input", n, len(aligned), dropped)
		}
		if n < RecordSize && (len(aligned) != 0 || points != 0 || int(dropped) != n) {
			t.Fatalf("len %d: short input should yield (empty, 0, len)", n)
		}

		again, points2, dropped2 := Align(aligned)
		if !bytes.Equal(again, aligned) || points2 != points || dropped2 != 0 {
			t.Fatalf("len %d: Align is not idempotent", n)
		}
	}
}

func TestAlignedSize(t *testing.T) {
	t.Parallel()

	tests := map[int64]int64{-5: 0, 0: 0, 23: 0, 24: 24, 50: 48, 241: 240}
	for in, want := range tests {
		if got := AlignedSize(in); got != want {
			t.Errorf("AlignedSize(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "strict", want: Strict},
		{in: "STRICT", want: Strict},
		{in: " lenient ", want: Lenient},
		{in: "pad", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if Strict.String() != "strict" || Lenient.String() != "lenient" {
		t.Errorf("unexpected policy strings %q, %q", Strict, Lenient)
	}
}
