// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package splat

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAlignedWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		size   int
		chunks []int // chunk sizes used to split the input
		want   Result
	}{
		{name: "empty", size: 0, chunks: nil, want: Result{}},
		{name: "short single write", size: 10, chunks: []int{10}, want: Result{DroppedBytes: 10}},
		{name: "fifty in one write", size: 50, chunks: []int{50}, want: Result{PointCount: 2, DroppedBytes: 2, Written: 48}},
		{name: "fifty byte by byte", size: 50, chunks: repeat(1, 50), want: Result{PointCount: 2, DroppedBytes: 2, Written: 48}},
		{name: "records split across writes", size: 240, chunks: []int{7, 30, 1, 100, 102}, want: Result{PointCount: 10, Written: 240}},
		{name: "241 in odd chunks", size: 241, chunks: []int{23, 23, 23, 172}, want: Result{PointCount: 10, DroppedBytes: 1, Written: 240}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := sequentialBytes(tt.size)
			var out bytes.Buffer
			w := NewAlignedWriter(&out)

			off := 0
			for _, n := range tt.chunks {
				written, err := w.Write(in[off : off+n])
				if err != nil {
					t.Fatalf("Write: %v", err)
				}
				if written != n {
					t.Fatalf("Write reported %d, want %d", written, n)
				}
				off += n
			}

			got := w.Finish()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Finish() mismatch (-want +got):\n%s", diff)
			}

			wantBytes, _, _ := Align(in)
			if !bytes.Equal(out.Bytes(), wantBytes) {
				t.Errorf("destination holds %d bytes, want the %d-byte aligned prefix", out.Len(), len(wantBytes))
			}
		})
	}
}

func TestAlignedWriterWithCopy(t *testing.T) {
	t.Parallel()

	in := sequentialBytes(10_000)
	var out bytes.Buffer
	w := NewAlignedWriter(&out)

	// LimitReader hides WriterTo so CopyBuffer really issues 17-byte writes.
	src := io.LimitReader(bytes.NewReader(in), int64(len(in)))
	if _, err := io.CopyBuffer(w, src, make([]byte, 17)); err != nil {
		t.Fatalf("CopyBuffer: %v", err)
	}
	res := w.Finish()

	if res.Written != 9_984 || res.DroppedBytes != 16 || res.PointCount != 416 {
		t.Errorf("Finish() = %+v, want 416 points, 9984 written, 16 dropped", res)
	}
	if !bytes.Equal(out.Bytes(), in[:9_984]) {
		t.Error("copied bytes differ from the input prefix")
	}
}

func TestAlignedWriterAfterFinish(t *testing.T) {
	t.Parallel()

	w := NewAlignedWriter(io.Discard)
	w.Finish()
	if _, err := w.Write([]byte{1}); !errors.Is(err, ErrWriterFinished) {
		t.Errorf("Write after Finish error = %v, want ErrWriterFinished", err)
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestAlignedWriterPropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	w := NewAlignedWriter(failingWriter{err: boom})

	if _, err := w.Write(make([]byte, 10)); err != nil {
		t.Fatalf("partial record should not reach the destination, got %v", err)
	}
	if _, err := w.Write(make([]byte, 48)); !errors.Is(err, boom) {
		t.Errorf("Write error = %v, want %v", err, boom)
	}
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}
