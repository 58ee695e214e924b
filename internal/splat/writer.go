// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package splat

import (
	"errors"
	"io"
)

// ErrWriterFinished is returned by Write after Finish has been called.
var ErrWriterFinished = errors.New("splat: write after finish")

// Result summarises an aligned write.
type Result struct {
	PointCount   uint64
	DroppedBytes uint32
	// Written is the number of bytes passed through to the destination.
	Written int64
}

// AlignedWriter streams bytes to dst in whole records. Up to RecordSize-1
// trailing bytes are held back; Finish discards them and reports the count.
// It is the streaming form of Align, so a 500 MiB upload never needs to be
// buffered in memory.
type AlignedWriter struct {
	dst      io.Writer
	pending  [RecordSize]byte
	npending int
	written  int64
	finished bool
}

// NewAlignedWriter returns an AlignedWriter writing to dst.
func NewAlignedWriter(dst io.Writer) *AlignedWriter {
	return &AlignedWriter{dst: dst}
}

// Write implements io.Writer. It reports len(p) on success even though the
// tail of p may still be pending.
func (w *AlignedWriter) Write(p []byte) (int, error) {
	if w.finished {
		return 0, ErrWriterFinished
	}
	consumed := 0

	if w.npending > 0 {
		n := copy(w.pending[w.npending:], p)
		w.npending += n
		consumed += n
		if w.npending < RecordSize {
			return consumed, nil
		}
		if err := w.flush(w.pending[:]); err != nil {
			return consumed - n, err
		}
		w.npending = 0
	}

	rest := p[consumed:]
	whole, _, _ := Align(rest)
	if len(whole) > 0 {
		if err := w.flush(whole); err != nil {
			return consumed, err
		}
		consumed += len(whole)
	}

	w.npending = copy(w.pending[:], rest[len(whole):])
	consumed += w.npending
	return consumed, nil
}

func (w *AlignedWriter) flush(b []byte) error {
	n, err := w.dst.Write(b)
	w.written += int64(n)
	if err == nil && n != len(b) {
		err = io.ErrShortWrite
	}
	return err
}

// Finish drops any partial trailing record and returns the totals.
// Further writes fail with ErrWriterFinished.
func (w *AlignedWriter) Finish() Result {
	res := Result{
		PointCount:   uint64(w.written / RecordSize), //nolint:gosec // written is never negative
		DroppedBytes: uint32(w.npending),             //nolint:gosec // npending < RecordSize
		Written:      w.written,
	}
	w.finished = true
	w.npending = 0
	return res
}
