// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package splat

import (
	"encoding/binary"
	"io"
	"math"
)

// Point is one decoded record.
type Point struct {
	X, Y, Z float32
	R, G, B float32
}

// Bounds is the axis-aligned box enclosing a set of points.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// DecodePoints decodes every whole record in buf. A partial trailing record
// is ignored.
func DecodePoints(buf []byte) []Point {
	aligned, n, _ := Align(buf)
	points := make([]Point, 0, n)
	for off := 0; off < len(aligned); off += RecordSize {
		points = append(points, decodeRecord(aligned[off:off+RecordSize]))
	}
	return points
}

func decodeRecord(rec []byte) Point {
	f := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(rec[i*4:]))
	}
	return Point{X: f(0), Y: f(1), Z: f(2), R: f(3), G: f(4), B: f(5)}
}

// EncodePoints appends the record encoding of points to dst.
func EncodePoints(dst []byte, points ...Point) []byte {
	for _, p := range points {
		for _, v := range [FloatsPerRecord]float32{p.X, p.Y, p.Z, p.R, p.G, p.B} {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
		}
	}
	return dst
}

// ScanBounds reads records from r until EOF and returns their bounds and
// count. A partial trailing record is ignored. ok is false when r holds no
// whole record.
func ScanBounds(r io.Reader) (b Bounds, count uint64, ok bool, err error) {
	var rec [RecordSize]byte
	for {
		if _, err = io.ReadFull(r, rec[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return b, count, count > 0, nil
			}
			return b, count, count > 0, err
		}
		p := decodeRecord(rec[:])
		xyz := [3]float32{p.X, p.Y, p.Z}
		if count == 0 {
			b.Min, b.Max = xyz, xyz
		} else {
			for i, v := range xyz {
				b.Min[i] = min(b.Min[i], v)
				b.Max[i] = max(b.Max[i], v)
			}
		}
		count++
	}
}
