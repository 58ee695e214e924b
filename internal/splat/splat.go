// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package splat implements the point-record layout used by stored 3D model
// files. A file is a flat, header-less array of records; each record is six
// little-endian float32 values (x, y, z, r, g, b), so a well-formed file is
// always a whole multiple of RecordSize bytes.
//
// Uploads are truncated to whole records on the way in (Align, AlignedWriter).
// Stored files are checked again on the way out (ValidateStoredAsset, Open,
// Serve) according to a Policy.
package splat

import (
	"fmt"
	"strings"
)

const (
	// FloatsPerRecord is the number of float32 values in one point record.
	FloatsPerRecord = 6

	// RecordSize is the byte size of one point record.
	RecordSize = FloatsPerRecord * 4
)

// Align truncates buf to a whole number of records. The returned slice
// shares buf's backing array. droppedBytes is always below RecordSize.
func Align(buf []byte) (aligned []byte, pointCount uint64, droppedBytes uint32) {
	pointCount = uint64(len(buf) / RecordSize)
	alignedLen := int(pointCount) * RecordSize
	return buf[:alignedLen], pointCount, uint32(len(buf) - alignedLen) //nolint:gosec // remainder < RecordSize
}

// AlignedSize returns the largest multiple of RecordSize not above size.
func AlignedSize(size int64) int64 {
	if size <= 0 {
		return 0
	}
	return size - size%RecordSize
}

// Policy decides what happens when a stored file is not a whole number of records.
type Policy int

const (
	// Strict refuses to serve a misaligned file.
	Strict Policy = iota
	// Lenient serves the whole-record prefix of a misaligned file.
	Lenient
)

// String returns the config spelling of the policy.
func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "strict" or "lenient" (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("unknown alignment policy %q", s)
	}
}
