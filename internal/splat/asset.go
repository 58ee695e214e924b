// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package splat

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// Info describes a stored file in record terms.
type Info struct {
	FileSize    int64
	PointCount  uint64
	AlignedSize int64
	ModTime     time.Time
}

// Misaligned reports whether the file has a partial trailing record.
func (i Info) Misaligned() bool {
	return i.FileSize != i.AlignedSize
}

// DroppedBytes is the size of the partial trailing record, if any.
func (i Info) DroppedBytes() int64 {
	return i.FileSize - i.AlignedSize
}

func infoFromStat(st fs.FileInfo) Info {
	aligned := AlignedSize(st.Size())
	return Info{
		FileSize:    st.Size(),
		PointCount:  uint64(aligned / RecordSize), //nolint:gosec // aligned is never negative
		AlignedSize: aligned,
		ModTime:     st.ModTime(),
	}
}

// MisalignedError is returned under the Strict policy when a stored file is
// not a whole number of records.
type MisalignedError struct {
	Path         string
	FileSize     int64
	ExpectedSize int64
}

func (e *MisalignedError) Error() string {
	return fmt.Sprintf("splat: %s is misaligned: %d bytes, expected %d (%d trailing bytes)",
		e.Path, e.FileSize, e.ExpectedSize, e.FileSize-e.ExpectedSize)
}

// IsMisaligned reports whether err is, or wraps, a *MisalignedError.
func IsMisaligned(err error) bool {
	var me *MisalignedError
	return errors.As(err, &me)
}

// ErrNotRegular is returned when the path names a directory or device.
// It wraps fs.ErrNotExist so callers can treat it as a missing asset.
var ErrNotRegular = fmt.Errorf("splat: not a regular file: %w", fs.ErrNotExist)

// ValidateStoredAsset checks the size of the file at path without reading
// its contents. The returned Info is populated even when err is a
// *MisalignedError, so lenient callers can still use it.
func ValidateStoredAsset(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("splat: stat %s: %w", path, err)
	}
	if !st.Mode().IsRegular() {
		return Info{}, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	info := infoFromStat(st)
	return info, checkAligned(path, info)
}

func checkAligned(path string, info Info) error {
	if !info.Misaligned() {
		return nil
	}
	return &MisalignedError{Path: path, FileSize: info.FileSize, ExpectedSize: info.AlignedSize}
}

// Asset is an open stored file restricted to its whole-record view.
// Reads and seeks never reach past Info.AlignedSize.
type Asset struct {
	*io.SectionReader
	Info Info
	file *os.File
}

// Close releases the underlying file handle.
func (a *Asset) Close() error {
	return a.file.Close()
}

// Open opens path for streaming under policy. Under Strict a misaligned
// file yields a *MisalignedError and no handle is kept open.
func Open(path string, policy Policy) (*Asset, error) {
	f, err := os.Open(path) //nolint:gosec // callers resolve path inside the storage root
	if err != nil {
		return nil, fmt.Errorf("splat: open %s: %w", path, err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("splat: stat %s: %w", path, err)
	}
	if !st.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	info := infoFromStat(st)
	if policy == Strict {
		if err := checkAligned(path, info); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return &Asset{
		SectionReader: io.NewSectionReader(f, 0, info.AlignedSize),
		Info:          info,
		file:          f,
	}, nil
}
