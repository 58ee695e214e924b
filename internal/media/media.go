// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package media stores uploaded files on the local filesystem.
//
// Files live under a single root with one folder per asset kind:
//
//	<root>/photos/<uuid>.jpg
//	<root>/models/<uuid>.splat
//	<root>/videos/<uuid>.mp4
//
// Uploads are written to a temporary file in the destination folder and
// renamed into place, so readers never observe a partially written asset.
// Models pass through splat.AlignedWriter on the way to disk and are
// therefore always a whole number of point records.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/splatfolio/internal/splat"
	"github.com/tomtom215/splatfolio/internal/store"
)

// ErrInvalidFilename is returned for names that would escape the kind folder.
var ErrInvalidFilename = errors.New("media: invalid filename")

// maxExtLen bounds the extension copied from a client supplied name.
const maxExtLen = 10

const (
	dirPerm  = 0o750
	filePerm = 0o640
)

// Storage is a filesystem asset store rooted at a directory.
type Storage struct {
	root string
}

// New returns a Storage rooted at root. Call EnsureLayout before use.
func New(root string) *Storage {
	return &Storage{root: filepath.Clean(root)}
}

// Root is the storage root directory.
func (s *Storage) Root() string {
	return s.root
}

// EnsureLayout creates the root and every kind folder.
func (s *Storage) EnsureLayout() error {
	for _, kind := range store.Kinds {
		dir := filepath.Join(s.root, kind.Folder())
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// GenerateFilename returns a fresh "<uuid><ext>" name. The extension is
// taken from clientName when it is short and alphanumeric; models without
// one default to ".splat".
func GenerateFilename(kind store.Kind, clientName string) string {
	ext := sanitizeExt(filepath.Ext(clientName))
	if ext == "" && kind == store.KindModel {
		ext = ".splat"
	}
	return uuid.New().String() + ext
}

func sanitizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" || len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return "." + ext
}

// Path resolves filename inside the folder for kind. Names containing a
// separator, a parent reference or a leading dot are rejected.
func (s *Storage) Path(kind store.Kind, filename string) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidFilename, kind)
	}
	if filename == "" ||
		strings.HasPrefix(filename, ".") ||
		strings.ContainsAny(filename, `/\`) ||
		strings.ContainsRune(filename, 0) ||
		filename != filepath.Base(filename) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return filepath.Join(s.root, kind.Folder(), filename), nil
}

// SaveResult describes a stored upload.
type SaveResult struct {
	Path string
	// Size is the number of bytes on disk.
	Size int64
	// Received is the number of bytes read from the upload.
	Received int64
	// Splat is set for aligned saves.
	Splat *splat.Result
}

// Save streams r into filename under the folder for kind. With align set
// the data passes through a splat.AlignedWriter and any trailing partial
// record is dropped. On error nothing is left behind.
func (s *Storage) Save(ctx context.Context, kind store.Kind, filename string, r io.Reader, align bool) (res SaveResult, err error) {
	dest, err := s.Path(kind, filename)
	if err != nil {
		return SaveResult{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return SaveResult{}, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	var w io.Writer = tmp
	var aligned *splat.AlignedWriter
	if align {
		aligned = splat.NewAlignedWriter(tmp)
		w = aligned
	}

	received, err := io.Copy(w, contextReader{ctx: ctx, r: r})
	if err != nil {
		return SaveResult{}, fmt.Errorf("write %s: %w", filename, err)
	}

	res = SaveResult{Path: dest, Received: received, Size: received}
	if aligned != nil {
		result := aligned.Finish()
		res.Splat = &result
		res.Size = result.Written
	}

	if err = tmp.Sync(); err != nil {
		return SaveResult{}, fmt.Errorf("sync %s: %w", filename, err)
	}
	if err = tmp.Close(); err != nil {
		return SaveResult{}, fmt.Errorf("close %s: %w", filename, err)
	}
	if err = os.Chmod(tmp.Name(), filePerm); err != nil {
		return SaveResult{}, fmt.Errorf("chmod %s: %w", filename, err)
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return SaveResult{}, fmt.Errorf("rename %s: %w", filename, err)
	}
	return res, nil
}

// Remove deletes a stored file. Removing a missing file is not an error.
func (s *Storage) Remove(kind store.Kind, filename string) error {
	path, err := s.Path(kind, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", filename, err)
	}
	return nil
}

// List returns the public URL of every file stored for kind, sorted by
// name. Temporary upload files and other dotfiles are skipped.
func (s *Storage) List(kind store.Kind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	entries, err := os.ReadDir(filepath.Join(s.root, kind.Folder()))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Folder(), err)
	}

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		urls = append(urls, kind.URL(e.Name()))
	}
	sort.Strings(urls)
	return urls, nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
