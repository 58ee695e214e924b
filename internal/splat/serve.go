// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package splat

import (
	"net/http"
	"path/filepath"
)

// ContentType is the media type stored point-cloud files are served with.
const ContentType = "application/octet-stream"

// Serve streams the stored file at path to w. Nothing is written when an
// error is returned, so the caller still owns the response:
//
//   - errors.Is(err, fs.ErrNotExist): the asset is missing
//   - IsMisaligned(err): Strict policy rejected the file
//   - anything else: I/O failure
//
// The body is read lazily from the file through http.ServeContent, which
// sets Content-Length to the aligned size and honours byte ranges against
// the aligned view, so Accept-Ranges is advertised truthfully. A client
// disconnect aborts the copy and the handle is released on return.
func Serve(w http.ResponseWriter, r *http.Request, path string, policy Policy) (Info, error) {
	asset, err := Open(path, policy)
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = asset.Close() }()

	h := w.Header()
	h.Set("Content-Type", ContentType)
	h.Set("Cache-Control", "no-cache, no-transform")
	h.Set("Accept-Ranges", "bytes")

	http.ServeContent(w, r, filepath.Base(path), asset.Info.ModTime, asset)
	return asset.Info, nil
}
