// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"fmt"
	"strings"
)

// Kind is the type of an uploaded asset.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindModel Kind = "model"
	KindVideo Kind = "video"
)

// Kinds lists every asset kind in display order.
var Kinds = []Kind{KindPhoto, KindModel, KindVideo}

// ParseKind accepts the singular kind ("model") or its plural folder and
// route name ("models").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "photo", "photos":
		return KindPhoto, nil
	case "model", "models":
		return KindModel, nil
	case "video", "videos":
		return KindVideo, nil
	default:
		return "", fmt.Errorf("unknown asset kind %q", s)
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPhoto, KindModel, KindVideo:
		return true
	default:
		return false
	}
}

// Collection is the document collection holding metadata for k. The same
// plural name is used for the storage folder and the API route segment.
func (k Kind) Collection() string {
	return string(k) + "s"
}

// Folder is the directory under the storage root holding files of kind k.
func (k Kind) Folder() string {
	return k.Collection()
}

// URL is the public path a stored file of kind k is served from.
func (k Kind) URL(filename string) string {
	return "/static/" + k.Folder() + "/" + filename
}
