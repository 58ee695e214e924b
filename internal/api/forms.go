// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// FormField enumerates the multipart fields an upload understands.
type FormField int

const (
	// FieldUnknown is any other field; its content is drained and ignored.
	FieldUnknown FormField = iota
	// FieldName is the display name of the asset.
	FieldName
	// FieldCategory is the id of the asset's category.
	FieldCategory
	// FieldFile is the uploaded file itself.
	FieldFile
)

// ParseFormField maps a multipart field name to its FormField.
func ParseFormField(name string) FormField {
	switch name {
	case "name":
		return FieldName
	case "category":
		return FieldCategory
	case "file":
		return FieldFile
	default:
		return FieldUnknown
	}
}

// String returns the multipart field name.
func (f FormField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldCategory:
		return "category"
	case FieldFile:
		return "file"
	default:
		return "unknown"
	}
}
