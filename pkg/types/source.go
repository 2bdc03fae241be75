// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus is the outcome of converting one source.
type ConversionStatus string

const (
	ConversionNone    ConversionStatus = "none"
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// Source is one PDF to convert.
type Source struct {
	// ID is a slug derived from the file name (e.g. "en.subject").
	ID string `json:"id" yaml:"id"`

	// Location is the local path or http(s) URL given by the user.
	Location string `json:"location" yaml:"location"`

	// PDFPath is the local file read by the extractor. For URLs it points
	// at the downloaded copy.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`
}

// Frontmatter is the YAML header written above converted Markdown.
type Frontmatter struct {
	Source      string    `yaml:"source"`
	ContentHash string    `yaml:"content_hash"`
	Backend     string    `yaml:"backend"`
	ConvertedAt time.Time `yaml:"converted_at"`
	Sections    int       `yaml:"sections"`
	Elements    int       `yaml:"elements"`
}
