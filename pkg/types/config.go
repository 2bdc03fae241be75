package types

import "time"

// HTTPConfig holds settings for fetching remote PDFs.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdf2md/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExtractionBackend identifies the tool that produces the plain-text layer.
type ExtractionBackend string

const (
	BackendNative    ExtractionBackend = "native"
	BackendPdftotext ExtractionBackend = "pdftotext"
	BackendContainer ExtractionBackend = "container"
)

// DefaultContainerImage ships poppler's pdftotext.
const DefaultContainerImage = "minidocks/poppler:latest"

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the text extractor: native, pdftotext, or container.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// Header is the running header stripped from chapter pages. Empty keeps
	// every line.
	Header string `json:"header" yaml:"header"`

	// OutDir is where .md files are written. Empty writes to stdout.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Frontmatter prepends YAML frontmatter to files written to OutDir.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter"`

	// Force reconverts even when the output exists or history matches.
	Force bool `json:"force" yaml:"force"`

	// Normalize applies Unicode NFC to the extracted text.
	Normalize bool `json:"normalize" yaml:"normalize"`

	// ContainerImage is the image used by the container backend.
	ContainerImage string `json:"container_image" yaml:"container_image"`
}

// HistoryConfig locates the conversion history database.
type HistoryConfig struct {
	// DBPath is the SQLite file. Empty disables history.
	DBPath string `json:"db" yaml:"db"`
}

// ServeConfig holds settings for the HTTP API.
type ServeConfig struct {
	Port           string `json:"port" yaml:"port"`
	MaxUploadBytes int64  `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// Config groups every stage's settings.
type Config struct {
	Convert ConversionConfig `json:"convert" yaml:"convert"`
	History HistoryConfig    `json:"history" yaml:"history"`
	Serve   ServeConfig      `json:"serve" yaml:"serve"`
}
