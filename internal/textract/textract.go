// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textract produces the plain-text layer of a PDF: one line of text
// per physical line, pages in order. Backends are the pure-Go reader, a local
// pdftotext binary, and pdftotext inside a container.
package textract

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/pdf2md/internal/container"
	"github.com/pdiddy/pdf2md/pkg/types"
)

// ErrNoText is returned when a PDF yields no text, usually because it is
// scanned or image-only.
var ErrNoText = errors.New("no extractable text")

// Extractor returns the plain text of the PDF at pdfPath.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, pdfPath string) (string, error)
}

// New builds the extractor selected by cfg.Backend. The container backend
// detects docker or podman and checks that the image is present.
func New(ctx context.Context, cfg types.ConversionConfig) (Extractor, error) {
	var ex Extractor
	switch cfg.Backend {
	case types.BackendNative, "":
		ex = &Native{}
	case types.BackendPdftotext:
		ex = NewPdftotext(container.OSExecutor{})
	case types.BackendContainer:
		rt, err := container.Detect(ctx)
		if err != nil {
			return nil, err
		}
		image := cfg.ContainerImage
		if image == "" {
			image = types.DefaultContainerImage
		}
		c, err := NewContainer(ctx, rt, image)
		if err != nil {
			return nil, err
		}
		ex = c
	default:
		return nil, fmt.Errorf("unknown extraction backend %q (want native, pdftotext, or container)", cfg.Backend)
	}
	if cfg.Normalize {
		ex = Normalized{Extractor: ex}
	}
	return ex, nil
}

// Normalized applies Unicode NFC to another extractor's output.
type Normalized struct {
	Extractor
}

func (n Normalized) Name() string { return n.Extractor.Name() + "+nfc" }

func (n Normalized) Extract(ctx context.Context, pdfPath string) (string, error) {
	text, err := n.Extractor.Extract(ctx, pdfPath)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(text), nil
}
