// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/pdf2md/internal/container"
)

const binPdftotext = "pdftotext"

// pdftotextArgs reads from the file named by in and writes UTF-8 to stdout.
func pdftotextArgs(in string) []string {
	return []string{"-enc", "UTF-8", in, "-"}
}

// Pdftotext runs poppler's pdftotext from PATH.
type Pdftotext struct {
	exec container.Executor
}

// NewPdftotext returns an extractor that shells out through exec.
func NewPdftotext(exec container.Executor) *Pdftotext {
	return &Pdftotext{exec: exec}
}

func (*Pdftotext) Name() string { return binPdftotext }

func (p *Pdftotext) Extract(ctx context.Context, pdfPath string) (string, error) {
	if _, err := p.exec.LookPath(binPdftotext); err != nil {
		return "", fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}
	var out bytes.Buffer
	if err := p.exec.RunPiped(ctx, binPdftotext, pdftotextArgs(pdfPath), nil, &out); err != nil {
		return "", fmt.Errorf("running %s on %s: %w", binPdftotext, pdfPath, err)
	}
	return checkText(pdfPath, out.String())
}

// Container runs pdftotext inside a container image, piping the PDF on
// stdin.
type Container struct {
	runtime container.Runtime
	image   string
}

// NewContainer verifies that image exists in rt before returning.
func NewContainer(ctx context.Context, rt container.Runtime, image string) (*Container, error) {
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &Container{runtime: rt, image: image}, nil
}

func (c *Container) Name() string { return "container:" + c.runtime.Name() }

func (c *Container) Extract(ctx context.Context, pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	args := append([]string{binPdftotext}, pdftotextArgs("-")...)
	if err := c.runtime.Run(ctx, c.image, args, f, &out); err != nil {
		return "", fmt.Errorf("extracting %s: %w", pdfPath, err)
	}
	return checkText(pdfPath, out.String())
}

func checkText(pdfPath, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", pdfPath, ErrNoText)
	}
	return text, nil
}
