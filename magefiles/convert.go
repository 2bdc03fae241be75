//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	pdfDir      = "pdfs"
	markdownDir = "markdown"
)

// Convert builds the CLI and converts every pdfs/*.pdf into markdown/ with
// frontmatter. Unchanged sources are skipped through the history database.
func Convert() error {
	mg.Deps(Init, Build)

	pdfs, err := filepath.Glob(filepath.Join(pdfDir, "*.pdf"))
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		fmt.Printf("No PDFs in %s/.\n", pdfDir)
		return nil
	}

	args := append([]string{"convert", "--out-dir", markdownDir, "--frontmatter"}, pdfs...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
