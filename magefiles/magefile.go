//go:build mage

// Package main contains Mage build targets for pdf2md developer tooling.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the Convert target expects.
var projectDirs = []string{
	pdfDir,
	markdownDir,
	".pdf2md",
}

// Init creates the working directories for batch conversion.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "pdf2md"
	cmdPkg  = "./cmd/pdf2md"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Stats prints project metrics: Go production/test LOC and the word count of
// converted Markdown.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	mdWords, err := countDocWords(markdownDir)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (converted Markdown):      %d\n", mdWords)
	return nil
}

// countGoLines counts non-blank lines in Go files under root, skipping
// directories that the go tool ignores. testOnly selects _test.go files,
// otherwise only production files are counted.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (name[0] == '_' || name[0] == '.') {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		n, err := scanFile(path, func(line string) int {
			if strings.TrimSpace(line) == "" {
				return 0
			}
			return 1
		})
		total += n
		return err
	})
	return total, err
}

// countDocWords counts whitespace-separated words in .md and .yaml files
// under root. A missing root counts as zero.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".md", ".yaml", ".yml":
		default:
			return nil
		}
		n, err := scanFile(path, func(line string) int { return len(strings.Fields(line)) })
		total += n
		return err
	})
	return total, err
}

// scanFile sums count over every line of path.
func scanFile(path string, count func(string) int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	total := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		total += count(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return total, fmt.Errorf("reading %s: %w", path, err)
	}
	return total, nil
}
