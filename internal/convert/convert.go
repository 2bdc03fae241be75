// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the whole pipeline for one or more PDFs: resolve the
// source, extract its text layer, parse it into syllabus sections, render
// Markdown and write it out with optional frontmatter and history.
package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2md/internal/history"
	"github.com/pdiddy/pdf2md/internal/httputil"
	"github.com/pdiddy/pdf2md/internal/mdcheck"
	"github.com/pdiddy/pdf2md/internal/syllabus"
	"github.com/pdiddy/pdf2md/internal/textract"
	"github.com/pdiddy/pdf2md/pkg/types"
)

// ErrUnsupportedSource is returned for locations that are neither a .pdf
// file nor an http(s) URL.
var ErrUnsupportedSource = errors.New("unsupported source")

// Converter holds everything needed to turn a PDF into Markdown.
type Converter struct {
	Extractor textract.Extractor

	// Header is the running header stripped from chapter pages.
	Header string

	// Frontmatter prepends YAML frontmatter to written files.
	Frontmatter bool

	// History, when set, records every conversion and lets ConvertTo skip
	// sources whose text has not changed.
	History *history.Store

	HTTP types.HTTPConfig
	Log  *slog.Logger
}

// Result is the outcome of converting one source in memory.
type Result struct {
	Source      types.Source       `json:"source"`
	Markdown    string             `json:"markdown"`
	Sections    []syllabus.Section `json:"sections"`
	Stats       syllabus.Stats     `json:"stats"`
	Outline     mdcheck.Outline    `json:"outline"`
	ContentHash string             `json:"content_hash"`
	Backend     string             `json:"backend"`
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of sources processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any source failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (c *Converter) log() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

// ConvertFile converts the PDF at loc, a local path or an http(s) URL,
// without writing anything.
func (c *Converter) ConvertFile(ctx context.Context, loc string) (Result, error) {
	src, text, err := c.extract(ctx, loc)
	if err != nil {
		return Result{}, err
	}

	res := c.ConvertText(text)
	res.Source = src
	c.log().Debug("parsed syllabus",
		"source", loc,
		"tokens", res.Stats.Tokens,
		"dropped_pages", res.Stats.DroppedPages,
		"dropped_headers", res.Stats.DroppedHeaders,
		"sections", res.Stats.Sections,
		"elements", res.Stats.Elements,
	)
	return res, nil
}

// ExtractText returns the raw text layer of loc without parsing it.
func (c *Converter) ExtractText(ctx context.Context, loc string) (string, error) {
	_, text, err := c.extract(ctx, loc)
	return text, err
}

func (c *Converter) extract(ctx context.Context, loc string) (types.Source, string, error) {
	src, cleanup, err := c.resolve(ctx, loc)
	if err != nil {
		return src, "", err
	}
	defer cleanup()

	text, err := c.Extractor.Extract(ctx, src.PDFPath)
	if err != nil {
		return src, "", fmt.Errorf("extracting %s: %w", loc, err)
	}
	return src, text, nil
}

// ConvertText parses an already extracted text layer.
func (c *Converter) ConvertText(text string) Result {
	sections, stats := syllabus.New(text, c.Header).Parse()
	md := syllabus.Render(sections)
	sum := sha256.Sum256([]byte(text))
	res := Result{
		Markdown:    md,
		Sections:    sections,
		Stats:       stats,
		Outline:     mdcheck.Parse([]byte(md)),
		ContentHash: "sha256:" + hex.EncodeToString(sum[:]),
	}
	if c.Extractor != nil {
		res.Backend = c.Extractor.Name()
	}
	return res
}

// ConvertTo converts loc and writes <outDir>/<id>.md, printing one status
// line to w. Existing output is kept unless force is set. With a history
// store, a source whose text hash matches a previous successful
// conversion is skipped as well.
func (c *Converter) ConvertTo(ctx context.Context, loc, outDir string, force bool, w io.Writer) types.ConversionStatus {
	id := SourceID(loc)
	mdPath := filepath.Join(outDir, id+".md")

	if !force && fileExists(mdPath) {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", id)
		return types.ConversionSkipped
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return types.ConversionFailed
	}

	res, err := c.ConvertFile(ctx, loc)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		c.record(ctx, history.Record{Source: loc, Output: mdPath, Status: string(types.ConversionFailed)})
		return types.ConversionFailed
	}

	if !force && c.unchanged(ctx, loc, res.ContentHash) {
		fmt.Fprintf(w, "skipped: %s (unchanged)\n", id)
		return types.ConversionSkipped
	}

	content := res.Markdown
	if c.Frontmatter {
		fm, err := frontmatter(loc, res, time.Now())
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
			return types.ConversionFailed
		}
		content = fm + content
	}

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return types.ConversionFailed
	}

	c.record(ctx, history.Record{
		Source:      loc,
		Output:      mdPath,
		ContentHash: res.ContentHash,
		Backend:     res.Backend,
		Status:      string(types.ConversionDone),
		Sections:    res.Stats.Sections,
		Elements:    res.Stats.Elements,
	})
	fmt.Fprintf(w, "converted: %s (%d sections, %d elements)\n", id, res.Stats.Sections, res.Stats.Elements)
	return types.ConversionDone
}

// ConvertBatch runs ConvertTo over every location, printing per-source
// status and a summary to w.
func (c *Converter) ConvertBatch(ctx context.Context, locs []string, outDir string, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, loc := range locs {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", SourceID(loc), ctx.Err())
			result.Failed++
			continue
		}
		switch c.ConvertTo(ctx, loc, outDir, force, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// SourceID derives the output name from a path or URL: the base name
// without its extension.
func SourceID(loc string) string {
	base := filepath.Base(loc)
	if httputil.IsURL(loc) {
		if u, err := url.Parse(loc); err == nil {
			base = path.Base(u.Path)
		}
	}
	id := strings.TrimSuffix(base, path.Ext(base))
	if id == "" || id == "." || id == "/" {
		return "document"
	}
	return id
}

// resolve maps loc to a local PDF. For URLs the file is downloaded to a
// temporary directory that cleanup removes.
func (c *Converter) resolve(ctx context.Context, loc string) (types.Source, func(), error) {
	src := types.Source{ID: SourceID(loc), Location: loc}
	noop := func() {}

	if httputil.IsURL(loc) {
		dir, err := os.MkdirTemp("", "pdf2md-*")
		if err != nil {
			return src, noop, fmt.Errorf("creating download directory: %w", err)
		}
		cleanup := func() { os.RemoveAll(dir) }
		src.PDFPath = filepath.Join(dir, src.ID+".pdf")

		client := &http.Client{Timeout: c.HTTP.Timeout}
		c.log().Info("downloading", "url", loc)
		if err := httputil.Download(ctx, client, loc, c.HTTP.UserAgent, src.PDFPath); err != nil {
			cleanup()
			return src, noop, err
		}
		return src, cleanup, nil
	}

	if !strings.EqualFold(filepath.Ext(loc), ".pdf") {
		return src, noop, fmt.Errorf("%s: %w (want a .pdf file or http(s) URL)", loc, ErrUnsupportedSource)
	}
	if _, err := os.Stat(loc); err != nil {
		return src, noop, fmt.Errorf("opening %s: %w", loc, err)
	}
	src.PDFPath = loc
	return src, noop, nil
}

func (c *Converter) unchanged(ctx context.Context, loc, hash string) bool {
	if c.History == nil {
		return false
	}
	rec, err := c.History.Lookup(ctx, loc)
	if err != nil {
		if !errors.Is(err, history.ErrNotFound) {
			c.log().Warn("history lookup failed", "source", loc, "error", err)
		}
		return false
	}
	return rec.Status == string(types.ConversionDone) && rec.ContentHash == hash && fileExists(rec.Output)
}

func (c *Converter) record(ctx context.Context, r history.Record) {
	if c.History == nil {
		return
	}
	if err := c.History.Record(ctx, r); err != nil {
		c.log().Warn("recording history failed", "source", r.Source, "error", err)
	}
}

// frontmatter renders the YAML block written above the Markdown body.
func frontmatter(loc string, res Result, now time.Time) (string, error) {
	fm := types.Frontmatter{
		Source:      loc,
		ContentHash: res.ContentHash,
		Backend:     res.Backend,
		ConvertedAt: now.UTC().Truncate(time.Second),
		Sections:    res.Stats.Sections,
		Elements:    res.Stats.Elements,
	}
	data, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	return "---\n" + string(data) + "---\n\n", nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
