// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textract

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2md/pkg/types"
)

// fakeExecutor answers LookPath from a set and runs a canned pipe.
type fakeExecutor struct {
	onPath   map[string]bool
	output   string
	err      error
	lastName string
	lastArgs []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found")
}

func (f *fakeExecutor) RunSilent(context.Context, string, ...string) error { return nil }

func (f *fakeExecutor) RunPiped(_ context.Context, name string, args []string, _ io.Reader, stdout io.Writer) error {
	f.lastName, f.lastArgs = name, args
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

// fakeRuntime is a container.Runtime that echoes stdin through a prefix.
type fakeRuntime struct {
	images   map[string]bool
	output   string
	gotInput string
	gotArgs  []string
}

func (f *fakeRuntime) Name() string                   { return "docker" }
func (f *fakeRuntime) Available(context.Context) bool { return true }

func (f *fakeRuntime) ImageExists(_ context.Context, image string) error {
	if f.images[image] {
		return nil
	}
	return errors.New("no such image")
}

func (f *fakeRuntime) Run(_ context.Context, _ string, args []string, stdin io.Reader, stdout io.Writer) error {
	data, _ := io.ReadAll(stdin)
	f.gotInput, f.gotArgs = string(data), args
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestPdftotext(t *testing.T) {
	exec := &fakeExecutor{onPath: map[string]bool{"pdftotext": true}, output: "Title\n\nBody\n"}
	p := NewPdftotext(exec)

	text, err := p.Extract(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Title\n\nBody\n", text)
	assert.Equal(t, "pdftotext", exec.lastName)
	assert.Equal(t, []string{"-enc", "UTF-8", "doc.pdf", "-"}, exec.lastArgs)
}

func TestPdftotext_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewPdftotext(&fakeExecutor{}).Extract(ctx, "doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found on PATH")

	_, err = NewPdftotext(&fakeExecutor{onPath: map[string]bool{"pdftotext": true}, err: errors.New("exit 1")}).Extract(ctx, "doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doc.pdf")

	_, err = NewPdftotext(&fakeExecutor{onPath: map[string]bool{"pdftotext": true}, output: " \n\f"}).Extract(ctx, "doc.pdf")
	assert.ErrorIs(t, err, ErrNoText)
}

func TestContainer(t *testing.T) {
	ctx := context.Background()
	pdfPath := filepath.Join(t.TempDir(), "in.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0o644))

	rt := &fakeRuntime{images: map[string]bool{"poppler:1": true}, output: "line\n"}
	c, err := NewContainer(ctx, rt, "poppler:1")
	require.NoError(t, err)
	assert.Equal(t, "container:docker", c.Name())

	text, err := c.Extract(ctx, pdfPath)
	require.NoError(t, err)
	assert.Equal(t, "line\n", text)
	assert.Equal(t, "%PDF-1.4 fake", rt.gotInput)
	assert.Equal(t, []string{"pdftotext", "-enc", "UTF-8", "-", "-"}, rt.gotArgs)

	_, err = NewContainer(ctx, rt, "missing:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext image not available")
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	ex, err := New(ctx, types.ConversionConfig{})
	require.NoError(t, err)
	assert.Equal(t, "native", ex.Name())

	ex, err = New(ctx, types.ConversionConfig{Backend: types.BackendPdftotext, Normalize: true})
	require.NoError(t, err)
	assert.Equal(t, "pdftotext+nfc", ex.Name())

	_, err = New(ctx, types.ConversionConfig{Backend: "ocr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown extraction backend "ocr"`)
}

func TestNormalized(t *testing.T) {
	// "e" followed by a combining acute accent composes to "é".
	exec := &fakeExecutor{onPath: map[string]bool{"pdftotext": true}, output: "Re\u0301sume\u0301\n"}
	n := Normalized{Extractor: NewPdftotext(exec)}

	text, err := n.Extract(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "R\u00e9sum\u00e9\n", text)
}

func TestNative_MissingFile(t *testing.T) {
	_, err := (&Native{}).Extract(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening PDF")
}

func TestRowLines(t *testing.T) {
	rows := pdflib.Rows{
		{Position: 700, Content: pdflib.TextHorizontal{{S: "Chapter"}, {S: ""}, {S: "I"}}},
		{Position: 680, Content: pdflib.TextHorizontal{{S: "Intro"}, {S: "duction "}, {S: ""}, {S: "text."}}},
		{Position: 660, Content: pdflib.TextHorizontal{{S: ""}, {S: " "}}},
		{Position: 640, Content: pdflib.TextHorizontal{{S: "•"}, {S: ""}, {S: "item"}}},
	}
	assert.Equal(t, []string{"Chapter I", "Introduction text.", "• item"}, rowLines(rows))
}
