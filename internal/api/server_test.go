// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2md/internal/convert"
	"github.com/pdiddy/pdf2md/internal/textract"
)

var syllabusText = strings.Join([]string{
	"My Title", "Subtitle line", "An italic note",
	"Contents", "Intro", "one", "1",
	"Chapter I", "HDR", "Ch1 Header", "Ch1 Sub", "Hello world.",
	"Chapter II", "Ch2 Header", "Ch2 Sub", "• Item one.",
}, "\n")

// fileExtractor treats the uploaded bytes as the extracted text.
type fileExtractor struct{}

func (fileExtractor) Name() string { return "file" }

func (fileExtractor) Extract(_ context.Context, pdfPath string) (string, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", textract.ErrNoText
	}
	return string(data), nil
}

func newTestServer(apiKey string, maxUpload int64) *Server {
	conv := convert.Converter{Extractor: fileExtractor{}}
	return NewServer(conv, apiKey, maxUpload, nil)
}

func multipartBody(t *testing.T, content, header string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "en.subject.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	if header != "" {
		require.NoError(t, mw.WriteField("header", header))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	srv := newTestServer("secret", 0)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestConvert_Multipart(t *testing.T) {
	srv := newTestServer("", 0)
	body, ct := multipartBody(t, syllabusText, "HDR")

	req := httptest.NewRequest(http.MethodPost, "/api/convert", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got convertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.True(t, strings.HasPrefix(got.Markdown, "# My Title\n"))
	assert.NotContains(t, got.Markdown, "HDR")
	assert.Equal(t, 1, got.Stats.DroppedHeaders)
	assert.Equal(t, 4, got.Stats.Sections)
	assert.Equal(t, 2, got.Outline.Chapters())
	assert.Equal(t, "My Title", got.Outline.Title())
}

func TestConvert_RawBodyMarkdown(t *testing.T) {
	srv := newTestServer("", 0)

	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(syllabusText))
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Accept", "text/markdown")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	// No header configured: the running header line stays in the body.
	assert.Contains(t, rec.Body.String(), "## HDR\n")
}

func TestConvert_HeaderQuery(t *testing.T) {
	srv := newTestServer("", 0)

	req := httptest.NewRequest(http.MethodPost, "/api/convert?header=HDR", strings.NewReader(syllabusText))
	req.Header.Set("Accept", "text/markdown")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "HDR")
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		maxUpload  int64
		wantStatus int
	}{
		{"empty body", "", 0, http.StatusBadRequest},
		{"no text", "   \n", 0, http.StatusUnprocessableEntity},
		{"too large", syllabusText, 10, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer("", tt.maxUpload)
			req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestConvert_MultipartMissingFile(t *testing.T) {
	srv := newTestServer("", 0)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("header", "HDR"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file is required")
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		auth       string
		wantStatus int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret", http.StatusUnauthorized},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer("secret", 0)
			req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(syllabusText))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestWantsMarkdown(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"application/json", false},
		{"text/markdown", true},
		{"application/json, text/markdown;q=0.9", true},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/convert", nil)
			req.Header.Set("Accept", tt.accept)
			assert.Equal(t, tt.want, wantsMarkdown(req))
		})
	}
}
