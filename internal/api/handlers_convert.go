// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf2md/internal/mdcheck"
	"github.com/pdiddy/pdf2md/internal/syllabus"
	"github.com/pdiddy/pdf2md/internal/textract"
)

// formOverhead is allowed on top of the upload limit for multipart framing.
const formOverhead = 1 << 20

type convertResponse struct {
	Markdown string          `json:"markdown"`
	Stats    syllabus.Stats  `json:"stats"`
	Outline  mdcheck.Outline `json:"outline"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+formOverhead)

	header := s.conv.Header
	if v, ok := r.URL.Query()["header"]; ok {
		header = strings.Join(v, "")
	}

	var body io.Reader = r.Body
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		if v, ok := r.MultipartForm.Value["header"]; ok && len(v) > 0 {
			header = v[0]
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		body = file
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxUpload+1))
	if err != nil {
		jsonError(w, "failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.maxUpload {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.maxUpload), http.StatusRequestEntityTooLarge)
		return
	}
	if len(data) == 0 {
		jsonError(w, "empty upload", http.StatusBadRequest)
		return
	}

	dir, err := os.MkdirTemp("", "pdf2md-upload-*")
	if err != nil {
		jsonError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(dir)
	pdfPath := filepath.Join(dir, "upload.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		jsonError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}

	conv := s.conv
	conv.Header = header
	res, err := conv.ConvertFile(r.Context(), pdfPath)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, textract.ErrNoText) {
			status = http.StatusUnprocessableEntity
		}
		s.log.Warn("conversion failed", "error", err)
		jsonError(w, err.Error(), status)
		return
	}

	if wantsMarkdown(r) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, res.Markdown)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(convertResponse{
		Markdown: res.Markdown,
		Stats:    res.Stats,
		Outline:  res.Outline,
	})
}

func wantsMarkdown(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mt == "text/markdown" {
			return true
		}
	}
	return false
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
