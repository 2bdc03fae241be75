// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api serves the converter over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/pdf2md/internal/convert"
)

const defaultMaxUploadBytes = 50 << 20

// Server is the HTTP API server for pdf2md.
type Server struct {
	router    chi.Router
	conv      convert.Converter
	apiKey    string
	maxUpload int64
	log       *slog.Logger
}

// NewServer configures routes around conv. Each request works on a copy
// of conv, so per-request header overrides never leak. An empty apiKey
// leaves /api open.
func NewServer(conv convert.Converter, apiKey string, maxUpload int64, log *slog.Logger) *Server {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	if log == nil {
		log = slog.Default()
	}
	conv.History = nil
	s := &Server{
		conv:      conv,
		apiKey:    apiKey,
		maxUpload: maxUpload,
		log:       log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(AuthMiddleware(s.apiKey))
		}
		r.Post("/api/convert", s.handleConvert)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
