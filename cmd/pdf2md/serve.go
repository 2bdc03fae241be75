// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2md/internal/api"
	"github.com/pdiddy/pdf2md/internal/secrets"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the converter over HTTP",
	Long: `Serve starts an HTTP API:

  GET  /health        liveness check
  POST /api/convert   multipart "file" or a raw PDF body; optional "header"

Responses are JSON ({markdown, stats, outline}) or plain Markdown when the
request sends "Accept: text/markdown". When .secrets/pdf2md-api-key exists,
/api requests must carry "Authorization: Bearer <key>".`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default 8090)")
	bindFlag("serve.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig(viper.GetViper())

	conv, closeFn, err := newConverter(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer closeFn()

	apiKey := loadedSecrets[secrets.APIKey]
	if apiKey == "" {
		logger.Warn("no API key configured, /api is unauthenticated", "secret", secrets.APIKey)
	}

	srv := api.NewServer(*conv, apiKey, cfg.Serve.MaxUploadBytes, logger)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Serve.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting pdf2md", "port", cfg.Serve.Port, "backend", conv.Extractor.Name())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
