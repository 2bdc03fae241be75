// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf2md CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2md/internal/logging"
	"github.com/pdiddy/pdf2md/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pdf2md CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf2md",
	Short: "Convert syllabus-style PDFs to Markdown",
	Long: `pdf2md reads the text layer of a syllabus-style PDF (a three-line title
block, a table of contents, then chapters) and renders it as Markdown.

Page numbers and a running header are stripped from chapter pages, and
chapter bodies are reassembled into sentences and bullet items.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")
		log, err := logging.New(os.Stderr, level, format)
		if err != nil {
			return err
		}
		setLogger(log)

		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdf2md.yaml or ~/.config/pdf2md/config.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, or error")
	pf.String("log-format", logging.FormatText, "log format: text or json")
	pf.String("backend", "native", "text extraction backend: native, pdftotext, or container")
	pf.String("header", "", "running header line to strip from chapter pages")
	pf.Bool("normalize", false, "apply Unicode NFC to the extracted text")
	pf.String("container-image", "", "image for the container backend (default "+defaultImage()+")")
	pf.String("history-db", "", "conversion history database (default .pdf2md/history.db)")

	bindFlag("convert.backend", pf.Lookup("backend"))
	bindFlag("convert.header", pf.Lookup("header"))
	bindFlag("convert.normalize", pf.Lookup("normalize"))
	bindFlag("convert.container_image", pf.Lookup("container-image"))
	bindFlag("history.db", pf.Lookup("history-db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf2md"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("PDF2MD")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
