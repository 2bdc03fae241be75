// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2md/internal/convert"
	"github.com/pdiddy/pdf2md/internal/history"
	"github.com/pdiddy/pdf2md/internal/textract"
	"github.com/pdiddy/pdf2md/pkg/types"
)

// defaultInput is converted when no sources are given.
const defaultInput = "en.subject.pdf"

var convertCmd = &cobra.Command{
	Use:   "convert [pdfs or urls...]",
	Short: "Convert syllabus PDFs to Markdown",
	Long: `Convert extracts the text layer of each PDF, reads its title block,
table of contents and chapters, and renders Markdown.

Without --out-dir the Markdown is written to stdout. With --out-dir each
source becomes <out-dir>/<name>.md; existing files are skipped unless
--force is set, and sources whose text is unchanged since the last
recorded conversion are skipped as well.

Sources may be local paths or http(s) URLs. With no arguments,
en.subject.pdf in the working directory is converted.`,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringP("out-dir", "o", "", "write <name>.md files here instead of stdout")
	f.Bool("force", false, "reconvert even when output exists or text is unchanged")
	f.Bool("frontmatter", true, "prepend YAML frontmatter to written files")

	bindFlag("convert.out_dir", f.Lookup("out-dir"))
	bindFlag("convert.force", f.Lookup("force"))
	bindFlag("convert.frontmatter", f.Lookup("frontmatter"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig(viper.GetViper())

	if len(args) == 0 {
		args = []string{defaultInput}
	}

	conv, closeFn, err := newConverter(ctx, cfg, cfg.Convert.OutDir != "")
	if err != nil {
		return err
	}
	defer closeFn()

	if cfg.Convert.OutDir == "" {
		return convertToStdout(ctx, conv, args, cmd.OutOrStdout())
	}

	result := conv.ConvertBatch(ctx, args, cfg.Convert.OutDir, cfg.Convert.Force, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d source(s) failed conversion", result.Failed)
	}
	return nil
}

func convertToStdout(ctx context.Context, conv *convert.Converter, locs []string, w io.Writer) error {
	var errs []error
	for _, loc := range locs {
		res, err := conv.ConvertFile(ctx, loc)
		if err != nil {
			logger.Error("conversion failed", "source", loc, "error", err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(w, res.Markdown)
	}
	return errors.Join(errs...)
}

// newConverter builds a converter from cfg. The history store is opened
// only when withHistory is set and a database path is configured.
func newConverter(ctx context.Context, cfg types.Config, withHistory bool) (*convert.Converter, func(), error) {
	ex, err := textract.New(ctx, cfg.Convert)
	if err != nil {
		return nil, nil, err
	}

	conv := &convert.Converter{
		Extractor:   ex,
		Header:      cfg.Convert.Header,
		Frontmatter: cfg.Convert.Frontmatter,
		HTTP:        cfg.Convert.HTTPConfig,
		Log:         logger,
	}
	closeFn := func() {}

	if withHistory && cfg.History.DBPath != "" {
		store, err := history.NewStore(cfg.History.DBPath)
		if err != nil {
			return nil, nil, err
		}
		conv.History = store
		closeFn = func() { store.Close() }
	}

	logger.Debug("converter ready", "backend", ex.Name(), "header", cfg.Convert.Header)
	return conv, closeFn, nil
}
