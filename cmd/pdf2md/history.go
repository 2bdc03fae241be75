// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2md/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the conversion history",
	Long: `History reads the SQLite database in which convert records every
source it writes: output path, text hash, backend, status and counts.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), records, jsonOutput)
}

func formatHistory(w io.Writer, records []history.Record, jsonOutput bool) error {
	if jsonOutput {
		if records == nil {
			records = []history.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-10s  %8s  %8s  %s\n",
		"Converted", "Status", "Backend", "Sections", "Elements", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Fprintf(w, "%-20s  %-9s  %-10s  %8d  %8d  %s\n",
			r.ConvertedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status, r.Backend, r.Sections, r.Elements, r.Source)
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "yaml":
			return store.ExportYAML(cmd.Context(), cmd.OutOrStdout())
		case "json":
			return store.ExportJSON(cmd.Context(), cmd.OutOrStdout())
		}
		return fmt.Errorf("unknown export format %q (want yaml or json)", format)
	},
}

func openHistory() (*history.Store, error) {
	cfg := loadConfig(viper.GetViper())
	if cfg.History.DBPath == "" {
		return nil, fmt.Errorf("history is disabled (history.db is empty)")
	}
	return history.NewStore(cfg.History.DBPath)
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum number of records")
	historyListCmd.Flags().Bool("json", false, "output as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
