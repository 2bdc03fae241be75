// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2md/internal/syllabus"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [pdf or url]",
	Short: "Print the non-blank text lines the parser sees",
	Long: `Tokens extracts the text layer of one PDF and prints its non-blank
lines, one per line, exactly as the parser receives them. Use --stats to
print the parse accounting instead (tokens consumed, page numbers and
headers dropped, sections and elements produced).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().Bool("stats", false, "print parse statistics as JSON instead of tokens")
	tokensCmd.Flags().BoolP("number", "n", false, "prefix each token with its index")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig(viper.GetViper())

	loc := defaultInput
	if len(args) == 1 {
		loc = args[0]
	}

	conv, closeFn, err := newConverter(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer closeFn()

	text, err := conv.ExtractText(ctx, loc)
	if err != nil {
		return err
	}
	doc := syllabus.New(text, cfg.Convert.Header)
	w := cmd.OutOrStdout()

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		_, st := doc.Parse()
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	number, _ := cmd.Flags().GetBool("number")
	for i, tok := range doc.Tokens() {
		if number {
			fmt.Fprintf(w, "%5d  %s\n", i, tok)
			continue
		}
		fmt.Fprintln(w, tok)
	}
	return nil
}
