// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes every record to w as a YAML sequence.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	records, err := s.List(ctx, exportLimit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []Record{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes every record to w as an indented JSON array.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	records, err := s.List(ctx, exportLimit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
