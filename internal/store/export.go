// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-engine/pkg/types"
)

// ExportFormat selects the encoding of a history export.
type ExportFormat string

const (
	FormatYAML ExportFormat = "yaml"
	FormatJSON ExportFormat = "json"
)

// HistoryExport is the document written by Export.
type HistoryExport struct {
	UserID      string             `json:"user_id" yaml:"user_id"`
	Count       int                `json:"count" yaml:"count"`
	Generations []types.Generation `json:"generations" yaml:"generations"`
}

// Export writes userID's history to w in the given format.
func Export(ctx context.Context, s Store, userID string, format ExportFormat, w io.Writer) error {
	gens, err := s.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	doc := HistoryExport{UserID: userID, Count: len(gens), Generations: gens}

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
