// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

const (
	exportYAMLFile = "parts.yaml"
	exportJSONFile = "parts.json"
)

// ExportYAML writes the indexed parts to <dir>/parts.yaml and returns the
// path. A non-empty system limits the export to that system.
func (s *Store) ExportYAML(ctx context.Context, system types.AnatomySystem) (string, error) {
	records, err := s.Records(ctx, system)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	if records == nil {
		records = []types.PartRecord{}
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, exportYAMLFile)
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the indexed parts to <dir>/parts.json and returns the
// path. A non-empty system limits the export to that system.
func (s *Store) ExportJSON(ctx context.Context, system types.AnatomySystem) (string, error) {
	records, err := s.Records(ctx, system)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	if records == nil {
		records = []types.PartRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, exportJSONFile)
	return path, os.WriteFile(path, data, 0o644)
}
