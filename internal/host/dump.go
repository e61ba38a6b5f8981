// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package host

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

const snapshotFile = "snapshot.json"

// DumpScene opens blendFile in the editor and returns a snapshot of its
// collections, objects, meshes and materials. Editor output goes to out.
func DumpScene(ctx context.Context, rt Runtime, blendFile string, out io.Writer) (types.SceneSnapshot, error) {
	dir, err := os.MkdirTemp("", "anatomy-assets-dump-")
	if err != nil {
		return types.SceneSnapshot{}, fmt.Errorf("creating dump directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, snapshotFile)
	if err := rt.RunScript(ctx, blendFile, ScriptDumpScene, []string{path}, out); err != nil {
		return types.SceneSnapshot{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.SceneSnapshot{}, fmt.Errorf("reading scene dump: %w", err)
	}

	var snap types.SceneSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return types.SceneSnapshot{}, fmt.Errorf("parsing scene dump: %w", err)
	}
	if snap.Source == "" {
		snap.Source = blendFile
	}
	return snap, nil
}

// SaveSnapshot writes snap as indented JSON so later runs can skip the editor.
func SaveSnapshot(path string, snap types.SceneSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
