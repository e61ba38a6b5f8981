// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

const (
	previewObjects     = 3
	previewTypeNames   = 5
	previewMeshes      = 10
	previewMaterials   = 10
	previewSuggestions = 5
)

// CollectionSummary is one collection in a structure report.
type CollectionSummary struct {
	Name        string `json:"name"`
	ObjectCount int    `json:"object_count"`
}

// TypeGroup lists object names of one type in first-seen order.
type TypeGroup struct {
	Type  types.ObjectType `json:"type"`
	Names []string         `json:"names"`
}

// Suggestion lists objects that look like candidates for a per-part export.
type Suggestion struct {
	System  string   `json:"system"`
	Objects []string `json:"objects"`
}

// Report describes the structure of a scene document.
type Report struct {
	Collections []CollectionSummary `json:"collections"`
	Objects     []types.SceneObject `json:"objects"`
	Meshes      []types.MeshStats   `json:"meshes"`
	Materials   []string            `json:"materials"`

	// Fields below are console-only.
	TotalMeshes    int          `json:"-"`
	TotalMaterials int          `json:"-"`
	TypeGroups     []TypeGroup  `json:"-"`
	Suggestions    []Suggestion `json:"-"`
	collections    []types.SceneCollection
}

// suggestKeywords drives export suggestions. It differs from the
// classification table (spine, aorta, cerebr, bicep, tricep).
var suggestKeywords = []struct {
	system   string
	keywords []string
}{
	{"skeleton", []string{"skeleton", "bone", "skull", "spine", "rib", "femur"}},
	{"cardiovascular", []string{"heart", "cardiac", "aorta", "vein", "artery"}},
	{"respiratory", []string{"lung", "trachea", "bronch"}},
	{"nervous", []string{"brain", "nerve", "spinal", "cerebr"}},
	{"muscular", []string{"muscle", "bicep", "tricep"}},
}

// BuildReport summarizes g. Mesh and material previews are capped at ten
// entries in the JSON report; the totals are kept for the console view.
func BuildReport(g *SnapshotGraph) Report {
	snap := g.Snapshot()
	objects := g.AllObjects()

	r := Report{
		Objects:        objects,
		Meshes:         head(snap.Meshes, previewMeshes),
		Materials:      head(snap.Materials, previewMaterials),
		TotalMeshes:    len(snap.Meshes),
		TotalMaterials: len(snap.Materials),
		collections:    snap.Collections,
	}

	for _, c := range snap.Collections {
		r.Collections = append(r.Collections, CollectionSummary{Name: c.Name, ObjectCount: len(c.Objects)})
	}

	groupIdx := make(map[types.ObjectType]int)
	for _, obj := range objects {
		i, ok := groupIdx[obj.Type]
		if !ok {
			i = len(r.TypeGroups)
			groupIdx[obj.Type] = i
			r.TypeGroups = append(r.TypeGroups, TypeGroup{Type: obj.Type})
		}
		r.TypeGroups[i].Names = append(r.TypeGroups[i].Names, obj.Name)
	}

	for _, s := range suggestKeywords {
		sug := Suggestion{System: s.system}
		for _, obj := range objects {
			if containsAny(strings.ToLower(obj.Name), s.keywords) {
				sug.Objects = append(sug.Objects, obj.Name)
			}
		}
		r.Suggestions = append(r.Suggestions, sug)
	}

	return r
}

// WriteReport writes r as indented JSON, creating parent directories.
func WriteReport(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PrintReport renders the console view of r.
func PrintReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "Collections (%d):\n", len(r.Collections))
	for _, c := range r.collections {
		fmt.Fprintf(w, "  %s (%d objects)\n", c.Name, len(c.Objects))
		for _, obj := range head(c.Objects, previewObjects) {
			fmt.Fprintf(w, "     - %s (%s)\n", obj.Name, obj.Type)
		}
	}

	fmt.Fprintf(w, "\nObjects (%d):\n", len(r.Objects))
	for _, g := range r.TypeGroups {
		fmt.Fprintf(w, "  %s: %d items\n", g.Type, len(g.Names))
		for _, name := range head(g.Names, previewTypeNames) {
			fmt.Fprintf(w, "     - %s\n", name)
		}
		if len(g.Names) > previewTypeNames {
			fmt.Fprintf(w, "     ... and %d more\n", len(g.Names)-previewTypeNames)
		}
	}

	fmt.Fprintf(w, "\nMeshes (%d):\n", r.TotalMeshes)
	for _, m := range r.Meshes {
		fmt.Fprintf(w, "  - %s: %d verts, %d polys\n", m.Name, m.Vertices, m.Polygons)
	}
	if r.TotalMeshes > len(r.Meshes) {
		fmt.Fprintf(w, "  ... and %d more meshes\n", r.TotalMeshes-len(r.Meshes))
	}

	fmt.Fprintf(w, "\nMaterials (%d):\n", r.TotalMaterials)
	for _, m := range r.Materials {
		fmt.Fprintf(w, "  - %s\n", m)
	}
	if r.TotalMaterials > len(r.Materials) {
		fmt.Fprintf(w, "  ... and %d more materials\n", r.TotalMaterials-len(r.Materials))
	}

	fmt.Fprintln(w, "\nSuggested exports:")
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "\n%s:\n", strings.ToUpper(s.System))
		for _, name := range head(s.Objects, previewSuggestions) {
			fmt.Fprintf(w, "  anatomy-assets export --object %q --out %s/%s.glb\n", name, s.System, strings.ToLower(name))
		}
		if len(s.Objects) > previewSuggestions {
			fmt.Fprintf(w, "  # ... and %d more objects\n", len(s.Objects)-previewSuggestions)
		}
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
