// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scene exposes the host editor's document as a read-only scene
// graph. Providers load it from a snapshot file dumped by the host or from
// an exported glTF asset; consumers only see the Graph interface.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

// Collection is a named group of objects in host order.
type Collection interface {
	Name() string
	Objects() []types.SceneObject
}

// Graph is a read-only view of a scene document.
type Graph interface {
	// Collection looks up a collection by exact name.
	Collection(name string) (Collection, bool)

	// Collections lists every collection in document order.
	Collections() []Collection
}

// SnapshotGraph implements Graph over an in-memory SceneSnapshot.
type SnapshotGraph struct {
	snap   types.SceneSnapshot
	byName map[string]int
}

// NewSnapshotGraph indexes snap by collection name. When two collections
// share a name the first one wins, matching host lookup semantics.
func NewSnapshotGraph(snap types.SceneSnapshot) *SnapshotGraph {
	g := &SnapshotGraph{
		snap:   snap,
		byName: make(map[string]int, len(snap.Collections)),
	}
	for i, c := range snap.Collections {
		if _, ok := g.byName[c.Name]; !ok {
			g.byName[c.Name] = i
		}
	}
	return g
}

// LoadSnapshot reads a snapshot from a .json, .yaml, or .yml file.
func LoadSnapshot(path string) (*SnapshotGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	var snap types.SceneSnapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q: use .json, .yaml or .yml", filepath.Ext(path))
	}

	if snap.Source == "" {
		snap.Source = path
	}
	return NewSnapshotGraph(snap), nil
}

// Open picks a provider by file extension: glTF assets go through OpenGLTF,
// everything else through LoadSnapshot.
func Open(path string) (*SnapshotGraph, error) {
	if IsGLTF(path) {
		return OpenGLTF(path)
	}
	return LoadSnapshot(path)
}

// Snapshot returns the underlying snapshot.
func (g *SnapshotGraph) Snapshot() types.SceneSnapshot {
	return g.snap
}

func (g *SnapshotGraph) Collection(name string) (Collection, bool) {
	i, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return snapshotCollection{c: &g.snap.Collections[i]}, true
}

func (g *SnapshotGraph) Collections() []Collection {
	out := make([]Collection, len(g.snap.Collections))
	for i := range g.snap.Collections {
		out[i] = snapshotCollection{c: &g.snap.Collections[i]}
	}
	return out
}

// AllObjects returns the flat object list. Snapshots written by hand often
// omit it, in which case it is derived from the collections with duplicates
// (objects linked into several collections) removed.
func (g *SnapshotGraph) AllObjects() []types.SceneObject {
	if len(g.snap.Objects) > 0 {
		return g.snap.Objects
	}
	seen := make(map[string]bool)
	var out []types.SceneObject
	for _, c := range g.snap.Collections {
		for _, obj := range c.Objects {
			if seen[obj.Name] {
				continue
			}
			seen[obj.Name] = true
			if obj.Collection == "" {
				obj.Collection = c.Name
			}
			out = append(out, obj)
		}
	}
	return out
}

type snapshotCollection struct {
	c *types.SceneCollection
}

func (s snapshotCollection) Name() string                 { return s.c.Name }
func (s snapshotCollection) Objects() []types.SceneObject { return s.c.Objects }
