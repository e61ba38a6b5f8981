// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

// OpenGLTF loads a .gltf or .glb asset as a scene graph. Each root node of
// the default scene becomes a collection named after the node; the node and
// its descendants, depth first, are the collection's objects. Nodes that
// reference a mesh are MESH objects.
func OpenGLTF(path string) (*SnapshotGraph, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF %s: %w", path, err)
	}
	return NewSnapshotGraph(snapshotFromDocument(doc, path)), nil
}

func snapshotFromDocument(doc *gltf.Document, source string) types.SceneSnapshot {
	snap := types.SceneSnapshot{Source: source}

	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil {
			sceneIdx = int(*doc.Scene)
		}
		if sceneIdx >= 0 && sceneIdx < len(doc.Scenes) {
			for _, root := range doc.Scenes[sceneIdx].Nodes {
				snap.Collections = append(snap.Collections, collectionFromNode(doc, int(root)))
			}
		}
	}

	for _, c := range snap.Collections {
		for _, obj := range c.Objects {
			obj.Collection = c.Name
			snap.Objects = append(snap.Objects, obj)
		}
	}

	for i, m := range doc.Meshes {
		snap.Meshes = append(snap.Meshes, meshStats(doc, m, i))
	}
	for i, m := range doc.Materials {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("material_%d", i)
		}
		snap.Materials = append(snap.Materials, name)
	}
	return snap
}

func collectionFromNode(doc *gltf.Document, root int) types.SceneCollection {
	c := types.SceneCollection{Name: nodeName(doc, root)}

	// glTF node graphs are trees; visited guards malformed files.
	visited := make(map[int]bool)
	var walk func(idx int)
	walk = func(idx int) {
		if idx < 0 || idx >= len(doc.Nodes) || visited[idx] {
			return
		}
		visited[idx] = true
		c.Objects = append(c.Objects, types.SceneObject{
			Name: nodeName(doc, idx),
			Type: nodeType(doc.Nodes[idx]),
		})
		for _, child := range doc.Nodes[idx].Children {
			walk(int(child))
		}
	}
	walk(root)
	return c
}

func nodeName(doc *gltf.Document, idx int) string {
	if idx >= 0 && idx < len(doc.Nodes) && doc.Nodes[idx].Name != "" {
		return doc.Nodes[idx].Name
	}
	return fmt.Sprintf("node_%d", idx)
}

func nodeType(n *gltf.Node) types.ObjectType {
	switch {
	case n.Mesh != nil:
		return types.ObjectMesh
	case n.Camera != nil:
		return types.ObjectCamera
	default:
		return types.ObjectEmpty
	}
}

// meshStats sums vertex and triangle counts over every primitive.
func meshStats(doc *gltf.Document, m *gltf.Mesh, idx int) types.MeshStats {
	stats := types.MeshStats{Name: m.Name}
	if stats.Name == "" {
		stats.Name = fmt.Sprintf("mesh_%d", idx)
	}
	for _, p := range m.Primitives {
		vertices := 0
		if pos, ok := p.Attributes[gltf.POSITION]; ok && int(pos) < len(doc.Accessors) {
			vertices = int(doc.Accessors[pos].Count)
		}
		stats.Vertices += vertices

		elements := vertices
		if p.Indices != nil && int(*p.Indices) < len(doc.Accessors) {
			elements = int(doc.Accessors[*p.Indices].Count)
		}
		stats.Polygons += elements / 3
	}
	return stats
}

// IsGLTF reports whether path has a glTF extension.
func IsGLTF(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".gltf" || ext == ".glb"
}
