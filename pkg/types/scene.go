// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ObjectType is the host editor's object type name.
type ObjectType string

const (
	ObjectMesh   ObjectType = "MESH"
	ObjectEmpty  ObjectType = "EMPTY"
	ObjectCamera ObjectType = "CAMERA"
	ObjectLight  ObjectType = "LIGHT"
)

// SceneObject is a named, typed object inside a collection.
type SceneObject struct {
	Name string     `json:"name" yaml:"name"`
	Type ObjectType `json:"type" yaml:"type"`

	// Location is the object origin in scene units. Optional.
	Location []float64 `json:"location,omitempty" yaml:"location,omitempty"`

	// Collection is the first collection that links the object. Only set in
	// the flat object list of a snapshot.
	Collection string `json:"collection,omitempty" yaml:"collection,omitempty"`
}

// SceneCollection is a named group of objects in host order.
type SceneCollection struct {
	Name    string        `json:"name" yaml:"name"`
	Objects []SceneObject `json:"objects" yaml:"objects"`
}

// MeshStats records geometry counts for one mesh datablock.
type MeshStats struct {
	Name     string `json:"name" yaml:"name"`
	Vertices int    `json:"vertices" yaml:"vertices"`
	Polygons int    `json:"polygons" yaml:"polygons"`
}

// SceneSnapshot is a read-only dump of the host document. It is produced by
// the host dump script or written by hand for tests and fixtures.
type SceneSnapshot struct {
	// Source names the file the snapshot was taken from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	Collections []SceneCollection `json:"collections" yaml:"collections"`

	// Objects is the flat list of every object in the document.
	Objects []SceneObject `json:"objects,omitempty" yaml:"objects,omitempty"`

	Meshes    []MeshStats `json:"meshes,omitempty" yaml:"meshes,omitempty"`
	Materials []string    `json:"materials,omitempty" yaml:"materials,omitempty"`
}
