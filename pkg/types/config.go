// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SynonymPolicy selects how left/right synonym variants are generated.
type SynonymPolicy string

const (
	// SynonymsCompat reproduces the historical rule: a single left or right
	// variant, with "left" checked first.
	SynonymsCompat SynonymPolicy = "compat"

	// SynonymsExtended handles left and right independently and also treats
	// ".l"/".r" suffixes as side markers.
	SynonymsExtended SynonymPolicy = "extended"
)

// CollisionPolicy selects what happens when two names normalize to the same partId.
type CollisionPolicy string

const (
	CollisionAccept CollisionPolicy = "accept"
	CollisionSuffix CollisionPolicy = "suffix"
	CollisionError  CollisionPolicy = "error"
)

// OntologyConfig holds settings for the ontology extraction stage.
type OntologyConfig struct {
	// Synonyms selects the left/right synonym rule (default compat).
	Synonyms SynonymPolicy `json:"synonyms" yaml:"synonyms"`

	// Collisions selects the partId collision policy (default accept).
	Collisions CollisionPolicy `json:"collisions" yaml:"collisions"`

	// ClassifyObjects includes the object name in system classification.
	// When false only the collection name is used.
	ClassifyObjects bool `json:"classify_objects" yaml:"classify_objects"`
}

// HostConfig holds settings for driving the host 3D editor.
type HostConfig struct {
	// Binary is the editor executable (default "blender").
	Binary string `json:"binary" yaml:"binary"`

	// BlendFile is the source scene opened in background mode.
	BlendFile string `json:"blend_file" yaml:"blend_file"`

	// Timeout bounds a single host invocation. Zero means no limit.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ExportConfig holds settings for the GLB export stage.
type ExportConfig struct {
	// ModelsDir is the root of the exported asset tree (default "public/models").
	ModelsDir string `json:"models_dir" yaml:"models_dir"`

	// DracoLevel is the Draco mesh compression level (default 6).
	DracoLevel int `json:"draco_level" yaml:"draco_level"`

	// SkipLOD disables the medium and low quality passes.
	SkipLOD bool `json:"skip_lod" yaml:"skip_lod"`
}

// IndexConfig holds settings for the part index.
type IndexConfig struct {
	// Dir contains parts.db and the export files (default "data/index").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default search result limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig holds diagnostic logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is "console" or "json".
	Format string `json:"format" yaml:"format"`
}

// Config groups all stage configurations.
type Config struct {
	Host     HostConfig     `json:"host" yaml:"host"`
	Ontology OntologyConfig `json:"ontology" yaml:"ontology"`
	Export   ExportConfig   `json:"export" yaml:"export"`
	Index    IndexConfig    `json:"index" yaml:"index"`
	Log      LogConfig      `json:"log" yaml:"log"`
}
