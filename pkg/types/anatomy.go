// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AnatomySystem tags a part with the anatomical system it belongs to.
// The string values match the AnatomySystem enum of the consuming app.
type AnatomySystem string

const (
	SystemSkeletal       AnatomySystem = "SKELETAL"
	SystemMuscular       AnatomySystem = "MUSCULAR"
	SystemNervous        AnatomySystem = "NERVOUS"
	SystemCardiovascular AnatomySystem = "CARDIOVASCULAR"
	SystemRespiratory    AnatomySystem = "RESPIRATORY"
	SystemDigestive      AnatomySystem = "DIGESTIVE"
	SystemUrinary        AnatomySystem = "URINARY"
	SystemLymphatic      AnatomySystem = "LYMPHATIC"
	SystemIntegumentary  AnatomySystem = "INTEGUMENTARY"
)

// Synonym is an alternate search term for a part.
type Synonym struct {
	// Synonym is the search text, lowercased.
	Synonym string `json:"synonym" yaml:"synonym"`

	// Language is an ISO 639-1 code (always "en" for generated entries).
	Language string `json:"language" yaml:"language"`

	// Priority orders synonyms in search results; higher wins.
	Priority int `json:"priority" yaml:"priority"`
}

// PartRecord is one uniquely named mesh object from the source scene.
// Field order is the serialization order of the generated ontology files.
type PartRecord struct {
	// PartID is the normalized identifier derived from Name. Two distinct
	// names may normalize to the same PartID.
	PartID string `json:"partId" yaml:"part_id"`

	// Name is the display name exactly as it appears in the scene.
	Name string `json:"name" yaml:"name"`

	// System is the anatomical system the part was classified into.
	System AnatomySystem `json:"system" yaml:"system"`

	// ModelPath is the shared asset file containing the part's geometry
	// (e.g. "/models/skeleton/skeleton-full.glb").
	ModelPath string `json:"modelPath" yaml:"model_path"`

	// MeshName duplicates Name; the viewer matches picked meshes against it.
	MeshName string `json:"meshName" yaml:"mesh_name"`

	// Synonyms lists search terms in generation order.
	Synonyms []Synonym `json:"synonyms" yaml:"synonyms"`
}
