// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import "github.com/pdiddy/anatomy-assets/pkg/types"

const modelsPrefix = "/models/"

// systemAssets maps a system to the collection-level GLB holding its
// geometry, relative to the models root. Digestive parts live in the
// visceral export alongside the respiratory ones.
var systemAssets = map[types.AnatomySystem]string{
	types.SystemSkeletal:       "skeleton/skeleton-full.glb",
	types.SystemMuscular:       "muscular/muscles-full.glb",
	types.SystemCardiovascular: "cardiovascular/cardiovascular-full.glb",
	types.SystemNervous:        "nervous/nervous-full.glb",
	types.SystemRespiratory:    "respiratory/visceral-full.glb",
	types.SystemDigestive:      "respiratory/visceral-full.glb",
}

// ModelPath returns the asset path for system. Urinary, lymphatic and
// integumentary parts have no export of their own and resolve to the
// skeletal asset.
func ModelPath(system types.AnatomySystem) string {
	asset, ok := systemAssets[system]
	if !ok {
		asset = systemAssets[types.SystemSkeletal]
	}
	return modelsPrefix + asset
}
