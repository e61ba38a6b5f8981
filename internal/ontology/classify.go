// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import (
	"strings"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

// Rule maps a set of substring keywords to an anatomical system.
type Rule struct {
	System   types.AnatomySystem
	Keywords []string
}

// Matches reports whether text (already lowercased) contains any keyword.
func (r Rule) Matches(text string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Rules is evaluated top to bottom and the first match wins. Order matters:
// "rib" (skeletal) also matches "ribbon muscle", and respiratory is checked
// before digestive.
var Rules = []Rule{
	{types.SystemSkeletal, []string{"skeleton", "bone", "skull", "vertebra", "rib", "femur"}},
	{types.SystemMuscular, []string{"muscle", "muscular"}},
	{types.SystemNervous, []string{"nerve", "nervous", "brain", "spinal"}},
	{types.SystemCardiovascular, []string{"heart", "cardiac", "artery", "vein", "blood"}},
	{types.SystemRespiratory, []string{"lung", "respiratory", "trachea", "bronch"}},
	{types.SystemDigestive, []string{"stomach", "intestin", "digestive", "liver", "pancrea"}},
	{types.SystemUrinary, []string{"kidney", "bladder", "urinary", "ureter"}},
	{types.SystemLymphatic, []string{"lymph", "spleen", "thymus"}},
	{types.SystemIntegumentary, []string{"skin", "integument", "hair"}},
}

// DefaultSystem is returned when no rule matches. It is a fallback, not a
// classification failure.
const DefaultSystem = types.SystemSkeletal

// Classify returns the system for an object in a collection. Either name may
// be empty; the two are joined with a space and lowercased before matching.
func Classify(collection, object string) types.AnatomySystem {
	text := toLower(collection + " " + object)
	for _, r := range Rules {
		if r.Matches(text) {
			return r.System
		}
	}
	return DefaultSystem
}
