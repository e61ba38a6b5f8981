// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import (
	"strings"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

const (
	synonymLanguage = "en"
	priorityName    = 10
	prioritySide    = 8
)

// Synonyms generates search terms for a display name. The lowercased name
// always comes first at priority 10; side variants follow at priority 8.
//
// Under SynonymsCompat (the default) only one side variant is produced and
// "left" wins over "right", so "left-right junction" gets the left form
// only. SynonymsExtended checks both sides independently and also treats a
// ".l"/".r" suffix as a side marker.
func Synonyms(name string, policy types.SynonymPolicy) []types.Synonym {
	lower := toLower(name)
	out := []types.Synonym{{Synonym: lower, Language: synonymLanguage, Priority: priorityName}}

	if policy == types.SynonymsExtended {
		return appendExtended(out, lower)
	}

	switch {
	case strings.Contains(lower, "left"):
		out = append(out, sideVariant(lower, "left", "l", ".l"))
	case strings.Contains(lower, "right"):
		out = append(out, sideVariant(lower, "right", "r", ".r"))
	}
	return out
}

func appendExtended(out []types.Synonym, lower string) []types.Synonym {
	seen := map[string]bool{lower: true}
	add := func(s types.Synonym) []types.Synonym {
		if s.Synonym == "" || seen[s.Synonym] {
			return out
		}
		seen[s.Synonym] = true
		return append(out, s)
	}

	if strings.Contains(lower, "left") || strings.HasSuffix(lower, ".l") {
		out = add(sideVariant(lower, "left", "l", ".l"))
	}
	if strings.Contains(lower, "right") || strings.HasSuffix(lower, ".r") {
		out = add(sideVariant(lower, "right", "r", ".r"))
	}
	return out
}

// sideVariant abbreviates the side word and then drops the suffix marker,
// in that order: "left lung.l" becomes "l lung".
func sideVariant(lower, word, abbrev, suffix string) types.Synonym {
	v := strings.ReplaceAll(lower, word, abbrev)
	v = strings.ReplaceAll(v, suffix, "")
	return types.Synonym{Synonym: v, Language: synonymLanguage, Priority: prioritySide}
}
