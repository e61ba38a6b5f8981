// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

func TestNormalizePartID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Skull", want: "skull"},
		{name: "dot is removed, not separated", in: "Femur.R", want: "femurr"},
		{name: "padded and hyphen run", in: "  Left--Lung  ", want: "left_lung"},
		{name: "mixed separator run", in: "Left - lung", want: "left_lung"},
		{name: "removed chars inside a run", in: "a -.- b", want: "a_b"},
		{name: "existing underscores are kept", in: "Rib_1 (left)", want: "rib_1_left"},
		{name: "double underscore is not collapsed", in: "a__b", want: "a__b"},
		{name: "leading and trailing underscores trimmed", in: "_Heart_", want: "heart"},
		{name: "apostrophe and ampersand removed", in: "Broca's area & gyrus", want: "brocas_area_gyrus"},
		{name: "unicode letters are word chars", in: "Épiphyse fémorale", want: "épiphyse_fémorale"},
		{name: "digits kept", in: "Thoracic vertebra T12", want: "thoracic_vertebra_t12"},
		{name: "word-final sigma", in: "ΟΔΟΣ ΑΣ", want: "\u03bf\u03b4\u03bf\u03c2_\u03b1\u03c2"},
		{name: "dotted capital I drops the combining dot", in: "İstanbul bone", want: "istanbul_bone"},
		{name: "tab and newline are whitespace", in: "Left\tlung\n", want: "left_lung"},
		{name: "all removed yields empty", in: "...", want: ""},
		{name: "empty input", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePartID(tt.in))
		})
	}
}

func TestNormalizePartIDIdempotent(t *testing.T) {
	inputs := []string{
		"Femur.R", "  Left--Lung  ", "a__b", "_x_", "Épiphyse fémorale",
		"Left - lung", "--", "Rib_1 (left)", "Heart", "A -_- B", "__a__",
	}
	for _, in := range inputs {
		once := NormalizePartID(in)
		assert.Equal(t, once, NormalizePartID(once), "input %q", in)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		object     string
		want       types.AnatomySystem
	}{
		{name: "skull keyword", object: "Skull", want: types.SystemSkeletal},
		{name: "muscle and bone prefers skeletal", object: "Bone muscle attachment", want: types.SystemSkeletal},
		{name: "muscular collection", collection: "4: Muscular system", want: types.SystemMuscular},
		{name: "nervous collection", collection: "7: Nervous system & Sense organs", want: types.SystemNervous},
		{name: "brain", object: "Brain stem", want: types.SystemNervous},
		{name: "heart", object: "Heart", want: types.SystemCardiovascular},
		{name: "cardiovascular name has no keyword", collection: "5: Cardiovascular system", want: types.SystemSkeletal},
		{name: "lung", object: "Left lung", want: types.SystemRespiratory},
		{name: "bronchus", object: "Main bronchus", want: types.SystemRespiratory},
		{name: "respiratory before digestive", object: "Lung liver boundary", want: types.SystemRespiratory},
		{name: "liver", object: "Liver", want: types.SystemDigestive},
		{name: "intestine", object: "Small intestine", want: types.SystemDigestive},
		{name: "kidney", object: "Kidney", want: types.SystemUrinary},
		{name: "spleen", object: "Spleen", want: types.SystemLymphatic},
		{name: "skin", object: "Skin", want: types.SystemIntegumentary},
		{name: "case insensitive", object: "HEART", want: types.SystemCardiovascular},
		{name: "no match defaults to skeletal", collection: "8: Visceral systems", want: types.SystemSkeletal},
		{name: "empty defaults to skeletal", want: types.SystemSkeletal},
		{name: "collection and object combined", collection: "8: Visceral systems", object: "Stomach", want: types.SystemDigestive},
		{name: "rib substring wins over muscle", object: "Ribbon muscle", want: types.SystemSkeletal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.collection, tt.object))
		})
	}
}

func TestRulesOrder(t *testing.T) {
	want := []types.AnatomySystem{
		types.SystemSkeletal,
		types.SystemMuscular,
		types.SystemNervous,
		types.SystemCardiovascular,
		types.SystemRespiratory,
		types.SystemDigestive,
		types.SystemUrinary,
		types.SystemLymphatic,
		types.SystemIntegumentary,
	}
	got := make([]types.AnatomySystem, len(Rules))
	for i, r := range Rules {
		got[i] = r.System
	}
	assert.Equal(t, want, got)
}

func syn(s string, p int) types.Synonym {
	return types.Synonym{Synonym: s, Language: "en", Priority: p}
}

func TestSynonymsCompat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []types.Synonym
	}{
		{name: "plain name", in: "Heart", want: []types.Synonym{syn("heart", 10)}},
		{name: "suffix alone is not a side marker", in: "Lung.L", want: []types.Synonym{syn("lung.l", 10)}},
		{name: "left word", in: "Left lung", want: []types.Synonym{syn("left lung", 10), syn("l lung", 8)}},
		{name: "left word with suffix", in: "Left femur.l", want: []types.Synonym{syn("left femur.l", 10), syn("l femur", 8)}},
		{name: "right word", in: "Right kidney.r", want: []types.Synonym{syn("right kidney.r", 10), syn("r kidney", 8)}},
		{name: "both sides keeps left only", in: "Left-right junction", want: []types.Synonym{syn("left-right junction", 10), syn("l-right junction", 8)}},
		{name: "embedded word still matches", in: "Bright spot", want: []types.Synonym{syn("bright spot", 10), syn("br spot", 8)}},
		{name: "dotted capital I keeps the combining dot", in: "İstanbul bone", want: []types.Synonym{syn("i\u0307stanbul bone", 10)}},
		{name: "word-final sigma", in: "ΟΔΟΣ ΑΣ", want: []types.Synonym{syn("\u03bf\u03b4\u03bf\u03c2 \u03b1\u03c2", 10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Synonyms(tt.in, types.SynonymsCompat))
			assert.Equal(t, tt.want, Synonyms(tt.in, ""), "empty policy is compat")
		})
	}
}

func TestSynonymsExtended(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []types.Synonym
	}{
		{name: "suffix marks the side", in: "Lung.L", want: []types.Synonym{syn("lung.l", 10), syn("lung", 8)}},
		{name: "right suffix", in: "Femur.R", want: []types.Synonym{syn("femur.r", 10), syn("femur", 8)}},
		{name: "both sides", in: "Left-right junction", want: []types.Synonym{
			syn("left-right junction", 10), syn("l-right junction", 8), syn("left-r junction", 8),
		}},
		{name: "plain name unchanged", in: "Heart", want: []types.Synonym{syn("heart", 10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Synonyms(tt.in, types.SynonymsExtended))
		})
	}
}

func TestModelPath(t *testing.T) {
	tests := []struct {
		system types.AnatomySystem
		want   string
	}{
		{types.SystemSkeletal, "/models/skeleton/skeleton-full.glb"},
		{types.SystemMuscular, "/models/muscular/muscles-full.glb"},
		{types.SystemCardiovascular, "/models/cardiovascular/cardiovascular-full.glb"},
		{types.SystemNervous, "/models/nervous/nervous-full.glb"},
		{types.SystemRespiratory, "/models/respiratory/visceral-full.glb"},
		{types.SystemDigestive, "/models/respiratory/visceral-full.glb"},
		{types.SystemUrinary, "/models/skeleton/skeleton-full.glb"},
		{types.SystemLymphatic, "/models/skeleton/skeleton-full.glb"},
		{types.SystemIntegumentary, "/models/skeleton/skeleton-full.glb"},
		{types.AnatomySystem("UNKNOWN"), "/models/skeleton/skeleton-full.glb"},
	}
	for _, tt := range tests {
		t.Run(string(tt.system), func(t *testing.T) {
			assert.Equal(t, tt.want, ModelPath(tt.system))
		})
	}
}
