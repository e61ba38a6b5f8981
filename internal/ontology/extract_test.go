// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/anatomy-assets/internal/scene"
	"github.com/pdiddy/anatomy-assets/pkg/types"
)

// --- test helpers ---

func mesh(name string) types.SceneObject {
	return types.SceneObject{Name: name, Type: types.ObjectMesh}
}

func graph(collections ...types.SceneCollection) *scene.SnapshotGraph {
	return scene.NewSnapshotGraph(types.SceneSnapshot{Collections: collections})
}

func collection(name string, objects ...types.SceneObject) types.SceneCollection {
	return types.SceneCollection{Name: name, Objects: objects}
}

func extract(t *testing.T, g scene.Graph, opts Options) (*Result, string) {
	t.Helper()
	var buf bytes.Buffer
	res, err := Extract(g, opts, &buf)
	require.NoError(t, err)
	return res, buf.String()
}

// --- extraction tests ---

func TestExtractSingleSkull(t *testing.T) {
	g := graph(collection("1: Skeletal system", mesh("Skull")))

	res, _ := extract(t, g, Options{})

	require.Len(t, res.Records, 1)
	assert.Equal(t, types.PartRecord{
		PartID:    "skull",
		Name:      "Skull",
		System:    types.SystemSkeletal,
		ModelPath: "/models/skeleton/skeleton-full.glb",
		MeshName:  "Skull",
		Synonyms:  []types.Synonym{syn("skull", 10)},
	}, res.Records[0])
	assert.Equal(t, 1, res.Summary.Parts)
	assert.Equal(t, map[types.AnatomySystem]int{types.SystemSkeletal: 1}, res.Summary.BySystem)
}

func TestExtractDeduplicatesAcrossCollections(t *testing.T) {
	g := graph(
		collection("5: Cardiovascular system", mesh("Heart"), mesh("Aorta")),
		collection("7: Nervous system & Sense organs", mesh("Heart"), mesh("Brain")),
	)

	res, _ := extract(t, g, Options{})

	var hearts []types.PartRecord
	for _, r := range res.Records {
		if r.Name == "Heart" {
			hearts = append(hearts, r)
		}
	}
	require.Len(t, hearts, 1)
	// The cardiovascular collection has no system keyword, so it falls back.
	assert.Equal(t, types.SystemSkeletal, hearts[0].System)
	assert.Equal(t, []string{"Heart", "Aorta", "Brain"}, recordNames(res.Records))
}

func TestExtractTraversalFollowsMainCollectionOrder(t *testing.T) {
	// Snapshot order differs from the fixed traversal order.
	g := graph(
		collection("8: Visceral systems", mesh("Left lung")),
		collection("4: Muscular system", mesh("Biceps")),
		collection("1: Skeletal system", mesh("Femur")),
		collection("Unrelated", mesh("Camera rig")),
	)

	res, _ := extract(t, g, Options{})

	assert.Equal(t, []string{"Femur", "Biceps", "Left lung"}, recordNames(res.Records))
	assert.Equal(t, types.SystemMuscular, res.Records[1].System)
	assert.Equal(t, "/models/muscular/muscles-full.glb", res.Records[1].ModelPath)
}

func TestExtractSkipsNonMeshAndUnnamed(t *testing.T) {
	g := graph(collection("1: Skeletal system",
		types.SceneObject{Name: "Armature", Type: "ARMATURE"},
		types.SceneObject{Name: "Label", Type: types.ObjectEmpty},
		types.SceneObject{Name: "", Type: types.ObjectMesh},
		mesh("Sternum"),
	))

	res, _ := extract(t, g, Options{})

	assert.Equal(t, []string{"Sternum"}, recordNames(res.Records))
}

func TestExtractMissingCollectionsAreSkipped(t *testing.T) {
	g := graph(collection("4: Muscular system", mesh("Deltoid")))

	res, out := extract(t, g, Options{})

	require.Len(t, res.Records, 1)
	assert.Len(t, res.Summary.Missing, 4)
	assert.Contains(t, out, "skipped 1: Skeletal system (collection not found)")
	assert.Contains(t, out, "processing 4: Muscular system (MUSCULAR)")
}

func TestExtractClassifyObjects(t *testing.T) {
	g := graph(collection("8: Visceral systems", mesh("Left lung"), mesh("Liver"), mesh("Kidney")))

	res, _ := extract(t, g, Options{ClassifyObjects: true})

	require.Len(t, res.Records, 3)
	assert.Equal(t, types.SystemRespiratory, res.Records[0].System)
	assert.Equal(t, types.SystemDigestive, res.Records[1].System)
	assert.Equal(t, "/models/respiratory/visceral-full.glb", res.Records[1].ModelPath)
	assert.Equal(t, types.SystemUrinary, res.Records[2].System)
	assert.Equal(t, "/models/skeleton/skeleton-full.glb", res.Records[2].ModelPath)
}

func TestExtractProgressLines(t *testing.T) {
	objects := make([]types.SceneObject, 250)
	for i := range objects {
		objects[i] = mesh(fmt.Sprintf("Bone %03d", i))
	}
	g := graph(collection("1: Skeletal system", objects...))

	_, out := extract(t, g, Options{})

	assert.Contains(t, out, "processed 100 parts...")
	assert.Contains(t, out, "processed 200 parts...")
	assert.NotContains(t, out, "processed 250 parts...")
}

func TestExtractCollisionPolicies(t *testing.T) {
	objects := []types.SceneObject{mesh("Rib 1"), mesh("Rib-1"), mesh("Rib.1"), mesh("Rib 2")}

	t.Run("accept keeps duplicate ids", func(t *testing.T) {
		res, _ := extract(t, graph(collection("1: Skeletal system", objects...)), Options{})
		assert.Equal(t, []string{"rib_1", "rib_1", "rib1", "rib_2"}, recordIDs(res.Records))
		require.Len(t, res.Summary.Collisions, 1)
		assert.Equal(t, Collision{PartID: "rib_1", Names: []string{"Rib 1", "Rib-1"}}, res.Summary.Collisions[0])
	})

	t.Run("suffix disambiguates later names", func(t *testing.T) {
		objs := append(append([]types.SceneObject{}, objects...), mesh("Rib_1"), mesh("Rib 1_2"))
		res, _ := extract(t, graph(collection("1: Skeletal system", objs...)),
			Options{Collisions: types.CollisionSuffix})
		assert.Equal(t, []string{"rib_1", "rib_1_2", "rib1", "rib_2", "rib_1_3", "rib_1_2_2"}, recordIDs(res.Records))
		assert.Equal(t, []Collision{
			{PartID: "rib_1", Names: []string{"Rib 1", "Rib-1", "Rib_1"}},
			{PartID: "rib_1_2", Names: []string{"Rib-1", "Rib 1_2"}},
		}, res.Summary.Collisions)
	})

	t.Run("error aborts the run", func(t *testing.T) {
		var buf bytes.Buffer
		res, err := Extract(graph(collection("1: Skeletal system", objects...)),
			Options{Collisions: types.CollisionError}, &buf)
		require.ErrorIs(t, err, ErrCollision)
		assert.Nil(t, res)
		assert.Contains(t, err.Error(), `"Rib 1" and "Rib-1"`)
	})
}

func TestExtractEmptyIDIsReported(t *testing.T) {
	g := graph(collection("1: Skeletal system", mesh("..."), mesh("Skull")))

	res, _ := extract(t, g, Options{})

	require.Len(t, res.Records, 2)
	assert.Equal(t, "", res.Records[0].PartID)
	assert.Equal(t, []string{"..."}, res.Summary.EmptyIDs)
}

func TestPrintSummarySortsSystems(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, Summary{
		Parts: 3,
		BySystem: map[types.AnatomySystem]int{
			types.SystemSkeletal: 2,
			types.SystemMuscular: 1,
		},
	})
	out := buf.String()
	assert.Contains(t, out, "extracted 3 anatomy parts")
	assert.Less(t, strings.Index(out, "MUSCULAR: 1 parts"), strings.Index(out, "SKELETAL: 2 parts"))
}

// --- writer tests ---

func TestMarshalRecordsFormat(t *testing.T) {
	data, err := MarshalRecords([]types.PartRecord{{
		PartID:    "skull",
		Name:      "Skull",
		System:    types.SystemSkeletal,
		ModelPath: "/models/skeleton/skeleton-full.glb",
		MeshName:  "Skull",
		Synonyms:  []types.Synonym{syn("skull", 10)},
	}})
	require.NoError(t, err)

	want := `[
  {
    "partId": "skull",
    "name": "Skull",
    "system": "SKELETAL",
    "modelPath": "/models/skeleton/skeleton-full.glb",
    "meshName": "Skull",
    "synonyms": [
      {
        "synonym": "skull",
        "language": "en",
        "priority": 10
      }
    ]
  }
]`
	assert.Equal(t, want, string(data))
}

func TestMarshalRecordsEscaping(t *testing.T) {
	data, err := MarshalRecords([]types.PartRecord{{Name: "Fémur <L> & 🦴"}})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"name": "F\u00e9mur <L> & \ud83e\uddb4"`)
	for _, b := range data {
		assert.Less(t, b, byte(0x7f))
	}
}

func TestMarshalRecordsEmpty(t *testing.T) {
	data, err := MarshalRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteTypeScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTypeScript(&buf, nil))
	assert.Equal(t, "// Auto-generated Z-Anatomy ontology\n"+
		"// Generated from Z-Anatomy Blender file\n\n"+
		"import { AnatomySystem } from '../src/types/anatomy';\n\n"+
		"export const zAnatomyOntology = [];\n", buf.String())
}

func TestSaveWritesBothFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	g := graph(collection("1: Skeletal system", mesh("Skull"), mesh("Left femur")))
	res, _ := extract(t, g, Options{})

	paths, err := Save(dir, res.Records)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, JSONFile), paths.JSON)
	assert.Equal(t, filepath.Join(dir, TypeScriptFile), paths.TypeScript)

	loaded, err := LoadRecords(paths.JSON)
	require.NoError(t, err)
	assert.Equal(t, res.Records, loaded)

	ts, err := os.ReadFile(paths.TypeScript)
	require.NoError(t, err)
	jsonData, err := os.ReadFile(paths.JSON)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(ts), string(jsonData)+";\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestSaveFailureKeepsPreviousFiles(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, JSONFile)
	require.NoError(t, os.WriteFile(jsonPath, []byte("[]"), 0o644))
	// A directory in place of the TypeScript file makes its rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, TypeScriptFile, "keep"), 0o755))

	g := graph(collection("1: Skeletal system", mesh("Skull")))
	res, _ := extract(t, g, Options{})

	_, err := Save(dir, res.Records)
	require.Error(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data), "JSON must not be replaced when the TypeScript file fails")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func recordNames(records []types.PartRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func recordIDs(records []types.PartRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.PartID
	}
	return out
}
