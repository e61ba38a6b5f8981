// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ontology derives the anatomy part ontology from a scene graph:
// every uniquely named mesh in the main system collections becomes a
// PartRecord with a normalized partId, a system tag, a shared model path,
// and search synonyms.
package ontology

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/pdiddy/anatomy-assets/internal/scene"
	"github.com/pdiddy/anatomy-assets/pkg/types"
)

// MainCollections lists the source collections in traversal order.
var MainCollections = []string{
	"1: Skeletal system",
	"4: Muscular system",
	"5: Cardiovascular system",
	"7: Nervous system & Sense organs",
	"8: Visceral systems",
}

const defaultProgressEvery = 100

// ErrCollision is returned under CollisionError when two names normalize
// to the same partId.
var ErrCollision = errors.New("partId collision")

// Options controls an extraction run. The zero value reproduces the
// historical generator.
type Options struct {
	// Collections overrides MainCollections.
	Collections []string

	Synonyms        types.SynonymPolicy
	Collisions      types.CollisionPolicy
	ClassifyObjects bool

	// ProgressEvery prints a progress line each time this many parts have
	// been recorded (default 100).
	ProgressEvery int

	Logger *zap.Logger
}

// OptionsFromConfig maps the ontology config section onto Options.
func OptionsFromConfig(cfg types.OntologyConfig) Options {
	return Options{
		Synonyms:        cfg.Synonyms,
		Collisions:      cfg.Collisions,
		ClassifyObjects: cfg.ClassifyObjects,
	}
}

// Collision records names that normalized to the same partId, in
// encounter order. The first name holds the contested id.
type Collision struct {
	PartID string   `json:"part_id"`
	Names  []string `json:"names"`
}

// Summary holds counts and warnings from an extraction run.
type Summary struct {
	Parts      int
	BySystem   map[types.AnatomySystem]int
	Missing    []string
	Collisions []Collision
	EmptyIDs   []string
}

// Result is the output of Extract.
type Result struct {
	Records []types.PartRecord
	Summary Summary
}

// Extract walks the configured collections of g in order and builds one
// PartRecord per uniquely named mesh object. Names are deduplicated across
// all collections; the first occurrence wins. Missing collections are
// reported and skipped. Progress lines go to w.
func Extract(g scene.Graph, opts Options, w io.Writer) (*Result, error) {
	collections := opts.Collections
	if len(collections) == 0 {
		collections = MainCollections
	}
	every := opts.ProgressEvery
	if every <= 0 {
		every = defaultProgressEvery
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	x := &extraction{
		opts:      opts,
		processed: make(map[string]bool),
		ids:       newIDTracker(opts.Collisions),
		summary:   Summary{BySystem: make(map[types.AnatomySystem]int)},
	}

	for _, name := range collections {
		coll, ok := g.Collection(name)
		if !ok {
			fmt.Fprintf(w, "skipped %s (collection not found)\n", name)
			log.Warn("collection not found", zap.String("collection", name))
			x.summary.Missing = append(x.summary.Missing, name)
			continue
		}

		collSystem := Classify(name, "")
		fmt.Fprintf(w, "processing %s (%s)\n", name, collSystem)

		for _, obj := range coll.Objects() {
			if obj.Type != types.ObjectMesh || obj.Name == "" {
				continue
			}
			if x.processed[obj.Name] {
				log.Debug("duplicate object skipped",
					zap.String("object", obj.Name), zap.String("collection", name))
				continue
			}
			x.processed[obj.Name] = true

			system := collSystem
			if opts.ClassifyObjects {
				system = Classify(name, obj.Name)
			}

			rec, err := x.record(obj.Name, system)
			if err != nil {
				return nil, err
			}
			x.records = append(x.records, rec)

			if len(x.processed)%every == 0 {
				fmt.Fprintf(w, "  processed %d parts...\n", len(x.processed))
			}
		}
	}

	x.summary.Parts = len(x.records)
	x.summary.Collisions = x.ids.collisions()
	for _, c := range x.summary.Collisions {
		log.Warn("partId collision", zap.String("part_id", c.PartID), zap.Strings("names", c.Names))
	}
	for _, n := range x.summary.EmptyIDs {
		log.Warn("empty partId", zap.String("name", n))
	}

	return &Result{Records: x.records, Summary: x.summary}, nil
}

// extraction is the state owned by a single Extract call.
type extraction struct {
	opts      Options
	processed map[string]bool
	ids       *idTracker
	records   []types.PartRecord
	summary   Summary
}

func (x *extraction) record(name string, system types.AnatomySystem) (types.PartRecord, error) {
	partID := NormalizePartID(name)
	if partID == "" {
		x.summary.EmptyIDs = append(x.summary.EmptyIDs, name)
	}

	partID, err := x.ids.assign(partID, name)
	if err != nil {
		return types.PartRecord{}, err
	}

	x.summary.BySystem[system]++
	return types.PartRecord{
		PartID:    partID,
		Name:      name,
		System:    system,
		ModelPath: ModelPath(system),
		MeshName:  name,
		Synonyms:  Synonyms(name, x.opts.Synonyms),
	}, nil
}

// idTracker detects partId collisions and applies the collision policy.
type idTracker struct {
	policy types.CollisionPolicy
	used   map[string]bool
	owners map[string][]string
	// holders maps each suffixed id to the name it was handed to.
	holders map[string]string
	order   []string
}

func newIDTracker(policy types.CollisionPolicy) *idTracker {
	return &idTracker{
		policy:  policy,
		used:    make(map[string]bool),
		owners:  make(map[string][]string),
		holders: make(map[string]string),
	}
}

func (t *idTracker) assign(partID, name string) (string, error) {
	prev := t.owners[partID]
	if holder, ok := t.holders[partID]; ok && len(prev) == 0 {
		prev = []string{holder}
	}
	if len(prev) == 1 {
		t.order = append(t.order, partID)
	}
	t.owners[partID] = append(prev, name)

	// Under CollisionSuffix a bare id may already be taken by an earlier
	// suffixed id, so availability is checked on used rather than prev.
	if !t.used[partID] {
		t.used[partID] = true
		return partID, nil
	}

	switch t.policy {
	case types.CollisionError:
		return "", fmt.Errorf("%w: %q and %q both normalize to %q", ErrCollision, prev[0], name, partID)
	case types.CollisionSuffix:
		for n := max(len(prev)+1, 2); ; n++ {
			candidate := fmt.Sprintf("%s_%d", partID, n)
			if !t.used[candidate] {
				t.used[candidate] = true
				t.holders[candidate] = name
				return candidate, nil
			}
		}
	default:
		return partID, nil
	}
}

func (t *idTracker) collisions() []Collision {
	out := make([]Collision, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, Collision{PartID: id, Names: t.owners[id]})
	}
	return out
}

// PrintSummary writes the part count and the per-system breakdown, sorted
// by system name.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\nextracted %d anatomy parts\n", s.Parts)

	systems := make([]string, 0, len(s.BySystem))
	for sys := range s.BySystem {
		systems = append(systems, string(sys))
	}
	sort.Strings(systems)

	fmt.Fprintln(w, "\nparts by system:")
	for _, sys := range systems {
		fmt.Fprintf(w, "  %s: %d parts\n", sys, s.BySystem[types.AnatomySystem(sys)])
	}

	if len(s.Missing) > 0 {
		fmt.Fprintf(w, "\nmissing collections: %d\n", len(s.Missing))
	}
	if len(s.Collisions) > 0 {
		fmt.Fprintf(w, "warning: %d partId collision(s)\n", len(s.Collisions))
		for _, c := range s.Collisions {
			fmt.Fprintf(w, "  %s: %v\n", c.PartID, c.Names)
		}
	}
	if len(s.EmptyIDs) > 0 {
		fmt.Fprintf(w, "warning: %d name(s) normalized to an empty partId\n", len(s.EmptyIDs))
	}
}
