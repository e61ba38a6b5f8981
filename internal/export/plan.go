// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export turns the main system collections into Draco-compressed
// GLB files at three levels of detail. The host editor does the geometry
// work; this package plans the jobs, runs the editor once, and verifies
// what it wrote.
package export

import (
	"fmt"
	"path/filepath"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

// DefaultModelsDir is the asset tree the viewer serves from.
const DefaultModelsDir = "public/models"

// DefaultDracoLevel is the Draco mesh compression level.
const DefaultDracoLevel = 6

// System maps a source collection to its place in the asset tree.
type System struct {
	Collection string
	Dir        string
	File       string
}

// MainSystems lists the exported collections in export order.
var MainSystems = []System{
	{Collection: "1: Skeletal system", Dir: "skeleton", File: "skeleton-full"},
	{Collection: "4: Muscular system", Dir: "muscular", File: "muscles-full"},
	{Collection: "5: Cardiovascular system", Dir: "cardiovascular", File: "cardiovascular-full"},
	{Collection: "7: Nervous system & Sense organs", Dir: "nervous", File: "nervous-full"},
	{Collection: "8: Visceral systems", Dir: "respiratory", File: "visceral-full"},
}

// Organ is a single object exported on its own.
type Organ struct {
	Object string
	Dir    string
	File   string
}

// Organs lists the individually exported objects.
var Organs = []Organ{
	{Object: "Left lung", Dir: "respiratory", File: "lung-left"},
	{Object: "Right lung", Dir: "respiratory", File: "lung-right"},
}

// LOD is a level of detail pass.
type LOD struct {
	Name   string
	Suffix string
	// Ratio is the decimation ratio; 0 keeps full geometry.
	Ratio float64
}

// LODs lists the passes in export order.
var LODs = []LOD{
	{Name: "high"},
	{Name: "medium", Suffix: "-med", Ratio: 0.5},
	{Name: "low", Suffix: "-low", Ratio: 0.2},
}

// JobKind says whether a job selects a whole collection or one object.
type JobKind string

const (
	KindCollection JobKind = "collection"
	KindObject     JobKind = "object"
)

// Job is one GLB file to produce. Field names match what the editor
// script reads.
type Job struct {
	Name          string  `json:"name"`
	Kind          JobKind `json:"kind"`
	Source        string  `json:"source"`
	Output        string  `json:"output"`
	DecimateRatio float64 `json:"decimate_ratio,omitempty"`
}

// Plan is the full set of jobs for one editor run.
type Plan struct {
	DracoLevel int   `json:"draco_level"`
	Jobs       []Job `json:"jobs"`
}

func resolveDir(cfg types.ExportConfig) (string, int, error) {
	dir := cfg.ModelsDir
	if dir == "" {
		dir = DefaultModelsDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", 0, err
	}
	level := cfg.DracoLevel
	if level == 0 {
		level = DefaultDracoLevel
	}
	return abs, level, nil
}

// ObjectPlan exports a single object to out, a path relative to the
// models directory. The job is named after out.
func ObjectPlan(cfg types.ExportConfig, object, out string) (Plan, error) {
	if object == "" || out == "" {
		return Plan{}, fmt.Errorf("object and output path are required")
	}
	if filepath.IsAbs(out) {
		return Plan{}, fmt.Errorf("output path %q must be relative to the models directory", out)
	}
	abs, level, err := resolveDir(cfg)
	if err != nil {
		return Plan{}, err
	}
	return Plan{DracoLevel: level, Jobs: []Job{{
		Name:   filepath.ToSlash(out),
		Kind:   KindObject,
		Source: object,
		Output: filepath.Join(abs, out),
	}}}, nil
}

// BuildPlan lists every system at every level of detail, then the
// individual organs. Relative output paths are made absolute so the
// editor does not resolve them against its own working directory.
func BuildPlan(cfg types.ExportConfig) (Plan, error) {
	abs, level, err := resolveDir(cfg)
	if err != nil {
		return Plan{}, err
	}

	lods := LODs
	if cfg.SkipLOD {
		lods = LODs[:1]
	}

	plan := Plan{DracoLevel: level}
	for _, lod := range lods {
		for _, s := range MainSystems {
			file := s.File + lod.Suffix + ".glb"
			plan.Jobs = append(plan.Jobs, Job{
				Name:          s.Dir + "/" + file,
				Kind:          KindCollection,
				Source:        s.Collection,
				Output:        filepath.Join(abs, s.Dir, file),
				DecimateRatio: lod.Ratio,
			})
		}
	}
	for _, o := range Organs {
		file := o.File + ".glb"
		plan.Jobs = append(plan.Jobs, Job{
			Name:   o.Dir + "/" + file,
			Kind:   KindObject,
			Source: o.Object,
			Output: filepath.Join(abs, o.Dir, file),
		})
	}
	return plan, nil
}
