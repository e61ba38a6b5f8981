// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/anatomy-assets/internal/export"
	"github.com/pdiddy/anatomy-assets/internal/host"
	"github.com/pdiddy/anatomy-assets/internal/index"
	"github.com/pdiddy/anatomy-assets/internal/scene"
	"github.com/pdiddy/anatomy-assets/pkg/types"
)

const defaultBlendFile = "Startup.blend"

func init() {
	viper.SetDefault("host.blend_file", defaultBlendFile)
	viper.SetDefault("export.models_dir", export.DefaultModelsDir)
	viper.SetDefault("export.draco_level", export.DefaultDracoLevel)
	viper.SetDefault("ontology.synonyms", string(types.SynonymsCompat))
	viper.SetDefault("ontology.collisions", string(types.CollisionAccept))
	viper.SetDefault("index.dir", index.DefaultDir)
	viper.SetDefault("index.max_results", 20)
}

// bindFlag ties a config key to a flag on cmd, local or persistent. Keys
// and flag names are fixed strings, so a bind failure is a programming error.
func bindFlag(key string, cmd *cobra.Command, name string) {
	flag := cmd.PersistentFlags().Lookup(name)
	if flag == nil {
		flag = cmd.Flags().Lookup(name)
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s to %s: %v", name, key, err))
	}
}

// loadConfig assembles the stage configuration from flags, environment,
// the config file and defaults, in viper's precedence order.
func loadConfig() types.Config {
	return types.Config{
		Host: types.HostConfig{
			Binary:    viper.GetString("host.binary"),
			BlendFile: viper.GetString("host.blend_file"),
			Timeout:   viper.GetDuration("host.timeout"),
		},
		Ontology: types.OntologyConfig{
			Synonyms:        types.SynonymPolicy(viper.GetString("ontology.synonyms")),
			Collisions:      types.CollisionPolicy(viper.GetString("ontology.collisions")),
			ClassifyObjects: viper.GetBool("ontology.classify_objects"),
		},
		Export: types.ExportConfig{
			ModelsDir:  viper.GetString("export.models_dir"),
			DracoLevel: viper.GetInt("export.draco_level"),
			SkipLOD:    viper.GetBool("export.skip_lod"),
		},
		Index: types.IndexConfig{
			Dir:        viper.GetString("index.dir"),
			MaxResults: viper.GetInt("index.max_results"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
}

// validateOntology rejects unknown policy names before any work starts.
func validateOntology(cfg types.OntologyConfig) error {
	switch cfg.Synonyms {
	case "", types.SynonymsCompat, types.SynonymsExtended:
	default:
		return fmt.Errorf("unknown synonym policy %q (want compat or extended)", cfg.Synonyms)
	}
	switch cfg.Collisions {
	case "", types.CollisionAccept, types.CollisionSuffix, types.CollisionError:
	default:
		return fmt.Errorf("unknown collision policy %q (want accept, suffix or error)", cfg.Collisions)
	}
	return nil
}

// hostContext bounds a host run by host.timeout when one is set.
func hostContext(cfg types.HostConfig) (context.Context, context.CancelFunc) {
	if cfg.Timeout > 0 {
		return context.WithTimeout(context.Background(), cfg.Timeout)
	}
	return context.WithCancel(context.Background())
}

// openScene returns the scene graph from a snapshot file when one is
// given, or dumps it from the .blend file through the host editor.
func openScene(snapshotPath, savePath string, cfg types.HostConfig) (*scene.SnapshotGraph, error) {
	if snapshotPath != "" {
		return scene.Open(snapshotPath)
	}

	ctx, cancel := hostContext(cfg)
	defer cancel()

	rt, err := host.DetectRuntime(ctx, cfg.Binary, logger)
	if err != nil {
		return nil, err
	}
	logger.Sugar().Infof("dumping %s with %s", cfg.BlendFile, rt.Name())

	start := time.Now()
	snap, err := host.DumpScene(ctx, rt, cfg.BlendFile, nil)
	if err != nil {
		return nil, err
	}
	logger.Sugar().Debugf("scene dump took %s", time.Since(start))

	if savePath != "" {
		if err := host.SaveSnapshot(savePath, snap); err != nil {
			return nil, err
		}
		fmt.Printf("Saved snapshot to %s\n", savePath)
	}
	return scene.NewSnapshotGraph(snap), nil
}
