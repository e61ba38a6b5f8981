// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anatomy-assets/internal/ontology"
)

var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Generate the anatomy part ontology",
}

var ontologyExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract part records from the main system collections",
	Long: `Extract walks the five main system collections of the scene and writes
one record per uniquely named mesh: a normalized partId, the display name,
an anatomy system, the shared model path and search synonyms.

Output goes to ../data/z-anatomy-ontology.json and
../data/z-anatomy-ontology.ts, relative to the working directory.`,
	RunE: runOntologyExtract,
}

func runOntologyExtract(cmd *cobra.Command, args []string) error {
	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	savePath, _ := cmd.Flags().GetString("save-snapshot")

	cfg := loadConfig()
	if err := validateOntology(cfg.Ontology); err != nil {
		return err
	}

	g, err := openScene(snapshotPath, savePath, cfg.Host)
	if err != nil {
		return err
	}

	opts := ontology.OptionsFromConfig(cfg.Ontology)
	opts.Logger = logger

	res, err := ontology.Extract(g, opts, os.Stdout)
	if err != nil {
		return err
	}

	paths, err := ontology.Save(ontology.DefaultDataDir, res.Records)
	if err != nil {
		return err
	}

	ontology.PrintSummary(os.Stdout, res.Summary)
	fmt.Printf("\nsaved to:\n  %s\n  %s\n", paths.JSON, paths.TypeScript)
	return nil
}

func init() {
	ontologyExtractCmd.Flags().String("snapshot", "", "read the scene from a snapshot (.yaml, .json, .gltf, .glb) instead of Blender")
	ontologyExtractCmd.Flags().String("save-snapshot", "", "write the dumped scene to this JSON file for later runs")
	ontologyExtractCmd.Flags().String("synonyms", "compat", "synonym policy: compat or extended")
	ontologyExtractCmd.Flags().String("collisions", "accept", "partId collision policy: accept, suffix or error")
	ontologyExtractCmd.Flags().Bool("classify-objects", false, "classify by collection and object name")

	bindFlag("ontology.synonyms", ontologyExtractCmd, "synonyms")
	bindFlag("ontology.collisions", ontologyExtractCmd, "collisions")
	bindFlag("ontology.classify_objects", ontologyExtractCmd, "classify-objects")

	ontologyCmd.AddCommand(ontologyExtractCmd)
	rootCmd.AddCommand(ontologyCmd)
}
