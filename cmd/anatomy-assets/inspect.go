// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anatomy-assets/internal/scene"
)

const defaultReportPath = "public/models/z-anatomy-structure.json"

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report the collections, objects, meshes and materials of the scene",
	Long: `Inspect prints the structure of the source scene: collections with
object counts, objects grouped by type, the first meshes and materials, and
keyword matches that suggest which objects to export per system. The same
report is written as JSON.

Use --snapshot to inspect a saved snapshot or an exported glTF file instead
of running Blender.`,
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	savePath, _ := cmd.Flags().GetString("save-snapshot")
	out, _ := cmd.Flags().GetString("out")

	cfg := loadConfig()
	g, err := openScene(snapshotPath, savePath, cfg.Host)
	if err != nil {
		return err
	}

	report := scene.BuildReport(g)
	scene.PrintReport(os.Stdout, report)

	if err := scene.WriteReport(out, report); err != nil {
		return err
	}
	fmt.Printf("\nFull report saved to: %s\n", out)
	return nil
}

func init() {
	inspectCmd.Flags().String("snapshot", "", "read the scene from a snapshot (.yaml, .json, .gltf, .glb) instead of Blender")
	inspectCmd.Flags().String("save-snapshot", "", "write the dumped scene to this JSON file for later runs")
	inspectCmd.Flags().String("out", defaultReportPath, "structure report path")

	rootCmd.AddCommand(inspectCmd)
}
