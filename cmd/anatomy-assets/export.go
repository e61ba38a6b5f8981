// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anatomy-assets/internal/export"
	"github.com/pdiddy/anatomy-assets/internal/host"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the main systems to Draco-compressed GLB files",
	Long: `Export runs Blender once and writes each main system collection as GLB
at full, medium (50%) and low (20%) detail, plus individual organs. Each file
is checked after the run: it must open as glTF and hold at least one mesh.

Use --object and --out to export one object instead, for example an organ
suggested by inspect. Use --dry-run to print the plan without starting Blender.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	object, _ := cmd.Flags().GetString("object")
	out, _ := cmd.Flags().GetString("out")

	cfg := loadConfig()
	var (
		plan export.Plan
		err  error
	)
	if object != "" || out != "" {
		plan, err = export.ObjectPlan(cfg.Export, object, out)
	} else {
		plan, err = export.BuildPlan(cfg.Export)
	}
	if err != nil {
		return err
	}

	if dryRun {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	ctx, cancel := hostContext(cfg.Host)
	defer cancel()

	rt, err := host.DetectRuntime(ctx, cfg.Host.Binary, logger)
	if err != nil {
		return err
	}

	_, summary, err := export.Run(ctx, rt, cfg.Host.BlendFile, plan, os.Stdout, logger)
	if err != nil {
		return err
	}
	export.PrintSummary(os.Stdout, summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d export job(s) failed", summary.Failed)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("models-dir", "public/models", "root of the exported model tree")
	exportCmd.Flags().Int("draco-level", export.DefaultDracoLevel, "Draco mesh compression level")
	exportCmd.Flags().Bool("skip-lod", false, "export full detail only")
	exportCmd.Flags().Bool("dry-run", false, "print the export plan as JSON and exit")
	exportCmd.Flags().String("object", "", "export only this object")
	exportCmd.Flags().String("out", "", "output path for --object, relative to the models directory")

	bindFlag("export.models_dir", exportCmd, "models-dir")
	bindFlag("export.draco_level", exportCmd, "draco-level")
	bindFlag("export.skip_lod", exportCmd, "skip-lod")

	rootCmd.AddCommand(exportCmd)
}
