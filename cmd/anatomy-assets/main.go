// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the anatomy-assets CLI.
// Each pipeline stage is a subcommand: inspect, ontology, export and index.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/anatomy-assets/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the diagnostics logger, built before any subcommand runs.
var logger = zap.NewNop()

// rootCmd is the base command for the anatomy-assets CLI.
var rootCmd = &cobra.Command{
	Use:   "anatomy-assets",
	Short: "Build the anatomy viewer's assets from the Z-Anatomy scene",
	Long: `anatomy-assets turns the Z-Anatomy Blender scene into the files the
anatomy viewer loads: a part ontology (JSON and TypeScript), per-system GLB
models at three levels of detail, and a searchable part index.

Stages that need the scene either read a snapshot (YAML, JSON, glTF) or run
Blender headless to dump one.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.NewLogger(loadConfig().Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./anatomy-assets.yaml or ~/.config/anatomy-assets/anatomy-assets.yaml)")
	rootCmd.PersistentFlags().String("log-level", logging.DefaultLevel, "diagnostics level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", logging.FormatConsole, "diagnostics format: console or json")
	rootCmd.PersistentFlags().String("blender", "", "host editor binary (default: blender on PATH)")
	rootCmd.PersistentFlags().String("blend", "", "source .blend file")

	bindFlag("log.level", rootCmd, "log-level")
	bindFlag("log.format", rootCmd, "log-format")
	bindFlag("host.binary", rootCmd, "blender")
	bindFlag("host.blend_file", rootCmd, "blend")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("anatomy-assets")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "anatomy-assets"))
		}
	}

	viper.SetEnvPrefix("ANATOMY_ASSETS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
