// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anatomy-assets/internal/index"
	"github.com/pdiddy/anatomy-assets/internal/ontology"
	"github.com/pdiddy/anatomy-assets/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the searchable part index (store, search, export)",
	Long: `Index keeps the generated ontology in a local SQLite database with
FTS5 synonym search. Use subcommands to load the ontology, query it, or
export it.`,
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Load the ontology JSON into the index",
	Long: `Store reads the ontology JSON (default ../data/z-anatomy-ontology.json)
and replaces the index contents with its records.`,
	RunE: runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")

	records, err := ontology.LoadRecords(from)
	if err != nil {
		return err
	}

	store, err := index.NewStore(loadConfig().Index)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Store(context.Background(), records)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d parts (%d synonyms) into %s\n", len(records), n, store.Dir())
	return nil
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search parts by name or synonym",
	Long: `Search matches every word of the query against part synonyms, each
word also as a prefix. Results are ranked by synonym priority, then
relevance.

Use --mesh for an exact lookup by mesh name.`,
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	mesh, _ := cmd.Flags().GetString("mesh")
	system, _ := cmd.Flags().GetString("system")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := index.NewStore(loadConfig().Index)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if mesh != "" {
		rec, err := store.ByMesh(ctx, mesh)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rec)
		}
		fmt.Printf("%s  %s  %s  %s\n", rec.PartID, rec.Name, rec.System, rec.ModelPath)
		return nil
	}

	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query required: provide search words or --mesh")
	}

	hits, err := store.Search(ctx, query, index.SearchOptions{
		System:     types.AnatomySystem(strings.ToUpper(system)),
		MaxResults: limit,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(hits)
	}
	return formatSearchOutput(hits)
}

func formatSearchOutput(hits []index.Hit) error {
	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %-14s  %-24s  %s\n", "Rank", "Name", "System", "Matched", "Priority")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for i, h := range hits {
		name := h.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		matched := h.Matched
		if len(matched) > 24 {
			matched = matched[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %-14s  %-24s  %d\n", i+1, name, h.System, matched, h.Priority)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(hits))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the indexed parts to YAML or JSON",
	Long: `Export writes the indexed parts to parts.yaml or parts.json in the
index directory. --system limits the export to one anatomy system.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	system, _ := cmd.Flags().GetString("system")

	store, err := index.NewStore(loadConfig().Index)
	if err != nil {
		return err
	}
	defer store.Close()

	sys := types.AnatomySystem(strings.ToUpper(system))
	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), sys)
	case "json":
		path, err = store.ExportJSON(context.Background(), sys)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", index.DefaultDir, "directory holding parts.db and exports")
	indexCmd.PersistentFlags().Int("max-results", 20, "default number of search results")
	bindFlag("index.dir", indexCmd, "index-dir")
	bindFlag("index.max_results", indexCmd, "max-results")

	indexStoreCmd.Flags().String("from", filepath.Join(ontology.DefaultDataDir, ontology.JSONFile), "ontology JSON to load")

	indexSearchCmd.Flags().String("mesh", "", "exact lookup by mesh name")
	indexSearchCmd.Flags().String("system", "", "filter by anatomy system (e.g. SKELETAL)")
	indexSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexSearchCmd.Flags().Bool("json", false, "output results as JSON")

	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	indexExportCmd.Flags().String("system", "", "export one anatomy system only")

	// Wire subcommands.
	indexCmd.AddCommand(indexStoreCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
