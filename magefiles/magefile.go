//go:build mage

// Package main contains Mage build targets for anatomy-assets developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"data/index",
	extractDir,
	"public/models/skeleton",
	"public/models/muscular",
	"public/models/cardiovascular",
	"public/models/nervous",
	"public/models/respiratory",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "anatomy-assets"
	cmdPkg  = "./cmd/anatomy-assets"

	// The part index uses SQLite FTS5, which go-sqlite3 only compiles in
	// behind this tag.
	buildTags = "sqlite_fts5"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-tags", buildTags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the build tags the index needs.
func Test() error {
	return sh.RunV("go", "test", "-tags", buildTags, "./...")
}

// extractDir is the working directory for ontology extraction. The CLI
// writes its ontology files to ../data, so running it here puts them in
// the repository's data/ directory.
const extractDir = "scripts"

// configFile is the project config the CLI reads from its working directory.
const configFile = "anatomy-assets.yaml"

// Ontology regenerates data/z-anatomy-ontology.{json,ts} from the blend
// file and reloads the part index.
func Ontology() error {
	mg.Deps(Init, Build)

	bin, err := filepath.Abs(filepath.Join(binDir, binName))
	if err != nil {
		return err
	}
	args := []string{"ontology", "extract"}
	blend := os.Getenv("ANATOMY_ASSETS_HOST_BLEND_FILE")
	if blend == "" {
		blend = "Startup.blend"
	}
	if blend, err = filepath.Abs(blend); err != nil {
		return err
	}
	args = append(args, "--blend", blend)
	if _, err := os.Stat(configFile); err == nil {
		cfg, err := filepath.Abs(configFile)
		if err != nil {
			return err
		}
		args = append(args, "--config", cfg)
	}

	cmd := exec.Command(bin, args...)
	cmd.Dir = extractDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ontology extract: %w", err)
	}

	return sh.RunV(bin, "index", "store", "--from", filepath.Join("data", "z-anatomy-ontology.json"))
}

// Models exports the main system GLB files.
func Models() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "export")
}

// treeStats holds the counts Stats reports.
type treeStats struct {
	prodLines int
	testLines int
	docWords  int
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	var st treeStats
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return skipDir(path, d.Name())
		}
		switch ext := filepath.Ext(path); {
		case ext == ".go":
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			n := nonBlankLines(data)
			if strings.HasSuffix(path, "_test.go") {
				st.testLines += n
			} else {
				st.prodLines += n
			}
		case ext == ".md" || ext == ".yaml" || ext == ".yml":
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			st.docWords += len(bytes.Fields(data))
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", st.prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", st.testLines)
	fmt.Printf("Words (documentation):           %d\n", st.docWords)
	return nil
}

// skipDir skips directories the go tool ignores, such as _examples and .git.
func skipDir(path, name string) error {
	if path != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
		return filepath.SkipDir
	}
	return nil
}

func nonBlankLines(data []byte) int {
	n := 0
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
