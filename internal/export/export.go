// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/pdiddy/anatomy-assets/internal/host"
)

// Status is the outcome of a single job.
type Status string

const (
	StatusExported Status = "exported"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// JobResult reports one job. Meshes comes from the written file, not
// from the editor.
type JobResult struct {
	Name      string
	Output    string
	Status    Status
	Err       string
	SizeBytes int64
	Meshes    int
}

// Summary holds counts from an export run.
type Summary struct {
	Exported int
	Skipped  int
	Failed   int
	Bytes    int64
}

// hostResult is one entry of the results file the editor script writes.
type hostResult struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Error  string `json:"error"`
	Meshes int    `json:"meshes"`
}

// Run executes plan in a single editor session on blendFile. A failing
// job does not stop the run; it is reported in the results. The returned
// error covers only failures of the run itself.
func Run(ctx context.Context, rt host.Runtime, blendFile string, plan Plan, w io.Writer, log *zap.Logger) ([]JobResult, Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dir, err := os.MkdirTemp("", "anatomy-assets-export-")
	if err != nil {
		return nil, Summary{}, fmt.Errorf("creating plan directory: %w", err)
	}
	defer os.RemoveAll(dir)

	planPath := filepath.Join(dir, "plan.json")
	resultsPath := filepath.Join(dir, "results.json")

	data, err := json.Marshal(plan)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("marshaling plan: %w", err)
	}
	if err := os.WriteFile(planPath, data, 0o644); err != nil {
		return nil, Summary{}, fmt.Errorf("writing plan: %w", err)
	}

	fmt.Fprintf(w, "exporting %d files from %s\n", len(plan.Jobs), blendFile)
	log.Info("export started", zap.String("blend", blendFile), zap.Int("jobs", len(plan.Jobs)))

	if err := rt.RunScript(ctx, blendFile, host.ScriptExport, []string{planPath, resultsPath}, nil); err != nil {
		return nil, Summary{}, err
	}

	reported, err := readResults(resultsPath)
	if err != nil {
		return nil, Summary{}, err
	}

	var results []JobResult
	var sum Summary
	for _, job := range plan.Jobs {
		r := JobResult{Name: job.Name, Output: job.Output}
		hr, ok := reported[job.Name]
		switch {
		case !ok:
			r.Status = StatusFailed
			r.Err = "no result from host"
		case hr.Status == StatusExported:
			r.SizeBytes, r.Meshes, err = verifyGLB(job.Output)
			if err != nil {
				r.Status = StatusFailed
				r.Err = err.Error()
			} else {
				r.Status = StatusExported
			}
		default:
			r.Status = hr.Status
			r.Err = hr.Error
		}

		switch r.Status {
		case StatusExported:
			sum.Exported++
			sum.Bytes += r.SizeBytes
			fmt.Fprintf(w, "  exported %s (%.1f MB, %d meshes)\n", r.Name, float64(r.SizeBytes)/(1024*1024), r.Meshes)
		case StatusSkipped:
			sum.Skipped++
			fmt.Fprintf(w, "  skipped %s: %s\n", r.Name, r.Err)
		default:
			r.Status = StatusFailed
			sum.Failed++
			fmt.Fprintf(w, "  failed %s: %s\n", r.Name, r.Err)
			log.Warn("export job failed", zap.String("job", r.Name), zap.String("error", r.Err))
		}
		results = append(results, r)
	}

	return results, sum, nil
}

func readResults(path string) (map[string]hostResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export results: %w", err)
	}
	var list []hostResult
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing export results: %w", err)
	}
	out := make(map[string]hostResult, len(list))
	for _, r := range list {
		out[r.Name] = r
	}
	return out, nil
}

// verifyGLB checks that path is a readable glTF binary with at least one
// mesh, and returns its size and mesh count.
func verifyGLB(path string) (int64, int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return info.Size(), 0, fmt.Errorf("opening %s: %w", path, err)
	}
	if len(doc.Meshes) == 0 {
		return info.Size(), 0, fmt.Errorf("%s contains no meshes", path)
	}
	return info.Size(), len(doc.Meshes), nil
}

// PrintSummary writes the run totals to w.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\nexport complete: %d exported, %d skipped, %d failed (%.1f MB)\n",
		s.Exported, s.Skipped, s.Failed, float64(s.Bytes)/(1024*1024))
}
