// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package host drives the 3D editor that owns the source scene. The editor
// runs headless with an embedded Python script; everything the scripts
// produce is exchanged through JSON files.
package host

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const binBlender = "blender"

// macOS installs Blender as an app bundle that is not on PATH.
const binBlenderMacOS = "/Applications/Blender.app/Contents/MacOS/Blender"

//go:embed scripts/*.py
var scripts embed.FS

// Script is a Python program run inside the editor.
type Script string

const (
	ScriptDumpScene Script = "dump_scene.py"
	ScriptExport    Script = "export_collections.py"
)

// Runtime runs scripts inside the host editor.
type Runtime interface {
	// Name returns the editor binary in use.
	Name() string

	// Available reports whether the binary exists and answers --version.
	Available(ctx context.Context) bool

	// RunScript opens blendFile in background mode and runs script with
	// args passed after "--". Editor output is copied to out.
	RunScript(ctx context.Context, blendFile string, script Script, args []string, out io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stdout
	return cmd.Run()
}

// blender implements Runtime for a Blender binary.
type blender struct {
	bin  string
	exec executor
	log  *zap.Logger
}

func (b *blender) Name() string { return b.bin }

func (b *blender) Available(ctx context.Context) bool {
	if _, err := b.exec.LookPath(b.bin); err != nil {
		return false
	}
	return b.exec.RunSilent(ctx, b.bin, "--version") == nil
}

func (b *blender) RunScript(ctx context.Context, blendFile string, script Script, args []string, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	dir, err := os.MkdirTemp("", "anatomy-assets-host-")
	if err != nil {
		return fmt.Errorf("creating script directory: %w", err)
	}
	defer os.RemoveAll(dir)

	scriptPath, err := materialize(dir, script)
	if err != nil {
		return err
	}

	cmdArgs := []string{"--background", blendFile, "--python-exit-code", "1", "--python", scriptPath, "--"}
	cmdArgs = append(cmdArgs, args...)

	b.log.Debug("running host script",
		zap.String("bin", b.bin),
		zap.String("script", string(script)),
		zap.String("args", strings.Join(cmdArgs, " ")))

	start := time.Now()
	if err := b.exec.RunPiped(ctx, b.bin, cmdArgs, out); err != nil {
		return fmt.Errorf("running %s with %s on %s: %w", b.bin, script, blendFile, err)
	}
	b.log.Info("host script finished",
		zap.String("script", string(script)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// materialize writes an embedded script into dir and returns its path.
func materialize(dir string, script Script) (string, error) {
	src, err := scripts.ReadFile("scripts/" + string(script))
	if err != nil {
		return "", fmt.Errorf("loading embedded script %s: %w", script, err)
	}
	path := filepath.Join(dir, string(script))
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return "", fmt.Errorf("writing script %s: %w", path, err)
	}
	return path, nil
}

func newBlender(bin string, exec executor, log *zap.Logger) *blender {
	if log == nil {
		log = zap.NewNop()
	}
	return &blender{bin: bin, exec: exec, log: log}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries the configured binary first, then "blender" on PATH,
// then the macOS app bundle. Returns an error if none responds.
func DetectRuntime(ctx context.Context, binary string, log *zap.Logger) (Runtime, error) {
	return detectRuntime(ctx, defaultExec, binary, log)
}

func detectRuntime(ctx context.Context, exec executor, binary string, log *zap.Logger) (Runtime, error) {
	var candidates []string
	if binary != "" {
		candidates = append(candidates, binary)
	}
	candidates = append(candidates, binBlender, binBlenderMacOS)

	seen := make(map[string]bool)
	for _, bin := range candidates {
		if seen[bin] {
			continue
		}
		seen[bin] = true

		rt := newBlender(bin, exec, log)
		if rt.Available(ctx) {
			return rt, nil
		}
	}

	return nil, fmt.Errorf("no host editor available: tried %s", strings.Join(candidates, ", "))
}
