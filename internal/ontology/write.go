// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

const (
	// DefaultDataDir is where the ontology files land, relative to the
	// working directory of the run.
	DefaultDataDir = "../data"

	JSONFile       = "z-anatomy-ontology.json"
	TypeScriptFile = "z-anatomy-ontology.ts"

	tsHeader = "// Auto-generated Z-Anatomy ontology\n" +
		"// Generated from Z-Anatomy Blender file\n\n" +
		"import { AnatomySystem } from '../src/types/anatomy';\n\n" +
		"export const zAnatomyOntology = "
)

// MarshalRecords encodes records the way the consuming app's checked-in
// data was generated: two-space indent, no HTML escaping, non-ASCII as
// lowercase \uXXXX escapes (surrogate pairs above the BMP), and no
// trailing newline.
func MarshalRecords(records []types.PartRecord) ([]byte, error) {
	if records == nil {
		records = []types.PartRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("marshaling ontology: %w", err)
	}
	return escapeNonASCII(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// escapeNonASCII rewrites DEL and every multi-byte rune as a JSON \u
// escape. Only string contents can hold such bytes in encoder output, so a
// plain byte scan is safe.
func escapeNonASCII(data []byte) []byte {
	if !hasNonASCII(data) {
		return data
	}
	out := make([]byte, 0, len(data)+len(data)/4)
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r < asciiDEL {
			out = append(out, byte(r))
			continue
		}
		if r > 0xffff {
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}

const asciiDEL = 0x7f

func hasNonASCII(data []byte) bool {
	for _, b := range data {
		if b >= asciiDEL {
			return true
		}
	}
	return false
}

// WriteJSON writes records to w as the structured ontology file.
func WriteJSON(w io.Writer, records []types.PartRecord) error {
	data, err := MarshalRecords(records)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteTypeScript writes records to w as an importable TypeScript module
// exporting zAnatomyOntology.
func WriteTypeScript(w io.Writer, records []types.PartRecord) error {
	data, err := MarshalRecords(records)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.Grow(len(tsHeader) + len(data) + 2)
	buf.WriteString(tsHeader)
	buf.Write(data)
	buf.WriteString(";\n")
	_, err = w.Write(buf.Bytes())
	return err
}

// Paths holds the output file locations of a Save call.
type Paths struct {
	JSON       string
	TypeScript string
}

// Save writes both ontology files into dir. Both are staged as temporary
// siblings before either is renamed into place, so a failed run leaves the
// previous pair untouched. The TypeScript module is renamed first since the
// viewer imports it.
func Save(dir string, records []types.PartRecord) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("creating data directory: %w", err)
	}

	paths := Paths{
		JSON:       filepath.Join(dir, JSONFile),
		TypeScript: filepath.Join(dir, TypeScriptFile),
	}

	var jsonBuf, tsBuf bytes.Buffer
	if err := WriteJSON(&jsonBuf, records); err != nil {
		return Paths{}, err
	}
	if err := WriteTypeScript(&tsBuf, records); err != nil {
		return Paths{}, err
	}

	tsTmp, err := stageFile(paths.TypeScript, tsBuf.Bytes())
	if err != nil {
		return Paths{}, err
	}
	jsonTmp, err := stageFile(paths.JSON, jsonBuf.Bytes())
	if err != nil {
		os.Remove(tsTmp)
		return Paths{}, err
	}

	if err := os.Rename(tsTmp, paths.TypeScript); err != nil {
		os.Remove(tsTmp)
		os.Remove(jsonTmp)
		return Paths{}, fmt.Errorf("renaming %s: %w", paths.TypeScript, err)
	}
	if err := os.Rename(jsonTmp, paths.JSON); err != nil {
		os.Remove(jsonTmp)
		return Paths{}, fmt.Errorf("renaming %s: %w", paths.JSON, err)
	}
	return paths, nil
}

// stageFile writes data to a temporary sibling of path and returns its name.
func stageFile(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("setting mode on %s: %w", path, err)
	}
	return tmp, nil
}

// LoadRecords reads a structured ontology file written by Save.
func LoadRecords(path string) ([]types.PartRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ontology %s: %w", path, err)
	}
	var records []types.PartRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing ontology %s: %w", path, err)
	}
	return records, nil
}
