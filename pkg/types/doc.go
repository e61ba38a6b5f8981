// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the anatomy-assets pipeline:
// scene snapshots read from the host editor, the PartRecord ontology entries
// derived from them, and per-stage configuration.
package types
