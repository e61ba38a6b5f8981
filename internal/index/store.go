// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps the anatomy ontology in SQLite so the viewer's
// lookups (by mesh name and by free-text synonym) run against one file.
//
// Synonym search needs FTS5: build and test with -tags sqlite_fts5.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

const (
	// DefaultDir holds parts.db and the export files.
	DefaultDir = "data/index"

	dbFile = "parts.db"

	defaultMaxResults = 20
)

// ErrNotFound is returned when a lookup matches no part.
var ErrNotFound = errors.New("part not found")

// Store manages the part index database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates dir/parts.db and its schema.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS parts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			seq INTEGER NOT NULL,
			part_id TEXT NOT NULL,
			name TEXT NOT NULL,
			system TEXT NOT NULL,
			model_path TEXT NOT NULL,
			mesh_name TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parts_mesh_name ON parts(mesh_name)`,
		`CREATE INDEX IF NOT EXISTS idx_parts_system ON parts(system)`,
		`CREATE TABLE IF NOT EXISTS synonyms (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			part_rowid INTEGER NOT NULL REFERENCES parts(rowid),
			synonym TEXT NOT NULL,
			language TEXT NOT NULL,
			priority INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_synonyms_part ON synonyms(part_rowid)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='synonyms_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE synonyms_fts USING fts5(synonym, content=synonyms, content_rowid=rowid)`,
		`CREATE TRIGGER synonyms_ai AFTER INSERT ON synonyms BEGIN
			INSERT INTO synonyms_fts(rowid, synonym) VALUES (new.rowid, new.synonym);
		END`,
		`CREATE TRIGGER synonyms_ad AFTER DELETE ON synonyms BEGIN
			INSERT INTO synonyms_fts(synonyms_fts, rowid, synonym) VALUES('delete', old.rowid, old.synonym);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// Store replaces the index contents with records in one transaction and
// returns the number of synonyms written. Record order is kept.
func (s *Store) Store(ctx context.Context, records []types.PartRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM synonyms`); err != nil {
		return 0, fmt.Errorf("clearing synonyms: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM parts`); err != nil {
		return 0, fmt.Errorf("clearing parts: %w", err)
	}

	partStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO parts (seq, part_id, name, system, model_path, mesh_name) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing part insert: %w", err)
	}
	defer partStmt.Close()

	synStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO synonyms (part_rowid, synonym, language, priority) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing synonym insert: %w", err)
	}
	defer synStmt.Close()

	synonyms := 0
	for i, r := range records {
		res, err := partStmt.ExecContext(ctx, i, r.PartID, r.Name, string(r.System), r.ModelPath, r.MeshName)
		if err != nil {
			return 0, fmt.Errorf("inserting part %q: %w", r.Name, err)
		}
		rowid, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading rowid for %q: %w", r.Name, err)
		}
		for _, syn := range r.Synonyms {
			if _, err := synStmt.ExecContext(ctx, rowid, syn.Synonym, syn.Language, syn.Priority); err != nil {
				return 0, fmt.Errorf("inserting synonym %q: %w", syn.Synonym, err)
			}
			synonyms++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing index: %w", err)
	}
	return synonyms, nil
}

// Count returns the number of indexed parts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM parts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting parts: %w", err)
	}
	return n, nil
}

// ByMesh returns the part whose mesh is named meshName.
func (s *Store) ByMesh(ctx context.Context, meshName string) (types.PartRecord, error) {
	recs, err := s.queryParts(ctx,
		`SELECT rowid, part_id, name, system, model_path, mesh_name FROM parts
		 WHERE mesh_name = ? ORDER BY seq LIMIT 1`, meshName)
	if err != nil {
		return types.PartRecord{}, err
	}
	if len(recs) == 0 {
		return types.PartRecord{}, fmt.Errorf("mesh %q: %w", meshName, ErrNotFound)
	}
	return recs[0].record, nil
}

// Records returns every indexed part in stored order, optionally limited
// to one system.
func (s *Store) Records(ctx context.Context, system types.AnatomySystem) ([]types.PartRecord, error) {
	query := `SELECT rowid, part_id, name, system, model_path, mesh_name FROM parts`
	var args []any
	if system != "" {
		query += ` WHERE system = ?`
		args = append(args, string(system))
	}
	query += ` ORDER BY seq`

	rows, err := s.queryParts(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := make([]types.PartRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record
	}
	return out, nil
}

type partRow struct {
	rowid  int64
	record types.PartRecord
}

// queryParts runs a parts query and attaches each part's synonyms.
func (s *Store) queryParts(ctx context.Context, query string, args ...any) ([]partRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying parts: %w", err)
	}

	var out []partRow
	for rows.Next() {
		var (
			pr     partRow
			system string
		)
		if err := rows.Scan(&pr.rowid, &pr.record.PartID, &pr.record.Name, &system,
			&pr.record.ModelPath, &pr.record.MeshName); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning part: %w", err)
		}
		pr.record.System = types.AnatomySystem(system)
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range out {
		syns, err := s.synonymsFor(ctx, out[i].rowid)
		if err != nil {
			return nil, err
		}
		out[i].record.Synonyms = syns
	}
	return out, nil
}

func (s *Store) synonymsFor(ctx context.Context, partRowid int64) ([]types.Synonym, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT synonym, language, priority FROM synonyms WHERE part_rowid = ? ORDER BY rowid`, partRowid)
	if err != nil {
		return nil, fmt.Errorf("querying synonyms: %w", err)
	}
	defer rows.Close()

	syns := []types.Synonym{}
	for rows.Next() {
		var syn types.Synonym
		if err := rows.Scan(&syn.Synonym, &syn.Language, &syn.Priority); err != nil {
			return nil, fmt.Errorf("scanning synonym: %w", err)
		}
		syns = append(syns, syn)
	}
	return syns, rows.Err()
}
