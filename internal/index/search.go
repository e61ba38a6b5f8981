// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

// SearchOptions holds parameters for a synonym search.
type SearchOptions struct {
	// System limits results to one anatomy system.
	System types.AnatomySystem

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Hit is a part matched by a search, with the synonym that ranked it.
type Hit struct {
	types.PartRecord
	Matched  string  `json:"matched" yaml:"matched"`
	Priority int     `json:"priority" yaml:"priority"`
	Score    float64 `json:"score" yaml:"score"`
}

// Search finds parts whose synonyms match every word of query. Each word
// also matches as a prefix. Parts are ranked by their best synonym
// priority, then by FTS relevance, then by stored order.
func (s *Store) Search(ctx context.Context, query string, opts SearchOptions) ([]Hit, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT p.rowid, p.part_id, p.name, p.system, p.model_path, p.mesh_name,
			syn.synonym, syn.priority, synonyms_fts.rank
		FROM synonyms_fts
		JOIN synonyms syn ON syn.rowid = synonyms_fts.rowid
		JOIN parts p ON p.rowid = syn.part_rowid
		WHERE synonyms_fts MATCH ?`)
	args = append(args, match)

	if opts.System != "" {
		qb.WriteString(` AND p.system = ?`)
		args = append(args, string(opts.System))
	}
	qb.WriteString(` ORDER BY syn.priority DESC, synonyms_fts.rank, p.seq`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	// Rows arrive best first, so the first row per part is its ranking row.
	seen := make(map[int64]bool)
	var (
		hits   []Hit
		rowids []int64
	)
	for rows.Next() {
		var (
			rowid  int64
			hit    Hit
			system string
		)
		if err := rows.Scan(&rowid, &hit.PartID, &hit.Name, &system, &hit.ModelPath, &hit.MeshName,
			&hit.Matched, &hit.Priority, &hit.Score); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		if seen[rowid] {
			continue
		}
		seen[rowid] = true
		hit.System = types.AnatomySystem(system)
		hits = append(hits, hit)
		rowids = append(rowids, rowid)
		if len(hits) == maxResults {
			break
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range hits {
		syns, err := s.synonymsFor(ctx, rowids[i])
		if err != nil {
			return nil, err
		}
		hits[i].Synonyms = syns
	}
	return hits, nil
}

// ftsQuery turns free text into an FTS5 query of quoted prefix terms, so
// punctuation in part names never reaches the FTS parser.
func ftsQuery(q string) string {
	words := strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	terms := make([]string, len(words))
	for i, w := range words {
		terms[i] = `"` + w + `"*`
	}
	return strings.Join(terms, " ")
}
