// Package store persists the refinement cache and per-run records in a
// local SQLite database. The cache lets a re-run of the same transcript
// with the same model skip the model calls entirely.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// RunRecord is one completed (or partial) pipeline run over a file.
type RunRecord struct {
	ID          string
	InputFile   string
	OutputFile  string
	Model       string
	Chunks      int
	Corrections int
	Fallbacks   int
	InputChars  int
	OutputChars int
	Degraded    bool
	Incomplete  bool
	ElapsedMs   int64
	CreatedAt   time.Time
}

// CacheEntry is one cached chunk refinement.
type CacheEntry struct {
	SourceHash  string
	Model       string
	RefinedText string
	UsageCount  int
	LastUsed    time.Time
	CreatedAt   time.Time
}

// CacheStats summarizes the chunk cache for the CLI.
type CacheStats struct {
	Entries    int
	Runs       int
	TotalHits  int
	OldestUsed time.Time
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS refinement_runs (
		id TEXT PRIMARY KEY,
		input_file TEXT NOT NULL,
		output_file TEXT NOT NULL,
		model TEXT NOT NULL,
		chunks INTEGER DEFAULT 0,
		corrections INTEGER DEFAULT 0,
		fallbacks INTEGER DEFAULT 0,
		input_chars INTEGER DEFAULT 0,
		output_chars INTEGER DEFAULT 0,
		degraded BOOLEAN DEFAULT FALSE,
		incomplete BOOLEAN DEFAULT FALSE,
		elapsed_ms INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- chunk_cache stores already-seen chunk refinements keyed by the
	-- sha256 of the chunk source text and the model that produced them.
	CREATE TABLE IF NOT EXISTS chunk_cache (
		source_hash TEXT NOT NULL,
		model TEXT NOT NULL,
		refined_text TEXT NOT NULL,
		usage_count INTEGER DEFAULT 0,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (source_hash, model)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetChunk returns the cached refinement for a chunk hash and model, if
// present, bumping its usage counters. Satisfies refiner.Cache.
func (s *Store) GetChunk(ctx context.Context, sourceHash, model string) (string, bool, error) {
	var refined string
	err := s.db.QueryRowContext(ctx,
		`SELECT refined_text FROM chunk_cache WHERE source_hash = ? AND model = ?`,
		sourceHash, model).Scan(&refined)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE chunk_cache SET usage_count = usage_count + 1, last_used = CURRENT_TIMESTAMP
		 WHERE source_hash = ? AND model = ?`, sourceHash, model)
	if err != nil {
		return "", false, err
	}
	return refined, true, nil
}

// SaveChunk stores a successful chunk refinement, replacing any previous
// entry for the same hash and model. Satisfies refiner.Cache.
func (s *Store) SaveChunk(ctx context.Context, sourceHash, model, refinedText string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chunk_cache (source_hash, model, refined_text)
		 VALUES (?, ?, ?)
		 ON CONFLICT(source_hash, model) DO UPDATE SET
			refined_text = excluded.refined_text,
			last_used = CURRENT_TIMESTAMP`,
		sourceHash, model, refinedText)
	return err
}

// SaveRun records a completed pipeline run and returns its generated ID.
func (s *Store) SaveRun(ctx context.Context, rec RunRecord) (string, error) {
	id := rec.ID
	if id == "" {
		id = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO refinement_runs
			(id, input_file, output_file, model, chunks, corrections, fallbacks,
			 input_chars, output_chars, degraded, incomplete, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.InputFile, rec.OutputFile, rec.Model, rec.Chunks, rec.Corrections,
		rec.Fallbacks, rec.InputChars, rec.OutputChars, rec.Degraded, rec.Incomplete,
		rec.ElapsedMs)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_file, output_file, model, chunks, corrections, fallbacks,
			input_chars, output_chars, degraded, incomplete, elapsed_ms, created_at
		 FROM refinement_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.InputFile, &r.OutputFile, &r.Model, &r.Chunks,
			&r.Corrections, &r.Fallbacks, &r.InputChars, &r.OutputChars, &r.Degraded,
			&r.Incomplete, &r.ElapsedMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListCache returns every cache entry, most recently used first.
func (s *Store) ListCache(ctx context.Context) ([]CacheEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_hash, model, refined_text, usage_count, last_used, created_at
		 FROM chunk_cache ORDER BY last_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []CacheEntry
	for rows.Next() {
		var e CacheEntry
		if err := rows.Scan(&e.SourceHash, &e.Model, &e.RefinedText, &e.UsageCount,
			&e.LastUsed, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearCache removes all cached chunk refinements and returns the count.
func (s *Store) ClearCache(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chunk_cache`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats summarizes the cache and run history.
func (s *Store) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(usage_count), 0) FROM chunk_cache`).
		Scan(&stats.Entries, &stats.TotalHits); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM refinement_runs`).Scan(&stats.Runs); err != nil {
		return nil, err
	}
	if stats.Entries > 0 {
		if err := s.db.QueryRowContext(ctx,
			// MIN() strips the declared TIMESTAMP type, leaving the driver
			// unable to return a time.Time; select the column directly.
			`SELECT last_used FROM chunk_cache ORDER BY last_used ASC LIMIT 1`).Scan(&stats.OldestUsed); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
