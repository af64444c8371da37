// Package history records completed vectorization runs in a local SQLite
// database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("history: store closed")

// Stage names a server step whose result was applied.
type Stage string

// Recorded stages.
const (
	StageUpload          Stage = "upload"
	StagePreprocess      Stage = "preprocess"
	StageGraph           Stage = "graph"
	StageUpdateGraph     Stage = "update_graph"
	StageVectorize       Stage = "vectorize"
	StageUpdateVectorize Stage = "update_vectorize"
	StageExport          Stage = "export"
)

// Run is one applied server result.
type Run struct {
	ID            int64
	Session       uuid.UUID
	Sample        string
	Stage         Stage
	Nodes         int
	Edges         int
	Curves        int
	Intersections int
	CreatedAt     time.Time
}

// Store is a run history backed by SQLite.
type Store struct {
	db      *sql.DB
	session uuid.UUID
}

// Open opens or creates the database at path. Use ":memory:" for a
// throwaway store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, session: uuid.New()}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		sample TEXT NOT NULL,
		stage TEXT NOT NULL,
		nodes INTEGER NOT NULL DEFAULT 0,
		edges INTEGER NOT NULL DEFAULT 0,
		curves INTEGER NOT NULL DEFAULT 0,
		intersections INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Session returns the identifier stamped on every run recorded through
// this store.
func (s *Store) Session() uuid.UUID {
	return s.session
}

// Record inserts r, stamping the session and time, and returns its id.
func (s *Store) Record(ctx context.Context, r Run) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (session, sample, stage, nodes, edges, curves, intersections, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.session.String(), r.Sample, string(r.Stage),
		r.Nodes, r.Edges, r.Curves, r.Intersections, r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("history: record: %w", err)
	}
	return res.LastInsertId()
}

// List returns the newest runs first, at most limit (all when limit <= 0).
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session, sample, stage, nodes, edges, curves, intersections, created_at
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			session string
			stage   string
			created int64
		)
		if err := rows.Scan(&r.ID, &session, &r.Sample, &stage,
			&r.Nodes, &r.Edges, &r.Curves, &r.Intersections, &created); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		r.Session, err = uuid.Parse(session)
		if err != nil {
			return nil, fmt.Errorf("history: run %d: %w", r.ID, err)
		}
		r.Stage = Stage(stage)
		r.CreatedAt = time.UnixMilli(created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Clear deletes every recorded run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("history: clear: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
