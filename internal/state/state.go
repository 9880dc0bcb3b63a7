// Package state keeps a history of computed charts in a SQLite database.
package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joshharrison/beadpert/internal/pert"
)

// ErrNoSnapshots is returned by Latest on an empty history.
var ErrNoSnapshots = errors.New("no snapshots recorded")

// Snapshot summarises one analysis run.
type Snapshot struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Nodes           int       `json:"nodes"`
	Edges           int       `json:"edges"`
	HasCycle        bool      `json:"has_cycle"`
	CycleEdges      int       `json:"cycle_edges"`
	ProjectDuration float64   `json:"project_duration"`
	CriticalPath    []string  `json:"critical_path"`
}

// FromGraph captures the headline numbers of g.
func FromGraph(g *pert.Graph, at time.Time) Snapshot {
	return Snapshot{
		ID:              uuid.NewString(),
		CreatedAt:       at.UTC(),
		Nodes:           g.Len(),
		Edges:           len(g.Edges),
		HasCycle:        g.CycleDetection.HasCycle,
		CycleEdges:      len(g.CycleDetection.CycleEdges),
		ProjectDuration: g.ProjectDuration,
		CriticalPath:    g.CriticalPath,
	}
}

// timeLayout is fixed width so that created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id               TEXT PRIMARY KEY,
	created_at       TEXT NOT NULL,
	nodes            INTEGER NOT NULL,
	edges            INTEGER NOT NULL,
	has_cycle        INTEGER NOT NULL,
	cycle_edges      INTEGER NOT NULL,
	project_duration REAL NOT NULL,
	critical_path    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

// Store is the snapshot history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path. ":memory:"
// gives a throwaway in-memory store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records a snapshot.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	path, err := json.Marshal(orEmpty(snap.CriticalPath))
	if err != nil {
		return fmt.Errorf("marshal critical path: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at, nodes, edges, has_cycle, cycle_edges, project_duration, critical_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt.UTC().Format(timeLayout), snap.Nodes, snap.Edges,
		snap.HasCycle, snap.CycleEdges, snap.ProjectDuration, string(path))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// List returns up to limit snapshots, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Snapshot, error) {
	query := `SELECT id, created_at, nodes, edges, has_cycle, cycle_edges, project_duration, critical_path
		FROM snapshots ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			snap      Snapshot
			createdAt string
			path      string
		)
		if err := rows.Scan(&snap.ID, &createdAt, &snap.Nodes, &snap.Edges, &snap.HasCycle,
			&snap.CycleEdges, &snap.ProjectDuration, &path); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse snapshot time: %w", err)
		}
		if err := json.Unmarshal([]byte(path), &snap.CriticalPath); err != nil {
			return nil, fmt.Errorf("parse critical path: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Latest returns the most recent snapshot.
func (s *Store) Latest(ctx context.Context) (Snapshot, error) {
	snaps, err := s.List(ctx, 1)
	if err != nil {
		return Snapshot{}, err
	}
	if len(snaps) == 0 {
		return Snapshot{}, ErrNoSnapshots
	}
	return snaps[0], nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
