package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ivf-outcome-server/internal/domain"
)

// SQLiteStore persists prediction snapshots in a local SQLite database.
// It creates the database file and schema if they don't exist, making it the
// zero-setup default store.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite snapshot store
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// createSchema creates the snapshot table and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS prediction_snapshots (
		id TEXT PRIMARY KEY,
		inputs TEXT NOT NULL,
		results TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON prediction_snapshots(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Save inserts a snapshot
func (s *SQLiteStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	inputs, err := json.Marshal(snapshot.Inputs)
	if err != nil {
		return fmt.Errorf("marshaling inputs: %w", err)
	}
	results, err := json.Marshal(snapshot.Results)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO prediction_snapshots (id, inputs, results, created_at) VALUES (?, ?, ?, ?)",
		snapshot.ID, string(inputs), string(results), snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	return nil
}

// GetByID retrieves a snapshot by its ID
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	var inputs, results string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, inputs, results, created_at FROM prediction_snapshots WHERE id = ?", id,
	).Scan(&snapshot.ID, &inputs, &results, &snapshot.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(inputs), &snapshot.Inputs); err != nil {
		return nil, fmt.Errorf("unmarshaling inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(results), &snapshot.Results); err != nil {
		return nil, fmt.Errorf("unmarshaling results: %w", err)
	}

	return &snapshot, nil
}

// List retrieves snapshots ordered newest first
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, inputs, results, created_at FROM prediction_snapshots ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.Snapshot
	for rows.Next() {
		var snapshot domain.Snapshot
		var inputs, results string

		if err := rows.Scan(&snapshot.ID, &inputs, &results, &snapshot.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		if err := json.Unmarshal([]byte(inputs), &snapshot.Inputs); err != nil {
			return nil, fmt.Errorf("unmarshaling inputs: %w", err)
		}
		if err := json.Unmarshal([]byte(results), &snapshot.Results); err != nil {
			return nil, fmt.Errorf("unmarshaling results: %w", err)
		}

		snapshots = append(snapshots, &snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot rows: %w", err)
	}

	return snapshots, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
