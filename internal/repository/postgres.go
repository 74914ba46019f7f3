package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/ivf-outcome-server/internal/domain"
)

// PostgresStore persists prediction snapshots in PostgreSQL. The schema is
// managed by golang-migrate (see migrations/).
type PostgresStore struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewPostgresStore creates a new Postgres snapshot store
func NewPostgresStore(db *pgxpool.Pool, logger *logrus.Logger) *PostgresStore {
	return &PostgresStore{
		db:  db,
		log: logger,
	}
}

// Save inserts a snapshot. Inputs and results are stored verbatim as JSON;
// the store never recomputes them.
func (s *PostgresStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	inputs, err := json.Marshal(snapshot.Inputs)
	if err != nil {
		return fmt.Errorf("marshaling inputs: %w", err)
	}
	results, err := json.Marshal(snapshot.Results)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	query := `
		INSERT INTO prediction_snapshots (id, inputs, results, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err = s.db.Exec(ctx, query, snapshot.ID, inputs, results, snapshot.CreatedAt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"snapshot_id": snapshot.ID,
			"error":       err,
		}).Error("Failed to save snapshot")
		return fmt.Errorf("saving snapshot: %w", err)
	}

	s.log.WithField("snapshot_id", snapshot.ID).Info("Snapshot saved")
	return nil
}

// GetByID retrieves a snapshot by its ID
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	query := `
		SELECT id, inputs, results, created_at
		FROM prediction_snapshots
		WHERE id = $1`

	var snapshot domain.Snapshot
	var inputs, results []byte

	err := s.db.QueryRow(ctx, query, id).Scan(&snapshot.ID, &inputs, &results, &snapshot.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("snapshot %s: %w", id, domain.ErrNotFound)
		}
		s.log.WithFields(logrus.Fields{
			"snapshot_id": id,
			"error":       err,
		}).Error("Failed to get snapshot")
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}

	if err := json.Unmarshal(inputs, &snapshot.Inputs); err != nil {
		return nil, fmt.Errorf("unmarshaling inputs: %w", err)
	}
	if err := json.Unmarshal(results, &snapshot.Results); err != nil {
		return nil, fmt.Errorf("unmarshaling results: %w", err)
	}

	return &snapshot, nil
}

// List retrieves snapshots ordered newest first
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*domain.Snapshot, error) {
	query := `
		SELECT id, inputs, results, created_at
		FROM prediction_snapshots
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		s.log.WithError(err).Error("Failed to list snapshots")
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.Snapshot
	for rows.Next() {
		var snapshot domain.Snapshot
		var inputs, results []byte

		if err := rows.Scan(&snapshot.ID, &inputs, &results, &snapshot.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		if err := json.Unmarshal(inputs, &snapshot.Inputs); err != nil {
			return nil, fmt.Errorf("unmarshaling inputs: %w", err)
		}
		if err := json.Unmarshal(results, &snapshot.Results); err != nil {
			return nil, fmt.Errorf("unmarshaling results: %w", err)
		}

		snapshots = append(snapshots, &snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot rows: %w", err)
	}

	return snapshots, nil
}

// Close is a no-op; the pool is owned by the database package
func (s *PostgresStore) Close() error {
	return nil
}
