package domain

import (
	"context"
)

// Predictor is the engine boundary: a single synchronous call that never
// fails. Invalid input is signaled through the error-result convention on
// PredictionResults, not through an error return.
type Predictor interface {
	Predict(inputs PredictionInputs) PredictionResults
}

// SnapshotStore persists prediction snapshots. Implementations store and
// retrieve results verbatim and never recompute them.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	GetByID(ctx context.Context, id string) (*Snapshot, error)
	List(ctx context.Context, limit, offset int) ([]*Snapshot, error)
	Close() error
}

// ConfigManager provides access to application configuration
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetStorageConfig() *StorageConfig
	Validate() error
}
