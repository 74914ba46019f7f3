package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivf-outcome-server/internal/domain"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func testSnapshot(id string, createdAt time.Time) *domain.Snapshot {
	return &domain.Snapshot{
		ID: id,
		Inputs: domain.PredictionInputs{
			Age:           32,
			AMHLevel:      2.5,
			EstrogenLevel: 2200,
			DiagnosisType: domain.UNEXPLAINED,
		},
		Results: domain.PredictionResults{
			ExpectedOocytes: domain.OocyteEstimate{
				Predicted:       15.98,
				Range:           domain.Range{Low: 9.4, High: 22.5},
				PercentileLabel: "60th to 75th percentile",
			},
			ConfidenceLevel: domain.HIGH,
			ClinicalNotes:   []string{"note"},
			References:      []string{"ref"},
		},
		CreatedAt: createdAt,
	}
}

func TestNewSQLiteStore_CreatesFileAndDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "predictions.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestSQLiteStore_SaveAndGetByID(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	snapshot := testSnapshot("snap-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.Save(ctx, snapshot))

	got, err := store.GetByID(ctx, "snap-1")
	require.NoError(t, err)

	assert.Equal(t, snapshot.ID, got.ID)
	assert.Equal(t, snapshot.Inputs, got.Inputs)
	assert.Equal(t, snapshot.Results, got.Results)
	assert.Equal(t, domain.HIGH, got.Results.ConfidenceLevel)
}

func TestSQLiteStore_GetByID_NotFound(t *testing.T) {
	store := createTestStore(t)

	_, err := store.GetByID(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_List_NewestFirst(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 5; i++ {
		snapshot := testSnapshot(fmt.Sprintf("snap-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Save(ctx, snapshot))
	}

	snapshots, err := store.List(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, snapshots, 3)

	assert.Equal(t, "snap-4", snapshots[0].ID)
	assert.Equal(t, "snap-3", snapshots[1].ID)
	assert.Equal(t, "snap-2", snapshots[2].ID)

	offsetPage, err := store.List(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, offsetPage, 2)
	assert.Equal(t, "snap-1", offsetPage[0].ID)
}

func TestSQLiteStore_List_Empty(t *testing.T) {
	store := createTestStore(t)

	snapshots, err := store.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestSQLiteStore_Save_DuplicateID(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	snapshot := testSnapshot("snap-dup", time.Now().UTC())
	require.NoError(t, store.Save(ctx, snapshot))

	err := store.Save(ctx, snapshot)
	assert.Error(t, err, "primary key violation expected")
}
