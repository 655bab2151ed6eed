package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/domain/repository"
	"github.com/oceancolor-service/internal/pkg/errors"
)

func setupRepo(t *testing.T) repository.AnalysisRepository {
	t.Helper()

	db, err := New(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.EnsureSchema(context.Background()))

	return NewAnalysisRepository(db)
}

func floatPtr(v float64) *float64 { return &v }

func TestUpsert_InsertsThenOverwrites(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	err := repo.Upsert(ctx, domain.AnalysisRecord{
		Timestamp:     1700000000,
		Status:        string(domain.StatusThickCloud),
		CloudCoverage: floatPtr(0.85),
	})
	require.NoError(t, err)

	// Повторный анализ того же timestamp перезаписывает строку.
	err = repo.Upsert(ctx, domain.AnalysisRecord{
		Timestamp:     1700000000,
		Status:        string(domain.StatusCompleted),
		SeaBlueness:   floatPtr(0.42),
		CloudCoverage: floatPtr(0.10),
	})
	require.NoError(t, err)

	record, err := repo.GetByTimestamp(ctx, 1700000000)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), record.Status)
	require.NotNil(t, record.SeaBlueness)
	assert.InDelta(t, 0.42, *record.SeaBlueness, 1e-9)

	records, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGetByTimestamp_NotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetByTimestamp(context.Background(), 123)
	assert.ErrorIs(t, err, errors.ErrRecordNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	for _, ts := range []int64{1700000000, 1700001200, 1700000600} {
		require.NoError(t, repo.Upsert(ctx, domain.AnalysisRecord{
			Timestamp: ts,
			Status:    string(domain.StatusNight),
		}))
	}

	records, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1700001200), records[0].Timestamp)
	assert.Equal(t, int64(1700000600), records[1].Timestamp)
}

func TestProcessedTimestamps(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.AnalysisRecord{
		Timestamp: 1700000000,
		Status:    string(domain.StatusCompleted),
	}))
	require.NoError(t, repo.Upsert(ctx, domain.AnalysisRecord{
		Timestamp: 1700000600,
		Status:    string(domain.StatusNoData),
	}))

	processed, err := repo.ProcessedTimestamps(ctx)
	require.NoError(t, err)
	assert.Len(t, processed, 2)
	assert.Contains(t, processed, int64(1700000000))
	assert.Contains(t, processed, int64(1700000600))
}
