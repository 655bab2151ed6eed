package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/domain/repository"
	"github.com/oceancolor-service/internal/pkg/errors"
)

type analysisRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAnalysisRepository создает репозиторий результатов анализа поверх PostgreSQL.
func NewAnalysisRepository(db *DB) repository.AnalysisRepository {
	return &analysisRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// EnsureSchema создаёт таблицу результатов, если её ещё нет.
func (db *DB) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS analyses (
			id BIGSERIAL PRIMARY KEY,
			timestamp BIGINT NOT NULL UNIQUE,
			status TEXT NOT NULL,
			sea_blueness DOUBLE PRECISION,
			cloud_coverage DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses (timestamp DESC);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.logger.Error("Failed to ensure schema", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *analysisRepository) Upsert(ctx context.Context, record domain.AnalysisRecord) error {
	query := `
		INSERT INTO analyses (timestamp, status, sea_blueness, cloud_coverage)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (timestamp) DO UPDATE SET
			status = EXCLUDED.status,
			sea_blueness = EXCLUDED.sea_blueness,
			cloud_coverage = EXCLUDED.cloud_coverage,
			updated_at = now()
	`

	_, err := r.db.ExecContext(ctx, query,
		record.Timestamp, record.Status, record.SeaBlueness, record.CloudCoverage)
	if err != nil {
		r.logger.Error("Failed to upsert analysis",
			zap.Int64("timestamp", record.Timestamp),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *analysisRepository) GetByTimestamp(ctx context.Context, timestamp int64) (*domain.AnalysisRecord, error) {
	query := `
		SELECT id, timestamp, status, sea_blueness, cloud_coverage, created_at, updated_at
		FROM analyses
		WHERE timestamp = $1
	`

	var record domain.AnalysisRecord
	err := r.db.GetContext(ctx, &record, query, timestamp)
	if err == sql.ErrNoRows {
		return nil, errors.ErrRecordNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get analysis",
			zap.Int64("timestamp", timestamp),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &record, nil
}

func (r *analysisRepository) List(ctx context.Context, limit int) ([]domain.AnalysisRecord, error) {
	query := `
		SELECT id, timestamp, status, sea_blueness, cloud_coverage, created_at, updated_at
		FROM analyses
		ORDER BY timestamp DESC
		LIMIT $1
	`

	records := []domain.AnalysisRecord{}
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		r.logger.Error("Failed to list analyses", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return records, nil
}

func (r *analysisRepository) ProcessedTimestamps(ctx context.Context) (map[int64]struct{}, error) {
	query := `SELECT timestamp FROM analyses`

	var timestamps []int64
	if err := r.db.SelectContext(ctx, &timestamps, query); err != nil {
		r.logger.Error("Failed to load processed timestamps", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	processed := make(map[int64]struct{}, len(timestamps))
	for _, ts := range timestamps {
		processed[ts] = struct{}{}
	}

	return processed, nil
}
