package repository

import (
	"context"

	"github.com/oceancolor-service/internal/domain"
)

// AnalysisRepository определяет методы хранилища результатов анализа.
// Хранилище гарантирует не более одной строки на timestamp.
type AnalysisRepository interface {
	// Upsert создаёт или перезаписывает запись по timestamp (идемпотентно).
	Upsert(ctx context.Context, record domain.AnalysisRecord) error

	// GetByTimestamp возвращает запись или domain-ошибку "не найдено".
	GetByTimestamp(ctx context.Context, timestamp int64) (*domain.AnalysisRecord, error)

	// List возвращает записи, новые первыми.
	List(ctx context.Context, limit int) ([]domain.AnalysisRecord, error)

	// ProcessedTimestamps возвращает множество уже обработанных timestamp'ов.
	ProcessedTimestamps(ctx context.Context) (map[int64]struct{}, error)
}
