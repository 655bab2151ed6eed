package repository

import (
	"context"
	"time"

	"github.com/oceancolor-service/internal/domain"
)

// CacheRepository определяет методы кеша байтов тайлов. Источники тайлов
// чувствительны к нагрузке, поэтому повторные прогоны одного timestamp
// (debug-эндпоинт, ретраи) ходят в кеш, а не на сервер.
type CacheRepository interface {
	// GetTile возвращает закешированные байты тайла; (nil, nil) - промах.
	GetTile(ctx context.Context, source string, addr domain.TileAddress, timestamp int64) ([]byte, error)

	// SetTile сохраняет байты тайла с TTL.
	SetTile(ctx context.Context, source string, addr domain.TileAddress, timestamp int64, data []byte, ttl time.Duration) error
}
