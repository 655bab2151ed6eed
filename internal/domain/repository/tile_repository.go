package repository

import (
	"context"

	"github.com/oceancolor-service/internal/domain"
)

// TileRepository определяет контракт источника тайлов.
type TileRepository interface {
	// ListTimestamps возвращает доступные timestamp'ы источника.
	// Невалидный ответ - ошибка: цикл обработки прерывается целиком.
	ListTimestamps(ctx context.Context) ([]int64, error)

	// FetchTile скачивает один тайл и возвращает сырые байты изображения.
	// Любая сетевая ошибка или не-2xx статус - ошибка; подстановку
	// чёрного тайла выполняет вызывающая сторона.
	FetchTile(ctx context.Context, addr domain.TileAddress, timestamp int64) ([]byte, error)
}
