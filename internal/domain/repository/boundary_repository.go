package repository

import (
	"context"

	"github.com/oceancolor-service/internal/domain"
)

// BoundaryRepository отдаёт контуры суши для растеризации маски океана.
type BoundaryRepository interface {
	// LandRings возвращает все кольца всех полигонов суши
	// (мультиполигоны уже развёрнуты в плоский список).
	// Отсутствующий файл границ - фатальная для прогона ошибка.
	LandRings(ctx context.Context) ([]domain.Ring, error)
}
