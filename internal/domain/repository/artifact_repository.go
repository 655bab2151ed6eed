package repository

import "image"

// ArtifactRepository сохраняет промежуточные растры конвейера для
// диагностики оператором. Сохранение не влияет на корректность анализа
// и может быть отключено конфигурацией.
type ArtifactRepository interface {
	// SaveRaster сохраняет растр этапа под каталогом timestamp'а.
	SaveRaster(timestamp int64, stage string, img image.Image) error
}
