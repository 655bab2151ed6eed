package artifact

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/domain/repository"
)

// Этапы конвейера в порядке выполнения; номер в имени файла
// сохраняет порядок при листинге каталога.
const (
	StageMosaic    = "mosaic"
	StageCropped   = "cropped"
	StageEqualized = "equalized"
	StageMasked    = "masked"
	StageOceanMask = "ocean_mask"
	StageOverlay   = "overlay"
)

var stageOrder = map[string]int{
	StageMosaic:    1,
	StageCropped:   2,
	StageEqualized: 3,
	StageMasked:    4,
	StageOceanMask: 5,
	StageOverlay:   6,
}

type store struct {
	dir    string
	logger *zap.Logger

	mu sync.Mutex
}

// NewStore создает файловое хранилище диагностических растров.
func NewStore(dir string, logger *zap.Logger) repository.ArtifactRepository {
	return &store{
		dir:    dir,
		logger: logger,
	}
}

func (s *store) SaveRaster(timestamp int64, stage string, img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.dir, fmt.Sprintf("%d", timestamp))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	order, ok := stageOrder[stage]
	if !ok {
		return fmt.Errorf("unknown pipeline stage: %s", stage)
	}

	path := filepath.Join(dir, fmt.Sprintf("%02d_%s.png", order, stage))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	s.logger.Debug("Artifact saved", zap.String("path", path))

	return nil
}

// Nop возвращает хранилище, которое ничего не сохраняет
// (артефакты выключены конфигурацией).
func Nop() repository.ArtifactRepository {
	return nopStore{}
}

type nopStore struct{}

func (nopStore) SaveRaster(int64, string, image.Image) error { return nil }
