package boundary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/domain/repository"
	"github.com/oceancolor-service/internal/pkg/errors"
)

// fileRepository читает контуры суши из файла на диске.
// Формат выбирается по расширению: .geojson/.json или .shp.
// Удачно разобранный файл кешируется на весь срок жизни процесса;
// неудачная загрузка не кешируется, следующий прогон попробует снова.
type fileRepository struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	rings []domain.Ring
}

// NewFileRepository создает репозиторий границ поверх файла полигонов суши.
func NewFileRepository(path string, logger *zap.Logger) (repository.BoundaryRepository, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".shp":
	default:
		return nil, fmt.Errorf("unsupported boundary file format: %s", filepath.Ext(path))
	}

	return &fileRepository{
		path:   path,
		logger: logger,
	}, nil
}

func (r *fileRepository) LandRings(ctx context.Context) ([]domain.Ring, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rings != nil {
		return r.rings, nil
	}

	rings, err := r.load()
	if err != nil {
		return nil, err
	}

	r.rings = rings
	r.logger.Info("Land boundary loaded",
		zap.String("path", r.path),
		zap.Int("rings", len(r.rings)))

	return r.rings, nil
}

func (r *fileRepository) load() ([]domain.Ring, error) {
	if _, err := os.Stat(r.path); err != nil {
		r.logger.Error("Boundary file missing", zap.String("path", r.path), zap.Error(err))
		return nil, errors.ErrBoundaryNotFound
	}

	var (
		rings []domain.Ring
		err   error
	)
	if strings.ToLower(filepath.Ext(r.path)) == ".shp" {
		rings, err = loadShapefile(r.path)
	} else {
		rings, err = loadGeoJSON(r.path)
	}
	if err != nil {
		r.logger.Error("Failed to parse boundary file", zap.String("path", r.path), zap.Error(err))
		return nil, err
	}

	if len(rings) == 0 {
		return nil, fmt.Errorf("boundary file %s contains no polygons", r.path)
	}

	return rings, nil
}
