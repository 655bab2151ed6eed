package usecase

import (
	"context"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/domain/repository"
	"github.com/oceancolor-service/internal/pkg/geo"
	"github.com/oceancolor-service/internal/pkg/raster"
)

// MaskUseCase растеризует полигоны суши в бинарную маску океана,
// совпадающую по размеру с обрезанной мозаикой. Контуры суши статичны,
// поэтому маска кешируется по размерам растра.
type MaskUseCase struct {
	boundaryRepo repository.BoundaryRepository
	logger       *zap.Logger
	bounds       domain.Bounds

	mu    sync.Mutex
	cache map[image.Point]*domain.OceanMask
}

func NewMaskUseCase(boundaryRepo repository.BoundaryRepository, bounds domain.Bounds, logger *zap.Logger) *MaskUseCase {
	return &MaskUseCase{
		boundaryRepo: boundaryRepo,
		logger:       logger,
		bounds:       bounds,
		cache:        make(map[image.Point]*domain.OceanMask),
	}
}

// Build возвращает маску океана для растра width x height.
func (uc *MaskUseCase) Build(ctx context.Context, width, height int) (*domain.OceanMask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid mask dimensions %dx%d", width, height)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	key := image.Pt(width, height)
	if mask, ok := uc.cache[key]; ok {
		return mask, nil
	}

	rings, err := uc.boundaryRepo.LandRings(ctx)
	if err != nil {
		return nil, err
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))
	for i := range gray.Pix {
		gray.Pix[i] = 255
	}

	for _, ring := range rings {
		pts := make([]image.Point, 0, len(ring))
		for _, p := range ring {
			x, y := geo.RasterPixel(p.Lat, p.Lon, uc.bounds, width, height)
			pts = append(pts, image.Pt(x, y))
		}
		raster.FillPolygon(gray, pts, 0)
	}

	mask := &domain.OceanMask{Gray: gray}
	uc.cache[key] = mask

	uc.logger.Debug("Ocean mask rasterized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("ocean_pixels", mask.OceanPixels()))

	return mask, nil
}
