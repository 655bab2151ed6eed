package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/config"
	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/domain/repository"
	"github.com/oceancolor-service/internal/observability"
	"github.com/oceancolor-service/internal/pkg/geo"
	"github.com/oceancolor-service/internal/pkg/raster"
	"github.com/oceancolor-service/internal/repository/artifact"
)

// MosaicUseCase собирает растр акватории для одного timestamp'а:
// сетка тайлов, обрезка по границам, опциональная нормализация
// контраста и масштабирование.
type MosaicUseCase struct {
	tileRepo     repository.TileRepository
	cacheRepo    repository.CacheRepository // nil, когда Redis выключен
	artifactRepo repository.ArtifactRepository
	metrics      *observability.Metrics
	logger       *zap.Logger

	source      domain.TileSource
	bounds      domain.Bounds
	zoom        int
	scaleFactor float64
	normalize   bool
	cacheTTL    time.Duration
}

func NewMosaicUseCase(
	tileRepo repository.TileRepository,
	cacheRepo repository.CacheRepository,
	artifactRepo repository.ArtifactRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
	cfg *config.Config,
) *MosaicUseCase {
	return &MosaicUseCase{
		tileRepo:     tileRepo,
		cacheRepo:    cacheRepo,
		artifactRepo: artifactRepo,
		metrics:      metrics,
		logger:       logger,
		source:       cfg.Source.Source,
		bounds:       cfg.Area.Bounds,
		zoom:         cfg.Area.Zoom,
		scaleFactor:  cfg.Pipeline.ScaleFactor,
		normalize:    cfg.Pipeline.ContrastNormalize,
		cacheTTL:     cfg.Redis.TileCacheTTL,
	}
}

// Build собирает мозаику. Недокачанные тайлы заменяются чёрными;
// полностью недокачанная мозаика (Downloaded == 0) возвращается без
// ошибки - решение об исходе принимает вызывающая сторона.
func (uc *MosaicUseCase) Build(ctx context.Context, timestamp int64) (*domain.Mosaic, error) {
	col0, row0 := geo.TileAt(uc.bounds.North, uc.bounds.West, uc.zoom)
	col1, row1 := geo.TileAt(uc.bounds.South, uc.bounds.East, uc.zoom)

	cols := col1 - col0 + 1
	rows := row1 - row0 + 1
	total := cols * rows

	grid := image.NewRGBA(image.Rect(0, 0, cols*domain.TileSizePx, rows*domain.TileSizePx))
	downloaded := 0

	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			addr := domain.TileAddress{Zoom: uc.zoom, Col: col, Row: row}

			tile, err := uc.fetchTile(ctx, addr, timestamp)
			if err != nil {
				uc.metrics.TilesFailed.Inc()
				tile = raster.BlackTile(domain.TileSizePx)
			} else {
				uc.metrics.TilesDownloaded.Inc()
				downloaded++
			}

			offset := image.Pt((col-col0)*domain.TileSizePx, (row-row0)*domain.TileSizePx)
			draw.Draw(grid, tile.Bounds().Add(offset), tile, tile.Bounds().Min, draw.Src)
		}
	}

	uc.logger.Debug("Mosaic assembled",
		zap.Int64("timestamp", timestamp),
		zap.Int("downloaded", downloaded),
		zap.Int("total", total))

	mosaic := &domain.Mosaic{
		Image:      grid,
		Zoom:       uc.zoom,
		OriginCol:  col0,
		OriginRow:  row0,
		Downloaded: downloaded,
		Total:      total,
	}

	if downloaded == 0 {
		return mosaic, nil
	}

	if err := uc.artifactRepo.SaveRaster(timestamp, artifact.StageMosaic, grid); err != nil {
		uc.logger.Warn("Failed to save mosaic artifact", zap.Error(err))
	}

	// Обрезка по пиксельным смещениям углов акватории внутри сетки.
	x0, y0 := geo.MosaicPixel(uc.bounds.North, uc.bounds.West, uc.zoom, col0, row0)
	x1, y1 := geo.MosaicPixel(uc.bounds.South, uc.bounds.East, uc.zoom, col0, row0)
	mosaic.Image = raster.Crop(grid, image.Rect(x0, y0, x1, y1))

	if err := uc.artifactRepo.SaveRaster(timestamp, artifact.StageCropped, mosaic.Image); err != nil {
		uc.logger.Warn("Failed to save cropped artifact", zap.Error(err))
	}

	if uc.normalize {
		mosaic.Image = raster.EqualizeContrast(mosaic.Image)
		if err := uc.artifactRepo.SaveRaster(timestamp, artifact.StageEqualized, mosaic.Image); err != nil {
			uc.logger.Warn("Failed to save equalized artifact", zap.Error(err))
		}
	}

	if uc.scaleFactor > 1 {
		mosaic.Image = raster.Upscale(mosaic.Image, uc.scaleFactor)
	}

	return mosaic, nil
}

func (uc *MosaicUseCase) fetchTile(ctx context.Context, addr domain.TileAddress, timestamp int64) (image.Image, error) {
	data, err := uc.cachedTileBytes(ctx, addr, timestamp)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode tile image: %w", err)
	}

	return img, nil
}

func (uc *MosaicUseCase) cachedTileBytes(ctx context.Context, addr domain.TileAddress, timestamp int64) ([]byte, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetTile(ctx, uc.source.Name, addr, timestamp)
		if err == nil && cached != nil {
			uc.metrics.TileCache.WithLabelValues("hit").Inc()
			return cached, nil
		}
		uc.metrics.TileCache.WithLabelValues("miss").Inc()
	}

	data, err := uc.tileRepo.FetchTile(ctx, addr, timestamp)
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetTile(ctx, uc.source.Name, addr, timestamp, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache tile", zap.Error(err))
		}
	}

	return data, nil
}
