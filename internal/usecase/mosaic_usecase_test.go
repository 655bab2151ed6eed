package usecase_test

import (
	"context"
	"fmt"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/config"
	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/observability"
	"github.com/oceancolor-service/internal/repository/artifact"
	"github.com/oceancolor-service/internal/usecase"
)

// Акватория, накрывающая сетку 2x2 тайла зума 1.
func wideAreaConfig() *config.Config {
	cfg := testConfig()
	cfg.Area = config.AreaConfig{
		Bounds: domain.Bounds{North: 40, South: -40, West: -40, East: 40},
		Zoom:   1,
	}
	return cfg
}

func newMosaicUC(tileRepo *MockTileRepository, cacheRepo *MockCacheRepository, cfg *config.Config) *usecase.MosaicUseCase {
	if cacheRepo == nil {
		return usecase.NewMosaicUseCase(tileRepo, nil, artifact.Nop(),
			observability.NewMetricsForTesting(), zap.NewNop(), cfg)
	}
	return usecase.NewMosaicUseCase(tileRepo, cacheRepo, artifact.Nop(),
		observability.NewMetricsForTesting(), zap.NewNop(), cfg)
}

func TestMosaicBuild_SubstitutesBlackTileOnFailure(t *testing.T) {
	cfg := wideAreaConfig()
	blue := tilePNG(t, color.RGBA{0, 0, 255, 255})

	tileRepo := &MockTileRepository{}
	// Один тайл из четырёх падает.
	tileRepo.On("FetchTile", mock.Anything, domain.TileAddress{Zoom: 1, Col: 0, Row: 0}, dayTimestamp).
		Return(nil, fmt.Errorf("503"))
	tileRepo.On("FetchTile", mock.Anything, mock.Anything, dayTimestamp).
		Return(blue, nil)

	uc := newMosaicUC(tileRepo, nil, cfg)

	mosaic, err := uc.Build(context.Background(), dayTimestamp)
	require.NoError(t, err)

	assert.Equal(t, 4, mosaic.Total)
	assert.Equal(t, 3, mosaic.Downloaded)
	assert.Greater(t, mosaic.Width(), 0)
	assert.Greater(t, mosaic.Height(), 0)
	tileRepo.AssertNumberOfCalls(t, "FetchTile", 4)
}

func TestMosaicBuild_AllTilesFailed(t *testing.T) {
	cfg := wideAreaConfig()

	tileRepo := &MockTileRepository{}
	tileRepo.On("FetchTile", mock.Anything, mock.Anything, dayTimestamp).
		Return(nil, fmt.Errorf("503"))

	uc := newMosaicUC(tileRepo, nil, cfg)

	mosaic, err := uc.Build(context.Background(), dayTimestamp)
	require.NoError(t, err)

	assert.Equal(t, 0, mosaic.Downloaded)
	assert.Equal(t, 4, mosaic.Total)
	// Без единого тайла мозаика остаётся полной сеткой: обрезать нечего.
	assert.Equal(t, 2*domain.TileSizePx, mosaic.Width())
}

func TestMosaicBuild_UsesTileCache(t *testing.T) {
	cfg := testConfig() // один тайл
	blue := tilePNG(t, color.RGBA{0, 0, 255, 255})

	tileRepo := &MockTileRepository{}
	cacheRepo := &MockCacheRepository{}
	cacheRepo.On("GetTile", mock.Anything, "himawari", mock.Anything, dayTimestamp).
		Return(blue, nil)

	uc := newMosaicUC(tileRepo, cacheRepo, cfg)

	mosaic, err := uc.Build(context.Background(), dayTimestamp)
	require.NoError(t, err)

	assert.Equal(t, 1, mosaic.Downloaded)
	tileRepo.AssertNotCalled(t, "FetchTile", mock.Anything, mock.Anything, mock.Anything)
}

func TestMosaicBuild_CacheMissFetchesAndStores(t *testing.T) {
	cfg := testConfig()
	blue := tilePNG(t, color.RGBA{0, 0, 255, 255})

	tileRepo := &MockTileRepository{}
	cacheRepo := &MockCacheRepository{}
	cacheRepo.On("GetTile", mock.Anything, "himawari", mock.Anything, dayTimestamp).
		Return(nil, nil)
	cacheRepo.On("SetTile", mock.Anything, "himawari", mock.Anything, dayTimestamp, blue, time.Minute).
		Return(nil)
	tileRepo.On("FetchTile", mock.Anything, mock.Anything, dayTimestamp).
		Return(blue, nil)

	uc := newMosaicUC(tileRepo, cacheRepo, cfg)

	_, err := uc.Build(context.Background(), dayTimestamp)
	require.NoError(t, err)

	cacheRepo.AssertExpectations(t)
	tileRepo.AssertNumberOfCalls(t, "FetchTile", 1)
}

func TestMosaicBuild_UpscaleGrowsRaster(t *testing.T) {
	cfg := testConfig()
	cfg.Pipeline.ScaleFactor = 2

	tileRepo := &MockTileRepository{}
	tileRepo.On("FetchTile", mock.Anything, mock.Anything, dayTimestamp).
		Return(tilePNG(t, color.RGBA{0, 0, 255, 255}), nil)

	base := newMosaicUC(tileRepo, nil, testConfig())
	scaled := newMosaicUC(tileRepo, nil, cfg)

	small, err := base.Build(context.Background(), dayTimestamp)
	require.NoError(t, err)

	big, err := scaled.Build(context.Background(), dayTimestamp)
	require.NoError(t, err)

	assert.Equal(t, small.Width()*2, big.Width())
	assert.Equal(t, small.Height()*2, big.Height())
}
