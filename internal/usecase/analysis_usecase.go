package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/config"
	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/domain/repository"
	"github.com/oceancolor-service/internal/observability"
	apperrors "github.com/oceancolor-service/internal/pkg/errors"
	"github.com/oceancolor-service/internal/pkg/raster"
	"github.com/oceancolor-service/internal/repository/artifact"
)

// AnalysisUseCase прогоняет конвейер анализа для одного timestamp'а:
// ночной фильтр, мозаика, маска океана, классификация, сохранение.
type AnalysisUseCase struct {
	analysisRepo repository.AnalysisRepository
	artifactRepo repository.ArtifactRepository
	mosaicUC     *MosaicUseCase
	maskUC       *MaskUseCase
	strategy     ClassifyStrategy
	metrics      *observability.Metrics
	logger       *zap.Logger

	location   *time.Location
	dayStart   int
	nightStart int
	thickCloud float64
	defaultHSV domain.HSVRanges
}

func NewAnalysisUseCase(
	analysisRepo repository.AnalysisRepository,
	artifactRepo repository.ArtifactRepository,
	mosaicUC *MosaicUseCase,
	maskUC *MaskUseCase,
	strategy ClassifyStrategy,
	metrics *observability.Metrics,
	logger *zap.Logger,
	cfg *config.Config,
) (*AnalysisUseCase, error) {
	location, err := time.LoadLocation(cfg.Classifier.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load classifier time zone: %w", err)
	}

	return &AnalysisUseCase{
		analysisRepo: analysisRepo,
		artifactRepo: artifactRepo,
		mosaicUC:     mosaicUC,
		maskUC:       maskUC,
		strategy:     strategy,
		metrics:      metrics,
		logger:       logger,
		location:     location,
		dayStart:     cfg.Classifier.DayStartHour,
		nightStart:   cfg.Classifier.NightStartHour,
		thickCloud:   cfg.Classifier.ThickCloudCoverage,
		defaultHSV:   cfg.Classifier.HSV,
	}, nil
}

// Run выполняет полный прогон и сохраняет сохраняемые исходы.
// download_failed не сохраняется: timestamp будет повторён в
// следующем цикле.
func (uc *AnalysisUseCase) Run(ctx context.Context, timestamp int64) (domain.ClassificationOutcome, error) {
	outcome := uc.analyze(ctx, timestamp, uc.defaultHSV)
	uc.metrics.Outcomes.WithLabelValues(string(outcome.Status)).Inc()

	uc.logger.Info("Analysis finished",
		zap.Int64("timestamp", timestamp),
		zap.String("status", string(outcome.Status)),
		zap.String("strategy", uc.strategy.Name()))

	if outcome.Persistable() {
		if err := uc.analysisRepo.Upsert(ctx, outcome.Record()); err != nil {
			return outcome, err
		}
	}

	return outcome, nil
}

// DebugRun выполняет разовый прогон с опциональным переопределением
// HSV-порогов. Результат не сохраняется и не влияет на расписание.
func (uc *AnalysisUseCase) DebugRun(ctx context.Context, timestamp int64, override *domain.HSVRanges) (domain.ClassificationOutcome, error) {
	hsv := uc.defaultHSV
	if override != nil {
		if override.BlueHueMin > override.BlueHueMax {
			return domain.ClassificationOutcome{}, apperrors.ErrInvalidHSVRanges
		}
		hsv = *override
	}

	outcome := uc.analyze(ctx, timestamp, hsv)
	return outcome, nil
}

// List возвращает сохранённые записи, новые первыми.
func (uc *AnalysisUseCase) List(ctx context.Context, limit int) ([]domain.AnalysisRecord, error) {
	return uc.analysisRepo.List(ctx, limit)
}

// GetByTimestamp возвращает запись по timestamp.
func (uc *AnalysisUseCase) GetByTimestamp(ctx context.Context, timestamp int64) (*domain.AnalysisRecord, error) {
	return uc.analysisRepo.GetByTimestamp(ctx, timestamp)
}

// analyze - конвейер без сохранения. Паника любого этапа конвертируется
// в исход error: один битый timestamp не должен ронять цикл.
func (uc *AnalysisUseCase) analyze(ctx context.Context, timestamp int64, hsv domain.HSVRanges) (outcome domain.ClassificationOutcome) {
	start := time.Now()
	outcome = domain.ClassificationOutcome{Timestamp: timestamp, Status: domain.StatusError}

	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("Analysis panicked",
				zap.Int64("timestamp", timestamp),
				zap.Any("panic", r))
			outcome = domain.ClassificationOutcome{Timestamp: timestamp, Status: domain.StatusError}
		}
		uc.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	if uc.isNight(timestamp) {
		outcome.Status = domain.StatusNight
		return outcome
	}

	mosaic, err := uc.mosaicUC.Build(ctx, timestamp)
	if err != nil {
		uc.logger.Error("Mosaic build failed", zap.Int64("timestamp", timestamp), zap.Error(err))
		return outcome
	}

	outcome.DownloadedTiles = mosaic.Downloaded
	outcome.TotalTiles = mosaic.Total

	if mosaic.Downloaded == 0 {
		outcome.Status = domain.StatusDownloadFailed
		return outcome
	}

	mask, err := uc.maskUC.Build(ctx, mosaic.Width(), mosaic.Height())
	if err != nil {
		uc.logger.Error("Mask build failed", zap.Int64("timestamp", timestamp), zap.Error(err))
		outcome.Status = domain.StatusBoundaryFailed
		return outcome
	}

	masked := raster.ApplyMask(mosaic.Image, mask.Gray)

	if err := uc.artifactRepo.SaveRaster(timestamp, artifact.StageMasked, masked); err != nil {
		uc.logger.Warn("Failed to save masked artifact", zap.Error(err))
	}
	if err := uc.artifactRepo.SaveRaster(timestamp, artifact.StageOceanMask, mask.Gray); err != nil {
		uc.logger.Warn("Failed to save mask artifact", zap.Error(err))
	}

	// Все океанские пиксели чёрные: снимка акватории на сервере нет
	// (граница доступного архива), хотя тайлы скачались.
	if raster.AllBlack(masked, mask.Gray) {
		outcome.Status = domain.StatusNoData
		return outcome
	}

	counts, err := uc.strategy.Classify(masked, mask.Gray, hsv)
	if errors.Is(err, errInsufficientPixels) {
		outcome.Status = domain.StatusInsufficientPixels
		return outcome
	}
	if err != nil {
		uc.logger.Error("Classification failed", zap.Int64("timestamp", timestamp), zap.Error(err))
		return outcome
	}

	outcome.Pixels = counts

	if err := uc.artifactRepo.SaveRaster(timestamp, artifact.StageOverlay, renderOverlay(masked, mask.Gray, hsv)); err != nil {
		uc.logger.Warn("Failed to save overlay artifact", zap.Error(err))
	}

	coverage := float64(counts.Cloud) / float64(counts.Total)
	outcome.CloudCoverage = &coverage

	// Порог строгий: ровно пороговая облачность ещё классифицируется.
	if coverage > uc.thickCloud {
		outcome.Status = domain.StatusThickCloud
		return outcome
	}

	// Знаменатель - все океанские пиксели, включая облачные: облачность
	// намеренно занижает blueness.
	blueness := float64(counts.Blue) / float64(counts.Total)
	outcome.SeaBlueness = &blueness
	outcome.Status = domain.StatusCompleted

	return outcome
}

// isNight сообщает, попадает ли timestamp вне дневного окна
// [dayStart, nightStart) в часовом поясе акватории.
func (uc *AnalysisUseCase) isNight(timestamp int64) bool {
	hour := time.Unix(timestamp, 0).In(uc.location).Hour()
	return hour < uc.dayStart || hour >= uc.nightStart
}
