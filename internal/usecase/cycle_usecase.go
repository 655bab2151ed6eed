package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/domain/repository"
	"github.com/oceancolor-service/internal/observability"
)

// CycleUseCase выполняет один цикл обработки: список timestamp'ов
// источника минус уже обработанные, по возрастанию, строго
// последовательно (источники тайлов чувствительны к параллельной
// нагрузке).
type CycleUseCase struct {
	tileRepo     repository.TileRepository
	analysisRepo repository.AnalysisRepository
	analysisUC   *AnalysisUseCase
	metrics      *observability.Metrics
	logger       *zap.Logger
}

func NewCycleUseCase(
	tileRepo repository.TileRepository,
	analysisRepo repository.AnalysisRepository,
	analysisUC *AnalysisUseCase,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CycleUseCase {
	return &CycleUseCase{
		tileRepo:     tileRepo,
		analysisRepo: analysisRepo,
		analysisUC:   analysisUC,
		metrics:      metrics,
		logger:       logger,
	}
}

// RunCycle прогоняет все необработанные timestamp'ы. Невалидный список
// timestamp'ов прерывает цикл целиком; ошибка отдельного timestamp'а
// конвертируется в исход error внутри AnalysisUseCase и цикл
// продолжается.
func (uc *CycleUseCase) RunCycle(ctx context.Context) error {
	cycleID := uuid.New().String()
	start := time.Now()

	uc.metrics.CyclesRun.Inc()
	uc.metrics.CycleRunning.Set(1)
	defer func() {
		uc.metrics.CycleRunning.Set(0)
		uc.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	timestamps, err := uc.tileRepo.ListTimestamps(ctx)
	if err != nil {
		uc.logger.Error("Failed to list timestamps",
			zap.String("cycle_id", cycleID),
			zap.Error(err))
		return fmt.Errorf("failed to list timestamps: %w", err)
	}

	processed, err := uc.analysisRepo.ProcessedTimestamps(ctx)
	if err != nil {
		uc.logger.Error("Failed to load processed timestamps",
			zap.String("cycle_id", cycleID),
			zap.Error(err))
		return err
	}

	pending := make([]int64, 0, len(timestamps))
	for _, ts := range timestamps {
		if _, ok := processed[ts]; !ok {
			pending = append(pending, ts)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i] < pending[j] })

	uc.logger.Info("Cycle started",
		zap.String("cycle_id", cycleID),
		zap.Int("available", len(timestamps)),
		zap.Int("pending", len(pending)))

	for _, ts := range pending {
		select {
		case <-ctx.Done():
			uc.logger.Info("Cycle interrupted",
				zap.String("cycle_id", cycleID),
				zap.Int64("timestamp", ts))
			return ctx.Err()
		default:
		}

		if _, err := uc.analysisUC.Run(ctx, ts); err != nil {
			uc.logger.Error("Failed to persist analysis",
				zap.String("cycle_id", cycleID),
				zap.Int64("timestamp", ts),
				zap.Error(err))
		}
	}

	uc.logger.Info("Cycle finished",
		zap.String("cycle_id", cycleID),
		zap.Duration("took", time.Since(start)))

	return nil
}
