package analysis

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/worker"
)

// CycleRunner - контракт одного цикла обработки.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// ScheduleWorker периодически запускает цикл обработки. Тики
// потребляются той же горутиной, что выполняет цикл: затянувшийся
// цикл просто роняет накопившиеся тики, параллельных прогонов нет.
type ScheduleWorker struct {
	*worker.BaseWorker
	cycle      CycleRunner
	clock      clockwork.Clock
	interval   time.Duration
	runOnStart bool
}

// NewScheduleWorker создает новый ScheduleWorker.
func NewScheduleWorker(
	cycle CycleRunner,
	clock clockwork.Clock,
	interval time.Duration,
	runOnStart bool,
	logger *zap.Logger,
) *ScheduleWorker {
	return &ScheduleWorker{
		BaseWorker: worker.NewBaseWorker("analysis-schedule", logger),
		cycle:      cycle,
		clock:      clock,
		interval:   interval,
		runOnStart: runOnStart,
	}
}

// Start запускает воркер
func (w *ScheduleWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ScheduleWorker",
		zap.Duration("interval", w.interval),
		zap.Bool("run_on_start", w.runOnStart))

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	if w.runOnStart {
		w.runCycle(ctx)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.Chan():
			w.runCycle(ctx)
		}
	}
}

func (w *ScheduleWorker) runCycle(ctx context.Context) {
	if err := w.cycle.RunCycle(ctx); err != nil {
		w.Logger().Error("Cycle failed", zap.Error(err))
	}
}
