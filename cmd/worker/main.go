package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/config"
	"github.com/oceancolor-service/internal/domain/repository"
	"github.com/oceancolor-service/internal/infrastructure/tileserver"
	"github.com/oceancolor-service/internal/observability"
	"github.com/oceancolor-service/internal/pkg/logger"
	"github.com/oceancolor-service/internal/repository/artifact"
	"github.com/oceancolor-service/internal/repository/boundary"
	"github.com/oceancolor-service/internal/repository/cache"
	"github.com/oceancolor-service/internal/repository/postgres"
	"github.com/oceancolor-service/internal/repository/sqlite"
	"github.com/oceancolor-service/internal/usecase"
	"github.com/oceancolor-service/internal/worker"
	analysisworker "github.com/oceancolor-service/internal/worker/analysis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Ocean Color Analysis Worker")
	log.Info("Configuration loaded",
		zap.String("tile_source", cfg.Source.Name),
		zap.Duration("interval", cfg.Scheduler.Interval),
		zap.Bool("run_on_start", cfg.Scheduler.RunOnStart),
		zap.String("strategy", cfg.Classifier.Strategy),
	)

	// 3. Connect to the analysis store
	var (
		analysisRepo repository.AnalysisRepository
		closeStore   func() error
	)

	initCtx, initCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer initCancel()

	switch cfg.Store.Driver {
	case "sqlite":
		db, err := sqlite.New(cfg.Store.SQLitePath, log)
		if err != nil {
			log.Fatal("Failed to open SQLite store", zap.Error(err))
		}
		if err := db.EnsureSchema(initCtx); err != nil {
			log.Fatal("Failed to ensure SQLite schema", zap.Error(err))
		}
		analysisRepo = sqlite.NewAnalysisRepository(db)
		closeStore = db.Close

	default:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		if err := db.EnsureSchema(initCtx); err != nil {
			log.Fatal("Failed to ensure PostgreSQL schema", zap.Error(err))
		}
		analysisRepo = postgres.NewAnalysisRepository(db)
		closeStore = db.Close
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("Failed to close store", zap.Error(err))
		}
	}()

	// 4. Connect to Redis (optional tile cache)
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
	}

	// 5. Initialize repositories
	tileRepo := tileserver.NewClient(&cfg.Source, log)

	boundaryRepo, err := boundary.NewFileRepository(cfg.Boundary.Path, log)
	if err != nil {
		log.Fatal("Failed to initialize boundary repository", zap.Error(err))
	}

	artifactRepo := artifact.Nop()
	if cfg.Pipeline.ArtifactsEnabled {
		artifactRepo = artifact.NewStore(cfg.Pipeline.ArtifactsDir, log)
	}

	metrics := observability.NewMetrics()

	// 6. Initialize use cases
	mosaicUC := usecase.NewMosaicUseCase(tileRepo, cacheRepo, artifactRepo, metrics, log, cfg)
	maskUC := usecase.NewMaskUseCase(boundaryRepo, cfg.Area.Bounds, log)

	analysisUC, err := usecase.NewAnalysisUseCase(
		analysisRepo,
		artifactRepo,
		mosaicUC,
		maskUC,
		usecase.StrategyFromConfig(cfg),
		metrics,
		log,
		cfg,
	)
	if err != nil {
		log.Fatal("Failed to initialize analysis use case", zap.Error(err))
	}

	cycleUC := usecase.NewCycleUseCase(tileRepo, analysisRepo, analysisUC, metrics, log)

	// 7. Expose Prometheus metrics
	if cfg.Scheduler.MetricsAddr != "" {
		go func() {
			mux := nethttp.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Info("Metrics listener started", zap.String("address", cfg.Scheduler.MetricsAddr))
			if err := nethttp.ListenAndServe(cfg.Scheduler.MetricsAddr, mux); err != nil {
				log.Error("Metrics listener failed", zap.Error(err))
			}
		}()
	}

	// 8. Initialize workers
	scheduleWorker := analysisworker.NewScheduleWorker(
		cycleUC,
		clockwork.NewRealClock(),
		cfg.Scheduler.Interval,
		cfg.Scheduler.RunOnStart,
		log,
	)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(scheduleWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
