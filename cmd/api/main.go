package main

// @title Ocean Color Service API
// @version 1.0.0
// @description Сервис анализа цвета прибрежных вод по спутниковым снимкам. Периодически собирает мозаики тайлов геостационарного спутника, маскирует сушу и классифицирует океанские пиксели на облака, синюю и жёлтую воду.
// @description
// @description Основные возможности:
// @description - Листинг и выборка сохранённых результатов анализа
// @description - Ручной повторный прогон конвейера с переопределением HSV-порогов
// @description - Документация API через Swagger UI

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/oceancolor-service/docs"
	"github.com/oceancolor-service/internal/config"
	httpDelivery "github.com/oceancolor-service/internal/delivery/http"
	"github.com/oceancolor-service/internal/delivery/http/handler"
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

	log.Info("Starting Ocean Color Service API")
	log.Info("Configuration loaded",
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("tile_source", cfg.Source.Name),
	)

	// 3. Connect to the analysis store
	var (
		analysisRepo repository.AnalysisRepository
		closeStore   func() error
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch cfg.Store.Driver {
	case "sqlite":
		db, err := sqlite.New(cfg.Store.SQLitePath, log)
		if err != nil {
			log.Fatal("Failed to open SQLite store", zap.Error(err))
		}
		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to ensure SQLite schema", zap.Error(err))
		}
		analysisRepo = sqlite.NewAnalysisRepository(db)
		closeStore = db.Close

	default:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		if err := db.EnsureSchema(ctx); err != nil {
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

	log.Info("Repositories initialized")

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

	log.Info("Use cases initialized")

	// 7. Initialize HTTP server
	analysisHandler := handler.NewAnalysisHandler(analysisUC, log)
	server := httpDelivery.NewServer(cfg, log, analysisHandler)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully", zap.String("address", cfg.GetServerAddr()))

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
