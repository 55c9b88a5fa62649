package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"event-quality-service/internal/platform/config"
	"event-quality-service/internal/platform/database"
	"event-quality-service/internal/platform/httpserver"
	"event-quality-service/internal/platform/logger"

	qualityHttp "event-quality-service/internal/quality/adapters/http/fiber"
	qualityRepoPg "event-quality-service/internal/quality/adapters/postgres"
	"event-quality-service/internal/quality/core/domain"
	qualityUsecase "event-quality-service/internal/quality/core/usecase"

	recordsHttp "event-quality-service/internal/records/adapters/http/fiber"
	recordsRepoPg "event-quality-service/internal/records/adapters/postgres"
	recordsUsecase "event-quality-service/internal/records/core/usecase"

	_ "event-quality-service/docs"
)

// @title Event Quality Service API
// @version 1.0
// @description Tracking-plan quality, missing parameter and volume anomaly reports over raw analytics event records.
// @host localhost:8080
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// DB connection
	openCtx, cancelOpen := context.WithTimeout(context.Background(), 5*time.Second)
	db, err := database.Open(openCtx, database.Options{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	cancelOpen()
	if err != nil {
		zl.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	recordStore := qualityRepoPg.NewBreakingStore(
		qualityRepoPg.NewEventRecordRepository(db, zl),
		qualityRepoPg.BreakerConfig{
			Name:             "event-record-store",
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		},
		zl,
	)
	recordWriter := recordsRepoPg.NewEventRecordRepository(db)

	// Usecases
	location, err := cfg.Quality.Location()
	if err != nil {
		zl.Fatal("failed to resolve timezone", zap.Error(err))
	}
	settings := qualityUsecase.Settings{
		Thresholds: domain.Thresholds{
			QualityAttention: cfg.Quality.QualityAttention,
			ParamCritical:    cfg.Quality.ParamCritical,
			ParamAttention:   cfg.Quality.ParamAttention,
			AnomalyWarning:   cfg.Quality.AnomalyWarning,
			AnomalyCritical:  cfg.Quality.AnomalyCritical,
		},
		TopParameters:        cfg.Quality.TopParameters,
		MaxTopParameters:     cfg.Quality.MaxTopParameters,
		TopEvents:            cfg.Quality.TopEvents,
		TopPages:             cfg.Quality.TopPages,
		DefaultPageSize:      cfg.Quality.DefaultPageSize,
		MaxPageSize:          cfg.Quality.MaxPageSize,
		FallbackLookbackDays: cfg.Quality.FallbackLookbackDays,
		MaxRangeDays:         cfg.Quality.MaxRangeDays,
		RealtimeTop:          cfg.Quality.RealtimeTop,
		RealtimeCutoffHour:   cfg.Quality.RealtimeCutoffHour,
		Location:             location,
		Clock:                time.Now,
		Logger:               zl,
	}

	trackingUC := qualityUsecase.NewGetTrackingReportUseCase(recordStore, settings)
	parametersUC := qualityUsecase.NewGetParameterReportUseCase(recordStore, settings)
	anomaliesUC := qualityUsecase.NewGetAnomalyReportUseCase(recordStore, settings)
	dashboardUC := qualityUsecase.NewGetDashboardUseCase(recordStore, settings)
	realtimeUC := qualityUsecase.NewGetRealtimeUseCase(recordStore, settings)
	storeRecordsUC := recordsUsecase.NewStoreRecordsUseCase(recordWriter, cfg.Ingest.MaxBatchSize, time.Now, zl)

	// HTTP (Fiber) app + handlers
	app := httpserver.New(httpserver.Options{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
	}, zl)
	httpserver.RegisterHealth(app, db)

	// quality endpoints
	qualityHandler := qualityHttp.NewQualityHandler(trackingUC, parametersUC, anomaliesUC, dashboardUC, realtimeUC, zl)
	qualityHandler.Register(app.Group("/api/quality"))

	// records endpoints
	recordsHandler := recordsHttp.NewRecordHandler(storeRecordsUC, zl)
	app.Post("/api/records", recordsHandler.CreateRecord)
	app.Post("/api/records/bulk", recordsHandler.BulkCreateRecords)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			zl.Error("fiber stopped", zap.Error(err))
		}
	}()

	zl.Info("server started", zap.String("addr", cfg.Server.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	zl.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		zl.Error("fiber shutdown error", zap.Error(err))
	}

	zl.Info("server exiting")
}
