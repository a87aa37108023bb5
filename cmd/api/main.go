package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jprdgz/sakahan-api/internal/catalog"
	"github.com/jprdgz/sakahan-api/internal/config"
	"github.com/jprdgz/sakahan-api/internal/database"
	"github.com/jprdgz/sakahan-api/internal/database/postgres"
	"github.com/jprdgz/sakahan-api/internal/event"
	"github.com/jprdgz/sakahan-api/internal/farmer"
	"github.com/jprdgz/sakahan-api/internal/field"
	"github.com/jprdgz/sakahan-api/internal/handler"
	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/notify"
	"github.com/jprdgz/sakahan-api/internal/recommend"
	"github.com/jprdgz/sakahan-api/internal/season"
	"github.com/jprdgz/sakahan-api/internal/server"
	"github.com/jprdgz/sakahan-api/internal/task"
	"github.com/jprdgz/sakahan-api/internal/weather"
	"github.com/jprdgz/sakahan-api/internal/yield"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.Environment != "prod",
	))
	log := slog.Default()

	handler.InitValidator()

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(connString, 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	cropRepo := postgres.NewCropRepository(dbPool)
	fieldRepo := postgres.NewFieldRepository(dbPool)
	taskRepo := postgres.NewTaskRepository(dbPool)
	farmerRepo := postgres.NewFarmerRepository(dbPool)

	// Sync the shipped crop catalog into the database before serving.
	loader := catalog.NewLoader()
	seed, err := loader.Load(cfg.CropSeedPath)
	if err != nil {
		log.Error("Failed to load crop seed file", "path", cfg.CropSeedPath, "error", err)
		os.Exit(1)
	}
	syncCtx, cancelSync := context.WithTimeout(context.Background(), 30*time.Second)
	result, err := loader.SyncToDatabase(syncCtx, seed, cropRepo)
	cancelSync()
	if err != nil {
		log.Error("Failed to sync crop catalog", "error", err)
		os.Exit(1)
	}
	log.Info("Crop catalog synced", "inserted", result.CropsInserted, "updated", result.CropsUpdated)

	bus := event.NewMemoryBus()
	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.NotifyWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.NotifyWebhookURL)
	}
	notify.SubscribeAll(bus, notifier)

	seasons := season.NewPolicy()
	provider := weather.NewCachedProvider(
		weather.NewOpenMeteoClient(cfg.WeatherLatitude, cfg.WeatherLongitude),
		cfg.WeatherCacheTTL,
	)
	reader := weather.NewReader(provider, seasons, nil)

	catalogSvc := catalog.NewService(cropRepo)
	fieldSvc := field.NewService(fieldRepo, taskRepo, farmerRepo, bus, nil)
	taskSvc := task.NewService(taskRepo, fieldRepo, bus, nil)
	recommendSvc := recommend.NewService(
		fieldRepo,
		catalogSvc,
		reader,
		recommend.NewMatcher(rand.New(rand.NewSource(time.Now().UnixNano()))),
		recommend.NewBuilder(seasons),
		bus,
		nil,
	)
	yieldSvc := yield.NewService(taskRepo, fieldRepo)
	farmerSvc := farmer.NewService(farmerRepo, cfg.ActiveFarmerWindow, nil)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, server.Services{
		Field:     fieldSvc,
		Task:      taskSvc,
		Recommend: recommendSvc,
		Catalog:   catalogSvc,
		Yield:     yieldSvc,
		Farmer:    farmerSvc,
		Weather:   reader,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
