package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/demandcast/demandcast/internal/config"
	"github.com/demandcast/demandcast/internal/events"
	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/scheduler"
	"github.com/demandcast/demandcast/internal/services"
	"github.com/demandcast/demandcast/internal/store"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Scheduler service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Connect to MongoDB
	logger.Info("Connecting to MongoDB", "database", cfg.Mongo.Database)
	client, err := store.Connect(context.Background(), cfg.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.Mongo.Database)

	// Connect to the event queue (configurable backend)
	logger.Info("Connecting to event queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
	publisher, err := events.NewPublisher(cfg.Queue)
	if err != nil {
		logger.Fatal("Failed to connect to event queue", "error", err)
	}
	defer func() { _ = publisher.Close() }()

	// Build repositories and services
	salesRepo := store.NewSalesRepository(logger, db)
	predictionRepo := store.NewPredictionRepository(logger, db)

	forecastService := services.NewForecastService(logger, salesRepo, cfg.Forecast)
	predictionService := services.NewPredictionService(logger, predictionRepo, forecastService,
		publisher, cfg.Forecast, cfg.Scheduler)

	// Register and start the recurring jobs
	s, err := scheduler.New(logger, cfg.Scheduler, predictionService)
	if err != nil {
		logger.Fatal("Failed to initialize scheduler", "error", err)
	}
	s.Start()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler...")
	s.Stop()
	logger.Info("Scheduler exited")
}
