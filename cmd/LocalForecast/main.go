package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/local-forecast/internal/app"
	"github.com/Nazarious-ucu/local-forecast/internal/config"
	"github.com/Nazarious-ucu/local-forecast/internal/services/metrics"
	"github.com/Nazarious-ucu/local-forecast/pkg/logger"
)

const serviceName = "local-forecast"

var version = "dev"

// @title Local Forecast API
// @version 1.0
// @description Forecast for the caller's approximate location, resolved from its public IP.
// @host localhost:8080
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, serviceName, cfg.LogLevel)
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	m := metrics.NewMetrics("local_forecast")

	application := app.New(*cfg, l, m, app.WithVersion(version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		l.Error().Err(err).Msg("application failed to run")
		os.Exit(1)
	}
}
