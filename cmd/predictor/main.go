package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/ARUNKUMAR069/RescueX/internal/adapter/http"
	kafkaadapter "github.com/ARUNKUMAR069/RescueX/internal/adapter/kafka"
	"github.com/ARUNKUMAR069/RescueX/internal/adapter/weatherapi"
	"github.com/ARUNKUMAR069/RescueX/internal/config"
	"github.com/ARUNKUMAR069/RescueX/internal/domain"
	"github.com/ARUNKUMAR069/RescueX/internal/engine"
	"github.com/ARUNKUMAR069/RescueX/internal/learning"
	"github.com/ARUNKUMAR069/RescueX/internal/observability"
	"github.com/ARUNKUMAR069/RescueX/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	weather := weatherapi.NewClient(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cfg.WeatherTimeout, logger)
	eng := engine.New(domain.NewCoefficients(), logger, metrics)

	// Alert publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var alerts httpadapter.AlertPublisher
	var publisher *kafkaadapter.AlertPublisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewAlertPublisher(cfg.KafkaBrokers, cfg.KafkaAlertTopic, logger, metrics)
		alerts = publisher
		logger.Info("kafka alerting enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAlertTopic)
	} else {
		logger.Info("kafka alerting disabled")
	}

	refresher := learning.NewRefresher(store, eng, cfg.LearningInterval, cfg.HistoryLimit, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, eng, weather, store, alerts, cfg.HistoryLimit, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start learning refresher.
	go func() {
		if err := refresher.Run(ctx); err != nil {
			logger.Error("learning refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("alert publisher close error", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("shutdown complete")
}
