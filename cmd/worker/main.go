package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/shareit/config"
	"github.com/Domenick1991/shareit/internal/audit"
	"github.com/Domenick1991/shareit/internal/kafka"
	"github.com/Domenick1991/shareit/internal/obs"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := obs.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Fatal("kafka.brokers is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	probe := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	if err := probe.CheckConnection(ctx); err != nil {
		logger.Fatal("kafka unreachable", zap.Error(err))
	}
	_ = probe.Close()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingTopic, logger)
	defer consumer.Close()

	recorder := audit.NewRecorder(logger)

	logger.Info("consuming booking events",
		zap.String("topic", cfg.Kafka.BookingTopic),
		zap.String("group", cfg.Kafka.GroupID))

	if err := consumer.Consume(ctx, kafka.BookingEventHandler(logger, recorder.Record)); err != nil {
		logger.Error("consumer stopped", zap.Error(err))
		return
	}
	logger.Info("worker stopped")
}
