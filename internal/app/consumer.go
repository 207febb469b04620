package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"geoshift/internal/audit"
	"geoshift/internal/config"
	"geoshift/internal/events"
	"geoshift/internal/messaging/kafka/consumer"
	"geoshift/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer reads shift lifecycle events and persists them to the
// audit trail until a shutdown signal arrives.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	auditRepo := audit.NewRepository(gormDB)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.ShiftLifecycleTopic,
		GroupID:        "geoshift-shift-audit",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeShiftLifecycle(ctx, reader, auditRepo, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
