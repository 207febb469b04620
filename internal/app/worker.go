package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geoshift/internal/config"
	"geoshift/internal/messaging/kafka"
	"geoshift/internal/messaging/kafka/producer"
	"geoshift/internal/orgpolicy"
	"geoshift/internal/shared/connection"
	"geoshift/internal/shift"

	"go.uber.org/zap"
)

// RunWorker runs the outbox producer and the stale shift sweep until a
// shutdown signal arrives.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

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

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	shiftRepo := shift.NewRepository(gormDB)
	policyResolver := orgpolicy.NewResolver(orgpolicy.NewRepository(gormDB), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		time.Duration(cfg.OutboxPollSeconds)*time.Second,
	)

	go runStaleSweep(
		ctx,
		shiftRepo,
		policyResolver,
		logger,
		time.Duration(cfg.StaleSweepMinutes)*time.Minute,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runStaleSweep periodically reports open shifts that have outlived
// their organization's stale threshold. The sweep only observes; shifts
// stay open until a manager resolves them.
func runStaleSweep(
	ctx context.Context,
	repo shift.Repository,
	policies orgpolicy.Resolver,
	logger *zap.Logger,
	interval time.Duration,
) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	log := logger.Named("stale_sweep")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("stale sweep started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("stale sweep stopped")
			return
		case <-ticker.C:
			sweepOnce(ctx, repo, policies, log)
		}
	}
}

func sweepOnce(ctx context.Context, repo shift.Repository, policies orgpolicy.Resolver, log *zap.Logger) {
	orgIDs, err := repo.ListOpenOrganizations(ctx)
	if err != nil {
		log.Error("list organizations with open shifts failed", zap.Error(err))
		return
	}

	for _, orgID := range orgIDs {
		policy, err := policies.Resolve(ctx, orgID)
		if err != nil {
			log.Error("resolve policy failed",
				zap.String("organization_id", orgID),
				zap.Error(err),
			)
			continue
		}

		cutoff := time.Now().Add(-policy.StaleThreshold)
		stale, err := repo.ListOpenBefore(ctx, orgID, cutoff)
		if err != nil {
			log.Error("list stale shifts failed",
				zap.String("organization_id", orgID),
				zap.Error(err),
			)
			continue
		}

		if len(stale) == 0 {
			continue
		}

		log.Warn("stale shifts awaiting resolution",
			zap.String("organization_id", orgID),
			zap.Int("count", len(stale)),
			zap.Time("cutoff", cutoff),
		)
	}
}
