package producer

import (
	"context"
	"time"

	"go-hr-admin/internal/messaging/kafka"

	"go.uber.org/zap"
)

// WorkerConfig tunes the outbox relay.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// MaxAttempts is how many publish failures an event may accumulate
	// before it is parked as dead.
	MaxAttempts int
}

func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 3 * time.Second,
		BatchSize:    50,
		MaxAttempts:  10,
	}
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	def := DefaultWorkerConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	return c
}

// ProcessOutboxEvents relays pending and due-for-retry events to Kafka
// until ctx is cancelled. A batch whose every event left the pending set is
// followed immediately by the next one so a backlog drains without waiting
// for the ticker. Any status write failure falls back to the ticker.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	cfg WorkerConfig,
) {
	cfg = cfg.withDefaults()
	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started",
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Int("max_attempts", cfg.MaxAttempts),
	)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		drain(ctx, repo, writer, log, cfg)

		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func drain(ctx context.Context, repo kafka.OutboxRepository, writer MessageWriter, log *zap.Logger, cfg WorkerConfig) {
	for ctx.Err() == nil {
		moved, err := processPendingEvents(ctx, repo, writer, log, cfg)
		if err != nil {
			log.Error("process outbox events failed", zap.Error(err))
			return
		}
		if moved < cfg.BatchSize {
			return
		}
	}
}

// processPendingEvents publishes one batch and reports how many events left
// the pending set, that is, whose status update was stored.
func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	cfg WorkerConfig,
) (int, error) {
	events, err := repo.ListPending(ctx, cfg.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	logger.Debug("relaying outbox batch", zap.Int("count", len(events)))

	moved := 0

	for _, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			if markFailure(ctx, repo, logger, cfg, event, err, fields) {
				moved++
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// the event is on the topic already; consumers dedupe on event_id
			logger.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		moved++
		logger.Info("outbox event sent", fields...)
	}

	return moved, nil
}

func markFailure(
	ctx context.Context,
	repo kafka.OutboxRepository,
	logger *zap.Logger,
	cfg WorkerConfig,
	event kafka.OutboxEvent,
	publishErr error,
	fields []zap.Field,
) bool {
	fields = append(fields, zap.Int("attempt", event.RetryCount+1), zap.Error(publishErr))

	if event.RetryCount+1 >= cfg.MaxAttempts {
		logger.Error("outbox event parked as dead", fields...)
		if err := repo.MarkDead(ctx, event.ID, publishErr.Error()); err != nil {
			logger.Error("mark outbox dead failed", zap.String("outbox_id", event.ID), zap.Error(err))
			return false
		}
		return true
	}

	logger.Warn("publish outbox event failed, retry scheduled", fields...)
	if err := repo.MarkFailed(ctx, event.ID, publishErr.Error()); err != nil {
		logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(err))
		return false
	}
	return true
}
