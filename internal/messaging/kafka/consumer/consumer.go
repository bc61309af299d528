package consumer

import (
	"context"
	"encoding/json"

	"go-hr-admin/internal/events"
	"go-hr-admin/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type LeaveDecidedHandler interface {
	HandleLeaveDecided(ctx context.Context, event events.LeaveDecidedEvent) error
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// ConsumeLeaveDecided feeds leave.decided events to handler until ctx is
// cancelled. A message is committed only after handler succeeds; undecodable
// messages are committed and dropped.
func ConsumeLeaveDecided(
	ctx context.Context,
	reader MessageReader,
	handler LeaveDecidedHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave.decided event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if event.EventID == "" {
			event.EventID = header(msg, "event_id")
		}
		if event.RequestID == "" {
			event.RequestID = header(msg, "request_id")
		}

		msgCtx := contextutil.WithRequestID(ctx, event.RequestID)
		if err := handler.HandleLeaveDecided(msgCtx, event); err != nil {
			log.Error("handle leave.decided event failed",
				zap.String("event_id", event.EventID),
				zap.Uint64("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision notified",
			zap.String("event_id", event.EventID),
			zap.Uint64("leave_id", event.LeaveID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("status", event.Status),
		)
	}
}
