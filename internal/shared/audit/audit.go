package audit

import (
	"context"
	"time"

	"go-hr-admin/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	ActionServerShutdown = "SERVER_SHUTDOWN"
	ActionLeaveDecided   = "LEAVE_DECIDED"
)

// Entry is one audit trail record.
type Entry struct {
	Action  string
	Message string
	Actor   string
	Meta    map[string]any
}

type Logger interface {
	Log(ctx context.Context, entry Entry)
}

// ZapLogger writes audit entries to the "audit" named zap logger.
type ZapLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewZapLogger(logger ...*zap.Logger) *ZapLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &ZapLogger{logger: l, now: time.Now}
}

func (l *ZapLogger) Log(ctx context.Context, entry Entry) {
	md := contextutil.ExtractMetadata(ctx)
	actor := entry.Actor
	if actor == "" {
		actor = md.UserID
	}
	l.logger.Info("audit event",
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("request_id", md.RequestID),
		zap.String("actor", actor),
		zap.String("employee_code", md.EmployeeCode),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Log(context.Context, Entry) {}
