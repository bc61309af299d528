package notification

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-hr-admin/internal/events"
	notificationerrors "go-hr-admin/internal/notification/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"

	"go.uber.org/zap"
)

const defaultListLimit = 50

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	HandleLeaveDecided(ctx context.Context, event events.LeaveDecidedEvent) error
	List(ctx context.Context, q ListNotificationsQuery) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func leaveDecidedMessage(e events.LeaveDecidedEvent) string {
	period := e.StartDate
	if e.EndDate != "" && e.EndDate != e.StartDate {
		period = e.StartDate + " to " + e.EndDate
	}
	msg := fmt.Sprintf("Your %s leave (%s) was %s", e.LeaveType, period, strings.ToLower(e.Status))
	if e.ReviewedBy != "" {
		msg += " by " + e.ReviewedBy
	}
	if e.Remark != "" {
		msg += ": " + e.Remark
	}
	return msg
}

// HandleLeaveDecided stores one notification per event. Redelivered events
// hit the event_id unique index and are treated as done.
func (s *service) HandleLeaveDecided(ctx context.Context, event events.LeaveDecidedEvent) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if event.EventID == "" || event.EmployeeID == "" {
		log.Warn("leave decided event missing ids, skipping",
			zap.String("event_id", event.EventID),
			zap.Uint64("leave_id", event.LeaveID),
		)
		return nil
	}

	n := &Notification{
		EventID:      event.EventID,
		EmployeeCode: event.EmployeeID,
		Kind:         KindLeaveDecided,
		Message:      leaveDecidedMessage(event),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		if isDuplicateEvent(err) {
			log.Warn("notification already stored for event, skipping",
				zap.String("event_id", event.EventID),
				zap.String("employee_id", event.EmployeeID),
			)
			return nil
		}
		log.Error("store notification failed",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return err
	}

	log.Info("notification stored",
		zap.Uint64("notification_id", n.ID),
		zap.String("employee_id", n.EmployeeCode),
	)
	return nil
}

func (s *service) List(ctx context.Context, q ListNotificationsQuery) ([]NotificationResponse, error) {
	p := contextutil.GetPrincipal(ctx)
	if p == nil || p.EmployeeCode == "" {
		return nil, apperror.ErrUnauthenticated
	}
	if v := apperror.ValidateStruct(q); len(v) > 0 {
		return nil, apperror.Validation(v...)
	}
	limit := q.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	rows, err := s.repo.ListByEmployee(ctx, p.EmployeeCode, q.Unread, limit)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("employee_id", p.EmployeeCode), zap.Error(err))
		return nil, err
	}

	res := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		res[i] = mapToResponse(n)
	}
	return res, nil
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	p := contextutil.GetPrincipal(ctx)
	if p == nil || p.EmployeeCode == "" {
		return apperror.ErrUnauthenticated
	}
	nid, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return notificationerrors.ErrNotificationNotFound
	}

	affected, err := s.repo.MarkRead(ctx, nid, p.EmployeeCode, s.now().UTC())
	if err != nil {
		s.logger.Error("mark notification read failed", zap.Uint64("notification_id", nid), zap.Error(err))
		return err
	}
	if affected > 0 {
		return nil
	}

	// sudah dibaca sebelumnya, atau bukan milik caller
	ok, err := s.repo.Exists(ctx, nid, p.EmployeeCode)
	if err != nil {
		return err
	}
	if !ok {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:         n.ID,
		EmployeeID: n.EmployeeCode,
		Kind:       n.Kind,
		Message:    n.Message,
		CreatedAt:  n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.UTC().Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
