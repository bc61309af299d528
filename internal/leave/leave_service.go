package leave

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-hr-admin/internal/config"
	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/events"
	leaveerrors "go-hr-admin/internal/leave/errors"
	"go-hr-admin/internal/messaging/kafka"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/audit"
	"go-hr-admin/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Enforcer answers permission checks for a role; rbac.Service satisfies it.
type Enforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, q ListLeavesQuery) ([]LeaveResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (LeaveResponse, error)
	History(ctx context.Context, employeeCode string) ([]LeaveResponse, error)
	Balances(ctx context.Context, employeeCode string) (BalanceResponse, error)
	Validate(ctx context.Context, req CreateLeaveRequest) (ValidationResult, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	enforcer Enforcer
	audit    audit.Logger
	cfg      config.LeaveConfig
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	enforcer Enforcer,
	auditLogger audit.Logger,
	cfg config.LeaveConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		enforcer: enforcer,
		audit:    auditLogger,
		cfg:      cfg,
		now:      time.Now,
		logger:   l,
	}
}

// validateCreate collects every violation of req, including an end date
// before the start date.
func validateCreate(req CreateLeaveRequest) (time.Time, time.Time, []apperror.FieldViolation) {
	violations := apperror.ValidateStruct(req)

	start, startErr := apperror.ParseISODate(req.StartDate)
	end, endErr := apperror.ParseISODate(req.EndDate)
	if startErr == nil && endErr == nil && end.Before(start) {
		violations = append(violations, apperror.FieldViolation{
			Field:   "endDate",
			Message: "End Date must not be before Start Date",
		})
	}
	return start, end, violations
}

// canReadAll reports whether p may read other employees' leave.
func (s *service) canReadAll(p *domain.Principal) bool {
	if s.enforcer == nil {
		return domain.IsReviewer(p.Role)
	}
	ok, err := s.enforcer.Enforce(p.Role, "leave", "read_all")
	if err != nil {
		s.logger.Error("leave read_all enforce failed", zap.String("role", p.Role), zap.Error(err))
		return false
	}
	return ok
}

// authorizeEmployee lets callers act on their own code; reviewers may act
// on anyone's. Calls without a principal are internal and always allowed.
func (s *service) authorizeEmployee(ctx context.Context, employeeCode string) error {
	p := contextutil.GetPrincipal(ctx)
	if p == nil || strings.EqualFold(p.EmployeeCode, employeeCode) {
		return nil
	}
	if s.canReadAll(p) {
		return nil
	}
	s.logger.Warn("leave access to another employee denied",
		zap.String("caller", p.EmployeeCode),
		zap.String("employee_id", employeeCode),
	)
	return leaveerrors.ErrNotOwnLeave
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	start, end, violations := validateCreate(req)
	if len(violations) > 0 {
		s.logger.Warn("create leave validation failed",
			zap.String("request_id", rid),
			zap.Int("violations", len(violations)),
		)
		return LeaveResponse{}, apperror.Validation(violations...)
	}

	code := strings.ToUpper(strings.TrimSpace(req.EmployeeID))
	if err := s.authorizeEmployee(ctx, code); err != nil {
		return LeaveResponse{}, err
	}

	l := &Leave{
		EmployeeCode: code,
		LeaveType:    req.LeaveType,
		StartDate:    start,
		EndDate:      end,
		Days:         req.Days,
		Reason:       strings.TrimSpace(req.Reason),
		Emergency:    req.Emergency,
		Status:       StatusPending,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.Uint64("leave_id", l.ID),
		zap.String("employee_id", code),
	)
	return mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context, q ListLeavesQuery) ([]LeaveResponse, error) {
	leaves, err := s.repo.List(ctx, ListFilter{
		Status:       q.Status,
		EmployeeCode: strings.ToUpper(strings.TrimSpace(q.EmployeeID)),
		LeaveType:    q.LeaveType,
	})
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave status requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("target_status", req.Status),
	)

	if v := apperror.ValidateStruct(req); len(v) > 0 {
		return LeaveResponse{}, apperror.Validation(v...)
	}

	leaveID, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		s.logger.Warn("update leave status fetch failed", zap.Uint64("leave_id", leaveID), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	onlyPending := !s.cfg.AllowReviewOverride
	if onlyPending && l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyDecided
	}

	decision := Decision{
		Status:     req.Status,
		Remark:     trimmedOrNil(req.Remark),
		ReviewedAt: s.now().UTC().Truncate(time.Second),
	}
	if p := contextutil.GetPrincipal(ctx); p != nil && p.EmployeeCode != "" {
		reviewer := p.EmployeeCode
		decision.ReviewedBy = &reviewer
	}

	affected, err := qtx.UpdateStatus(ctx, leaveID, decision, onlyPending)
	if err != nil {
		s.logger.Error("update leave status persist failed", zap.Uint64("leave_id", leaveID), zap.Error(err))
		return LeaveResponse{}, err
	}
	if affected == 0 && onlyPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyDecided
	}

	previous := l.Status
	l.Status = decision.Status
	l.Remark = decision.Remark
	l.ReviewedBy = decision.ReviewedBy
	l.ReviewedAt = &decision.ReviewedAt
	l.UpdatedAt = decision.ReviewedAt

	if s.outbox != nil {
		if err := s.enqueueDecided(ctx, tx, rid, *l); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave status commit failed", zap.Uint64("leave_id", leaveID), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  audit.ActionLeaveDecided,
		Message: fmt.Sprintf("leave %d %s", l.ID, l.Status),
		Meta: map[string]any{
			"leaveId":    l.ID,
			"employeeId": l.EmployeeCode,
			"from":       previous,
			"to":         l.Status,
		},
	})
	s.logger.Info("update leave status success",
		zap.String("request_id", rid),
		zap.Uint64("leave_id", l.ID),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

func (s *service) enqueueDecided(ctx context.Context, tx *sql.Tx, rid string, l Leave) error {
	eventID := uuid.NewString()
	body := events.LeaveDecidedEvent{
		EventID:    eventID,
		EventType:  events.LeaveDecidedType,
		RequestID:  rid,
		LeaveID:    l.ID,
		EmployeeID: l.EmployeeCode,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format(apperror.ISODateLayout),
		EndDate:    l.EndDate.Format(apperror.ISODateLayout),
		Status:     l.Status,
		OccurredAt: l.ReviewedAt.UTC(),
	}
	if l.Remark != nil {
		body.Remark = *l.Remark
	}
	if l.ReviewedBy != nil {
		body.ReviewedBy = *l.ReviewedBy
	}

	ev, err := kafka.NewOutboxEvent(eventID, rid, "leave", strconv.FormatUint(l.ID, 10),
		events.LeaveDecidedType, events.LeaveDecidedTopic, body)
	if err != nil {
		s.logger.Error("marshal leave decided event failed", zap.Error(err))
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
		s.logger.Error("update leave status outbox persist failed",
			zap.Uint64("leave_id", l.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) History(ctx context.Context, employeeCode string) ([]LeaveResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(employeeCode))
	if err := s.authorizeEmployee(ctx, code); err != nil {
		return nil, err
	}

	leaves, err := s.repo.List(ctx, ListFilter{EmployeeCode: code})
	if err != nil {
		s.logger.Error("leave history failed", zap.String("employee_id", code), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Balances(ctx context.Context, employeeCode string) (BalanceResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(employeeCode))
	if err := s.authorizeEmployee(ctx, code); err != nil {
		return BalanceResponse{}, err
	}

	year := s.now().UTC().Year()
	balances, err := s.balancesFor(ctx, code, year)
	if err != nil {
		return BalanceResponse{}, err
	}

	return BalanceResponse{EmployeeID: code, Year: year, Balances: balances}, nil
}

func (s *service) balancesFor(ctx context.Context, code string, year int) ([]LeaveBalance, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	totals, err := s.repo.SumDays(ctx, code, from, to)
	if err != nil {
		s.logger.Error("leave balance sum failed", zap.String("employee_id", code), zap.Error(err))
		return nil, err
	}

	balances := make([]LeaveBalance, 0, len(LeaveTypes))
	for _, lt := range LeaveTypes {
		b := LeaveBalance{LeaveType: lt, Entitlement: s.cfg.Entitlements[lt]}
		for _, t := range totals {
			if t.LeaveType != lt {
				continue
			}
			switch t.Status {
			case StatusApproved:
				b.Used += t.Days
			case StatusPending:
				b.Pending += t.Days
			}
		}
		b.Remaining = b.Entitlement - b.Used
		balances = append(balances, b)
	}
	return balances, nil
}

func (s *service) Validate(ctx context.Context, req CreateLeaveRequest) (ValidationResult, error) {
	start, end, violations := validateCreate(req)
	if len(violations) > 0 {
		return ValidationResult{Violations: violations, Overlaps: []LeaveResponse{}}, nil
	}

	code := strings.ToUpper(strings.TrimSpace(req.EmployeeID))
	if err := s.authorizeEmployee(ctx, code); err != nil {
		return ValidationResult{}, err
	}

	overlaps, err := s.repo.FindOverlapping(ctx, code, start, end)
	if err != nil {
		s.logger.Error("leave overlap check failed", zap.String("employee_id", code), zap.Error(err))
		return ValidationResult{}, err
	}
	if len(overlaps) > 0 {
		violations = append(violations, apperror.FieldViolation{
			Field:   "startDate",
			Message: fmt.Sprintf("Overlaps %d existing leave request(s)", len(overlaps)),
		})
	}

	balances, err := s.balancesFor(ctx, code, start.Year())
	if err != nil {
		return ValidationResult{}, err
	}
	var remaining float64
	for _, b := range balances {
		if b.LeaveType == req.LeaveType {
			// pending requests already reserve days
			remaining = b.Remaining - b.Pending
		}
	}
	if req.Days > remaining {
		violations = append(violations, apperror.FieldViolation{
			Field:   "days",
			Message: fmt.Sprintf("Days exceed the remaining %s balance of %g", req.LeaveType, remaining),
		})
	}

	if violations == nil {
		violations = []apperror.FieldViolation{}
	}
	return ValidationResult{
		Valid:      len(violations) == 0,
		Violations: violations,
		Overlaps:   mapToListResponse(overlaps),
		Remaining:  &remaining,
	}, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeCode,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format(apperror.ISODateLayout),
		EndDate:    l.EndDate.Format(apperror.ISODateLayout),
		Days:       l.Days,
		Reason:     l.Reason,
		Emergency:  l.Emergency,
		Status:     l.Status,
		Remark:     l.Remark,
		ReviewedBy: l.ReviewedBy,
		CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  l.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
