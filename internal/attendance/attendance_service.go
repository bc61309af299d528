package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-hr-admin/internal/attendance/errors"
	"go-hr-admin/internal/config"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultRangeDays = 30

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)
	List(ctx context.Context, q ListAttendanceQuery) ([]AttendanceResponse, error)
	Mine(ctx context.Context, q ListAttendanceQuery) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	cfg    config.AttendanceConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, cfg config.AttendanceConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &service{db: db, repo: repo, cfg: cfg, now: time.Now, logger: l}
}

// localDay returns t in the office zone and its calendar date at UTC
// midnight, the form DATE columns are compared in.
func (s *service) localDay(t time.Time) (time.Time, time.Time) {
	local := t.In(s.cfg.Location)
	y, m, d := local.Date()
	return local, time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) isLate(local time.Time) bool {
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return local.Sub(midnight) > s.cfg.LateAfter
}

func callerCode(ctx context.Context) (string, error) {
	p := contextutil.GetPrincipal(ctx)
	if p == nil || p.EmployeeCode == "" {
		return "", apperror.ErrUnauthenticated
	}
	return p.EmployeeCode, nil
}

func (s *service) ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error) {
	code, err := callerCode(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}
	local, day := s.localDay(s.now())
	s.logger.Debug("clock in requested", zap.String("employee_id", code), zap.Time("at", local))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, code, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("clock in lookup failed", zap.String("employee_id", code), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	status := StatusPresent
	if s.isLate(local) {
		status = StatusLate
	}

	row := &Attendance{
		EmployeeCode:   code,
		AttendanceDate: day,
		ClockIn:        local.UTC().Truncate(time.Second),
		Status:         status,
		Notes:          strings.TrimSpace(req.Notes),
	}
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("clock in persist failed", zap.String("employee_id", code), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock in commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock in success", zap.String("employee_id", code), zap.String("status", status))
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error) {
	code, err := callerCode(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}
	local, day := s.localDay(s.now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeAndDate(ctx, code, day)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	out := local.UTC().Truncate(time.Second)
	row.ClockOut = &out
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		row.Notes = notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("clock out persist failed", zap.String("employee_id", code), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("clock out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock out success", zap.String("employee_id", code))
	return mapToResponse(*row), nil
}

func (s *service) List(ctx context.Context, q ListAttendanceQuery) ([]AttendanceResponse, error) {
	filter, err := s.buildFilter(q)
	if err != nil {
		return nil, err
	}
	filter.EmployeeCode = strings.ToUpper(strings.TrimSpace(q.EmployeeID))
	return s.list(ctx, filter)
}

func (s *service) Mine(ctx context.Context, q ListAttendanceQuery) ([]AttendanceResponse, error) {
	code, err := callerCode(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := s.buildFilter(q)
	if err != nil {
		return nil, err
	}
	filter.EmployeeCode = code
	return s.list(ctx, filter)
}

func (s *service) list(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) buildFilter(q ListAttendanceQuery) (ListFilter, error) {
	if v := apperror.ValidateStruct(q); len(v) > 0 {
		return ListFilter{}, apperror.Validation(v...)
	}

	_, today := s.localDay(s.now())
	f := ListFilter{From: today.AddDate(0, 0, -(defaultRangeDays - 1)), To: today}
	if q.From != "" {
		f.From, _ = apperror.ParseISODate(q.From)
	}
	if q.To != "" {
		f.To, _ = apperror.ParseISODate(q.To)
	}
	if f.To.Before(f.From) {
		return ListFilter{}, apperror.Validation(apperror.FieldViolation{
			Field:   "to",
			Message: "To must not be before From",
		})
	}
	return f, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeCode,
		AttendanceDate: a.AttendanceDate.Format(apperror.ISODateLayout),
		ClockIn:        a.ClockIn.UTC().Format(time.RFC3339),
		Status:         a.Status,
		Notes:          a.Notes,
	}
	if a.ClockOut != nil {
		v := a.ClockOut.UTC().Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
