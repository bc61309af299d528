package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-hr-admin/internal/attendance"
	"go-hr-admin/internal/leave"
	reporterrors "go-hr-admin/internal/report/errors"
	"go-hr-admin/internal/shared/apperror"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultRangeDays = 30

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context, q RangeQuery) (SummaryResponse, error)
	Export(ctx context.Context, dataset string, q ExportQuery) (ExportFile, error)
}

type service struct {
	repo     Repository
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, location *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if location == nil {
		location = time.Local
	}
	return &service{repo: repo, location: location, now: time.Now, logger: l}
}

func (s *service) dateRange(q RangeQuery) (time.Time, time.Time, error) {
	if v := apperror.ValidateStruct(q); len(v) > 0 {
		return time.Time{}, time.Time{}, apperror.Validation(v...)
	}

	y, m, d := s.now().In(s.location).Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -(defaultRangeDays - 1))
	if q.From != "" {
		from, _ = apperror.ParseISODate(q.From)
	}
	if q.To != "" {
		to, _ = apperror.ParseISODate(q.To)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperror.Validation(apperror.FieldViolation{
			Field:   "to",
			Message: "To must not be before From",
		})
	}
	return from, to, nil
}

// countsFor zero-fills every known label so the dashboard always gets the
// same keys.
func countsFor(labels []string, rows []GroupCount) map[string]int64 {
	out := make(map[string]int64, len(labels))
	for _, l := range labels {
		out[l] = 0
	}
	for _, r := range rows {
		out[r.Label] += r.Count
	}
	return out
}

func (s *service) Summary(ctx context.Context, q RangeQuery) (SummaryResponse, error) {
	from, to, err := s.dateRange(q)
	if err != nil {
		return SummaryResponse{}, err
	}

	var (
		headcount []GroupCount
		leaves    []GroupCount
		attend    []GroupCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		headcount, err = s.repo.HeadcountByDepartment(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		leaves, err = s.repo.LeaveCountsByStatus(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		attend, err = s.repo.AttendanceCountsByStatus(gctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("report summary failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{
		From:         from.Format(apperror.ISODateLayout),
		To:           to.Format(apperror.ISODateLayout),
		ByDepartment: make([]CountItem, 0, len(headcount)),
		Leaves:       countsFor([]string{leave.StatusPending, leave.StatusApproved, leave.StatusRejected}, leaves),
		Attendance:   countsFor([]string{attendance.StatusPresent, attendance.StatusLate, attendance.StatusAbsent}, attend),
	}
	for _, h := range headcount {
		resp.Headcount += h.Count
		resp.ByDepartment = append(resp.ByDepartment, CountItem{Label: h.Label, Count: h.Count})
	}
	return resp, nil
}

func (s *service) Export(ctx context.Context, dataset string, q ExportQuery) (ExportFile, error) {
	dataset = strings.ToLower(strings.TrimSpace(dataset))
	if v := apperror.ValidateStruct(q); len(v) > 0 {
		return ExportFile{}, apperror.Validation(v...)
	}
	format := q.Format
	if format == "" {
		format = FormatCSV
	}

	t, err := s.load(ctx, dataset, q.RangeQuery)
	if err != nil {
		return ExportFile{}, err
	}

	body, contentType, err := render(format, t)
	if err != nil {
		s.logger.Error("render report failed", zap.String("dataset", dataset), zap.String("format", format), zap.Error(err))
		return ExportFile{}, err
	}

	today := s.now().In(s.location).Format(apperror.ISODateLayout)
	s.logger.Info("report exported",
		zap.String("dataset", dataset),
		zap.String("format", format),
		zap.Int("rows", len(t.rows)),
	)
	return ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", dataset, today, format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func (s *service) load(ctx context.Context, dataset string, q RangeQuery) (table, error) {
	switch dataset {
	case DatasetEmployees:
		rows, err := s.repo.Employees(ctx)
		if err != nil {
			return table{}, err
		}
		return employeesTable(rows), nil
	case DatasetLeaves, DatasetAttendance:
	default:
		return table{}, reporterrors.ErrUnknownDataset
	}

	from, to, err := s.dateRange(q)
	if err != nil {
		return table{}, err
	}
	if dataset == DatasetLeaves {
		rows, err := s.repo.Leaves(ctx, from, to)
		if err != nil {
			return table{}, err
		}
		return leavesTable(rows), nil
	}
	rows, err := s.repo.Attendance(ctx, from, to)
	if err != nil {
		return table{}, err
	}
	return attendanceTable(rows), nil
}
