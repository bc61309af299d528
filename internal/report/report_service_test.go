package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"go-hr-admin/internal/attendance"
	"go-hr-admin/internal/employee"
	"go-hr-admin/internal/leave"
	reporterrors "go-hr-admin/internal/report/errors"
	"go-hr-admin/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type fakeRepo struct {
	headcountFn   func(ctx context.Context) ([]GroupCount, error)
	leaveCountFn  func(ctx context.Context, from, to time.Time) ([]GroupCount, error)
	attendCountFn func(ctx context.Context, from, to time.Time) ([]GroupCount, error)
	employeesFn   func(ctx context.Context) ([]employee.Employee, error)
	leavesFn      func(ctx context.Context, from, to time.Time) ([]leave.Leave, error)
	attendanceFn  func(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error)
}

func (f *fakeRepo) HeadcountByDepartment(ctx context.Context) ([]GroupCount, error) {
	return f.headcountFn(ctx)
}
func (f *fakeRepo) LeaveCountsByStatus(ctx context.Context, from, to time.Time) ([]GroupCount, error) {
	return f.leaveCountFn(ctx, from, to)
}
func (f *fakeRepo) AttendanceCountsByStatus(ctx context.Context, from, to time.Time) ([]GroupCount, error) {
	return f.attendCountFn(ctx, from, to)
}
func (f *fakeRepo) Employees(ctx context.Context) ([]employee.Employee, error) {
	return f.employeesFn(ctx)
}
func (f *fakeRepo) Leaves(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
	return f.leavesFn(ctx, from, to)
}
func (f *fakeRepo) Attendance(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	return f.attendanceFn(ctx, from, to)
}

func newTestService(repo Repository) *service {
	apperror.Init()
	svc := NewService(repo, time.UTC, zap.NewNop()).(*service)
	svc.now = func() time.Time { return time.Date(2025, 1, 31, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Summary(t *testing.T) {
	t.Run("aggregates and zero-fills", func(t *testing.T) {
		repo := &fakeRepo{
			headcountFn: func(ctx context.Context) ([]GroupCount, error) {
				return []GroupCount{{Label: "Engineering", Count: 5}, {Label: "HR", Count: 2}}, nil
			},
			leaveCountFn: func(ctx context.Context, from, to time.Time) ([]GroupCount, error) {
				assert.Equal(t, "2025-01-02", from.Format(apperror.ISODateLayout))
				assert.Equal(t, "2025-01-31", to.Format(apperror.ISODateLayout))
				return []GroupCount{{Label: leave.StatusPending, Count: 3}}, nil
			},
			attendCountFn: func(ctx context.Context, from, to time.Time) ([]GroupCount, error) {
				return []GroupCount{{Label: attendance.StatusLate, Count: 4}, {Label: attendance.StatusPresent, Count: 20}}, nil
			},
		}

		resp, err := newTestService(repo).Summary(context.Background(), RangeQuery{})

		require.NoError(t, err)
		assert.Equal(t, "2025-01-02", resp.From)
		assert.Equal(t, "2025-01-31", resp.To)
		assert.Equal(t, int64(7), resp.Headcount)
		assert.Equal(t, []CountItem{{Label: "Engineering", Count: 5}, {Label: "HR", Count: 2}}, resp.ByDepartment)
		assert.Equal(t, map[string]int64{"Pending": 3, "Approved": 0, "Rejected": 0}, resp.Leaves)
		assert.Equal(t, map[string]int64{"Present": 20, "Late": 4, "Absent": 0}, resp.Attendance)
	})

	t.Run("query failure", func(t *testing.T) {
		dbErr := errors.New("db down")
		repo := &fakeRepo{
			headcountFn:   func(ctx context.Context) ([]GroupCount, error) { return nil, dbErr },
			leaveCountFn:  func(ctx context.Context, from, to time.Time) ([]GroupCount, error) { return nil, nil },
			attendCountFn: func(ctx context.Context, from, to time.Time) ([]GroupCount, error) { return nil, nil },
		}

		_, err := newTestService(repo).Summary(context.Background(), RangeQuery{})

		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).Summary(context.Background(), RangeQuery{From: "2025-02-01", To: "2025-01-01"})

		require.ErrorIs(t, err, apperror.ErrValidation)
		violations := apperror.FieldViolations(err)
		require.Len(t, violations, 1)
		assert.Equal(t, "to", violations[0].Field)
	})
}

func TestService_Export(t *testing.T) {
	remark := `said "ok", thanks`
	leaves := []leave.Leave{{
		ID:           1,
		EmployeeCode: "EMP001",
		LeaveType:    leave.TypeSick,
		StartDate:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Days:         0.5,
		Status:       leave.StatusApproved,
		Remark:       &remark,
	}}

	t.Run("leaves csv quotes every cell", func(t *testing.T) {
		repo := &fakeRepo{
			leavesFn: func(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
				assert.Equal(t, "2025-01-01", from.Format(apperror.ISODateLayout))
				assert.Equal(t, "2025-01-31", to.Format(apperror.ISODateLayout))
				return leaves, nil
			},
		}

		file, err := newTestService(repo).Export(context.Background(), "Leaves", ExportQuery{
			RangeQuery: RangeQuery{From: "2025-01-01", To: "2025-01-31"},
		})

		require.NoError(t, err)
		assert.Equal(t, "leaves-2025-01-31.csv", file.Filename)
		assert.Equal(t, contentTypeCSV, file.ContentType)
		want := `"ID","Employee ID","Leave Type","Start Date","End Date","Days","Reason","Emergency","Status","Remark","Reviewed By","Reviewed At"` + "\n" +
			`"1","EMP001","Sick","2025-01-10","2025-01-10","0.5","","false","Approved","said ""ok"", thanks","",""` + "\n"
		assert.Equal(t, want, string(file.Body))
	})

	t.Run("employees xlsx", func(t *testing.T) {
		repo := &fakeRepo{
			employeesFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{{
					EmployeeCode: "EMP001",
					Name:         "Asha",
					Email:        "asha@example.com",
					Department:   "Engineering",
					RoleID:       4,
					JoinedOn:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
					Status:       employee.StatusActive,
				}}, nil
			},
		}

		file, err := newTestService(repo).Export(context.Background(), DatasetEmployees, ExportQuery{Format: FormatXLSX})

		require.NoError(t, err)
		assert.Equal(t, "employees-2025-01-31.xlsx", file.Filename)
		assert.Equal(t, contentTypeXLSX, file.ContentType)

		f, err := excelize.OpenReader(bytes.NewReader(file.Body))
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Employees")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Employee ID", rows[0][0])
		assert.Equal(t, []string{"EMP001", "Asha", "asha@example.com", "Engineering", "Employee"}, rows[1][:5])
		assert.Equal(t, "2024-03-01", rows[1][8])
	})

	t.Run("attendance rows", func(t *testing.T) {
		out := time.Date(2025, 1, 10, 17, 0, 0, 0, time.UTC)
		repo := &fakeRepo{
			attendanceFn: func(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
				return []attendance.Attendance{{
					EmployeeCode:   "EMP001",
					AttendanceDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
					ClockIn:        time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC),
					ClockOut:       &out,
					Status:         attendance.StatusLate,
				}}, nil
			},
		}

		file, err := newTestService(repo).Export(context.Background(), DatasetAttendance, ExportQuery{})

		require.NoError(t, err)
		assert.Contains(t, string(file.Body), `"EMP001","2025-01-10","2025-01-10T09:30:00Z","2025-01-10T17:00:00Z","Late",""`)
	})

	t.Run("formula-looking text is quoted", func(t *testing.T) {
		formula := "=HYPERLINK(\"http://x\")"
		repo := &fakeRepo{
			leavesFn: func(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
				return []leave.Leave{{
					ID:           2,
					EmployeeCode: "EMP002",
					LeaveType:    leave.TypeCasual,
					StartDate:    time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
					EndDate:      time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
					Days:         1,
					Reason:       "@SUM(A1:A9)",
					Status:       leave.StatusRejected,
					Remark:       &formula,
				}}, nil
			},
		}

		file, err := newTestService(repo).Export(context.Background(), DatasetLeaves, ExportQuery{Format: FormatXLSX})
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(file.Body))
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Leaves")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "'@SUM(A1:A9)", rows[1][6])
		assert.Equal(t, "'"+formula, rows[1][9])
	})

	t.Run("unknown dataset", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).Export(context.Background(), "payroll", ExportQuery{})

		assert.ErrorIs(t, err, reporterrors.ErrUnknownDataset)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).Export(context.Background(), DatasetEmployees, ExportQuery{Format: "pdf"})

		require.ErrorIs(t, err, apperror.ErrValidation)
		violations := apperror.FieldViolations(err)
		require.Len(t, violations, 1)
		assert.Equal(t, "format", violations[0].Field)
	})
}
