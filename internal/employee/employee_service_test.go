package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go-hr-admin/internal/employee"
	employeeerrors "go-hr-admin/internal/employee/errors"
	employeeMock "go-hr-admin/internal/employee/mock"
	"go-hr-admin/internal/events"
	"go-hr-admin/internal/messaging/kafka"
	kafkaMock "go-hr-admin/internal/messaging/kafka/mock"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	redismock redismock.ClientMock
	outbox    *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	apperror.Init()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := employee.NewServiceWithOutbox(db, repo, outboxRepo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

// outboxMatcher memastikan event yang masuk outbox membawa request id dan tipe event
type outboxMatcher struct {
	requestID  string
	employeeID string
}

func (m outboxMatcher) Matches(x any) bool {
	ev, ok := x.(kafka.OutboxEvent)
	if !ok {
		return false
	}
	var body events.EmployeeCreatedEvent
	if err := json.Unmarshal(ev.Payload, &body); err != nil {
		return false
	}
	return ev.RequestID == m.requestID &&
		ev.EventType == events.EmployeeCreatedType &&
		ev.Topic == events.EmployeeCreatedTopic &&
		ev.AggregateID == m.employeeID &&
		body.EmployeeID == m.employeeID &&
		body.RequestID == m.requestID
}

func (m outboxMatcher) String() string {
	return fmt.Sprintf("outbox event for %s with request id %s", m.employeeID, m.requestID)
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Name:       "Asha Rao",
		Email:      "Asha@Example.com",
		Department: "Engineering",
		JoinedOn:   "2025-01-10",
	}
}

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	httpErr := apperror.ToHTTP(err)
	require.Equal(t, http.StatusBadRequest, httpErr.Status)
	violations, ok := httpErr.Details.([]apperror.FieldViolation)
	require.True(t, ok)
	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("success - auto generate employee code", func(t *testing.T) {
		deps := setupServiceTest(t)
		rid := "REQ-123-ABC"
		ctx := contextutil.WithRequestID(context.Background(), rid)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ListCodes(gomock.Any()).Return([]string{"EMP001", "EMP007"}, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP008", e.EmployeeCode)
				assert.Equal(t, "asha@example.com", e.Email)
				assert.Equal(t, employee.StatusActive, e.Status)
				assert.Equal(t, uint(4), e.RoleID)
				assert.Nil(t, e.FirebaseUID)
				e.ID = 8
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), outboxMatcher{requestID: rid, employeeID: "EMP008"}).
			Return(nil)
		deps.redismock.ExpectIncr(employee.EmployeeListVersion).SetVal(2)

		resp, err := deps.service.Create(ctx, validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, uint(8), resp.ID)
		assert.Equal(t, "EMP008", resp.EmployeeID)
		assert.Equal(t, "Employee", resp.Role)
		assert.Equal(t, "2025-01-10", resp.JoinedOn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("success - explicit employee code skips generation", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validCreateRequest()
		req.EmployeeID = "EMP100"
		req.FirebaseUID = "uid-100"
		req.RoleID = 2

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ListCodes(gomock.Any()).Times(0)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				require.NotNil(t, e.FirebaseUID)
				assert.Equal(t, "uid-100", *e.FirebaseUID)
				assert.Equal(t, "EMP100", e.EmployeeCode)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectIncr(employee.EmployeeListVersion).SetVal(1)

		resp, err := deps.service.Create(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "HR", resp.Role)
		assert.Equal(t, "uid-100", resp.FirebaseUID)
	})

	t.Run("success - explicit employee code is uppercased", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validCreateRequest()
		req.EmployeeID = " emp205 "

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ListCodes(gomock.Any()).Times(0)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP205", e.EmployeeCode)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectIncr(employee.EmployeeListVersion).SetVal(1)

		resp, err := deps.service.Create(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "EMP205", resp.EmployeeID)
	})

	t.Run("validation - missing name is reported", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validCreateRequest()
		req.Name = ""

		_, err := deps.service.Create(context.Background(), req)

		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, []string{"name"}, violationFields(t, err))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("validation - lists every invalid field", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{Email: "not-an-email", JoinedOn: "10/01/2025", Status: "Retired"}

		_, err := deps.service.Create(context.Background(), req)

		assert.ElementsMatch(t,
			[]string{"name", "email", "department", "joinedOn", "status"},
			violationFields(t, err),
		)
	})

	t.Run("duplicate email -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validCreateRequest()
		req.EmployeeID = "EMP002"

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'asha@example.com' for key 'employees.uq_employees_email'"})

		_, err := deps.service.Create(context.Background(), req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
		assert.Equal(t, http.StatusConflict, apperror.ToHTTP(err).Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate employee code -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validCreateRequest()
		req.EmployeeID = "EMP001"

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'EMP001' for key 'employees.uq_employees_code'"})

		_, err := deps.service.Create(context.Background(), req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeCodeAlreadyExists)
	})

	t.Run("outbox error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validCreateRequest()
		req.EmployeeID = "EMP003"

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

		_, err := deps.service.Create(context.Background(), req)

		assert.EqualError(t, err, "outbox down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	joined := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("numeric id looks up primary key", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindByID(gomock.Any(), uint(7)).
			Return(&employee.Employee{ID: 7, EmployeeCode: "EMP007", Name: "Budi", RoleID: 3, JoinedOn: joined}, nil)

		resp, err := deps.service.GetByID(context.Background(), "7")

		require.NoError(t, err)
		assert.Equal(t, "EMP007", resp.EmployeeID)
		assert.Equal(t, "Manager", resp.Role)
	})

	t.Run("employee code is case insensitive", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindByCode(gomock.Any(), "EMP007").
			Return(&employee.Employee{ID: 7, EmployeeCode: "EMP007", JoinedOn: joined}, nil)

		resp, err := deps.service.GetByID(context.Background(), "emp007")

		require.NoError(t, err)
		assert.Equal(t, uint(7), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindByCode(gomock.Any(), "EMP404").
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(context.Background(), "EMP404")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.Equal(t, apperror.CodeNotFound, apperror.ToHTTP(err).Code)
	})
}

func TestEmployeeService_List(t *testing.T) {
	stamp := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	rows := []employee.Employee{{
		ID:           1,
		EmployeeCode: "EMP001",
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		Department:   "Engineering",
		RoleID:       4,
		JoinedOn:     time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:       employee.StatusActive,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
	}}
	expected := employee.ListResult{
		Items: []employee.EmployeeResponse{{
			ID:         1,
			EmployeeID: "EMP001",
			Name:       "Asha Rao",
			Email:      "asha@example.com",
			Department: "Engineering",
			RoleID:     4,
			Role:       "Employee",
			JoinedOn:   "2025-01-10",
			Status:     employee.StatusActive,
			CreatedAt:  "2025-01-10T09:00:00Z",
			UpdatedAt:  "2025-01-10T09:00:00Z",
		}},
		Total:  1,
		Limit:  50,
		Offset: 0,
	}

	t.Run("cache hit - repository is not touched", func(t *testing.T) {
		deps := setupServiceTest(t)
		key := employee.GetEmployeeListKey("3", employee.ListFilter{Limit: 50})
		payload, _ := json.Marshal(expected)

		deps.redismock.ExpectGet(employee.EmployeeListVersion).SetVal("3")
		deps.redismock.ExpectGet(key).SetVal(string(payload))
		deps.repo.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

		res, err := deps.service.List(context.Background(), employee.ListEmployeesQuery{})

		require.NoError(t, err)
		assert.Equal(t, expected, res)
	})

	t.Run("cache miss - reads repository and stores page", func(t *testing.T) {
		deps := setupServiceTest(t)
		filter := employee.ListFilter{Limit: 50, Department: "Engineering"}
		key := employee.GetEmployeeListKey("0", filter)
		payload, _ := json.Marshal(expected)

		deps.redismock.ExpectGet(employee.EmployeeListVersion).RedisNil()
		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().List(gomock.Any(), filter).Return(rows, int64(1), nil)
		deps.redismock.ExpectSet(key, payload, 10*time.Minute).SetVal("OK")

		res, err := deps.service.List(context.Background(), employee.ListEmployeesQuery{Department: " Engineering "})

		require.NoError(t, err)
		assert.Equal(t, expected, res)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("limit is clamped", func(t *testing.T) {
		deps := setupServiceTest(t)
		filter := employee.ListFilter{Limit: 500, Offset: 20}
		key := employee.GetEmployeeListKey("9", filter)

		deps.redismock.ExpectGet(employee.EmployeeListVersion).SetVal("9")
		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().List(gomock.Any(), filter).Return(nil, int64(0), nil)
		deps.redismock.ExpectSet(key, []byte(`{"items":[],"total":0,"limit":500,"offset":20}`), 10*time.Minute).SetVal("OK")

		res, err := deps.service.List(context.Background(), employee.ListEmployeesQuery{Limit: 10000, Offset: 20})

		require.NoError(t, err)
		assert.Equal(t, 500, res.Limit)
		assert.Empty(t, res.Items)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		filter := employee.ListFilter{Limit: 50, Q: "zz"}
		key := employee.GetEmployeeListKey("0", filter)

		deps.redismock.ExpectGet(employee.EmployeeListVersion).RedisNil()
		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().List(gomock.Any(), filter).Return(nil, int64(0), errors.New("database connection lost"))

		_, err := deps.service.List(context.Background(), employee.ListEmployeesQuery{Q: "zz"})

		assert.ErrorContains(t, err, "database connection lost")
	})
}

func TestEmployeeService_Update(t *testing.T) {
	joined := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success - overwrites fields and bumps cache version", func(t *testing.T) {
		deps := setupServiceTest(t)
		existing := &employee.Employee{ID: 7, EmployeeCode: "EMP007", Name: "Old", Email: "old@example.com", RoleID: 4, JoinedOn: joined, Status: employee.StatusActive}
		req := employee.UpdateEmployeeRequest{
			Name:       "Budi Santoso",
			Email:      "budi@example.com",
			Department: "Finance",
			RoleID:     3,
			JoinedOn:   "2024-06-01",
			Status:     employee.StatusInactive,
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), uint(7)).Return(existing, nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP007", e.EmployeeCode)
				assert.Equal(t, "Budi Santoso", e.Name)
				assert.Equal(t, "Finance", e.Department)
				assert.Equal(t, employee.StatusInactive, e.Status)
				return nil
			})
		deps.redismock.ExpectIncr(employee.EmployeeListVersion).SetVal(5)

		resp, err := deps.service.Update(context.Background(), "7", req)

		require.NoError(t, err)
		assert.Equal(t, "Manager", resp.Role)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("not found -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.UpdateEmployeeRequest{Name: "X", Email: "x@example.com", Department: "Ops", JoinedOn: "2024-06-01"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByCode(gomock.Any(), "EMP999").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(context.Background(), "EMP999", req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("validation error", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Update(context.Background(), "7", employee.UpdateEmployeeRequest{Email: "x@example.com"})

		assert.ElementsMatch(t, []string{"name", "department", "joinedOn"}, violationFields(t, err))
	})
}
