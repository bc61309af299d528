package attendance_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hr-admin/internal/attendance"
	attendanceerrors "go-hr-admin/internal/attendance/errors"
	attendanceMock "go-hr-admin/internal/attendance/mock"
	"go-hr-admin/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string                    `json:"code"`
		Details []apperror.FieldViolation `json:"details"`
	} `json:"error"`
}

func setupHandlerTest(t *testing.T) (*gin.Engine, *attendanceMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	svc := attendanceMock.NewMockService(gomock.NewController(t))
	h := attendance.NewHandler(svc)

	r := gin.New()
	r.GET("/api/attendance", h.List)
	r.GET("/api/attendance/me", h.Mine)
	r.POST("/api/attendance/clock-in", h.ClockIn)
	r.POST("/api/attendance/clock-out", h.ClockOut)
	return r, svc
}

func serve(r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestAttendanceHandler_ClockIn(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		r, svc := setupHandlerTest(t)
		svc.EXPECT().
			ClockIn(gomock.Any(), attendance.ClockInRequest{}).
			Return(attendance.AttendanceResponse{ID: 1, EmployeeID: "EMP001", Status: attendance.StatusPresent}, nil)

		w, env := serve(r, http.MethodPost, "/api/attendance/clock-in", "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Ok)
		var got attendance.AttendanceResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, attendance.StatusPresent, got.Status)
	})

	t.Run("with notes", func(t *testing.T) {
		r, svc := setupHandlerTest(t)
		svc.EXPECT().
			ClockIn(gomock.Any(), attendance.ClockInRequest{Notes: "client visit"}).
			Return(attendance.AttendanceResponse{ID: 2, Status: attendance.StatusLate}, nil)

		w, _ := serve(r, http.MethodPost, "/api/attendance/clock-in", `{"notes":"client visit"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("already clocked in", func(t *testing.T) {
		r, svc := setupHandlerTest(t)
		svc.EXPECT().ClockIn(gomock.Any(), gomock.Any()).Return(attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn)

		w, env := serve(r, http.MethodPost, "/api/attendance/clock-in", "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, env.Ok)
		assert.Equal(t, apperror.CodeConflict, env.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		r, _ := setupHandlerTest(t)

		w, env := serve(r, http.MethodPost, "/api/attendance/clock-in", `{"notes":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, env.Error.Details, 1)
		assert.Equal(t, "body", env.Error.Details[0].Field)
	})
}

func TestAttendanceHandler_ClockOut(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := setupHandlerTest(t)
		out := "2025-01-10T17:30:00Z"
		svc.EXPECT().
			ClockOut(gomock.Any(), attendance.ClockOutRequest{}).
			Return(attendance.AttendanceResponse{ID: 1, ClockOut: &out}, nil)

		w, _ := serve(r, http.MethodPost, "/api/attendance/clock-out", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no clock in", func(t *testing.T) {
		r, svc := setupHandlerTest(t)
		svc.EXPECT().ClockOut(gomock.Any(), gomock.Any()).Return(attendance.AttendanceResponse{}, attendanceerrors.ErrClockInNotFound)

		w, env := serve(r, http.MethodPost, "/api/attendance/clock-out", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperror.CodeNotFound, env.Error.Code)
	})
}

func TestAttendanceHandler_List(t *testing.T) {
	t.Run("passes filters", func(t *testing.T) {
		r, svc := setupHandlerTest(t)
		svc.EXPECT().
			List(gomock.Any(), attendance.ListAttendanceQuery{From: "2025-01-01", To: "2025-01-31", EmployeeID: "EMP001"}).
			Return([]attendance.AttendanceResponse{{ID: 1}, {ID: 2}}, nil)

		w, env := serve(r, http.MethodGet, "/api/attendance?from=2025-01-01&to=2025-01-31&employeeId=EMP001", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var got []attendance.AttendanceResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 2)
	})

	t.Run("bad date", func(t *testing.T) {
		r, _ := setupHandlerTest(t)

		w, env := serve(r, http.MethodGet, "/api/attendance?from=yesterday", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, env.Error.Details, 1)
		assert.Equal(t, "from", env.Error.Details[0].Field)
	})
}

func TestAttendanceHandler_Mine(t *testing.T) {
	r, svc := setupHandlerTest(t)
	svc.EXPECT().
		Mine(gomock.Any(), attendance.ListAttendanceQuery{}).
		Return([]attendance.AttendanceResponse{}, nil)

	w, env := serve(r, http.MethodGet, "/api/attendance/me", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Ok)
}
