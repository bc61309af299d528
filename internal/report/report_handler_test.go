package report_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hr-admin/internal/report"
	reporterrors "go-hr-admin/internal/report/errors"
	reportMock "go-hr-admin/internal/report/mock"
	"go-hr-admin/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupHandlerTest(t *testing.T) (*gin.Engine, *reportMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	svc := reportMock.NewMockService(gomock.NewController(t))
	h := report.NewHandler(svc)

	r := gin.New()
	r.GET("/api/reports/summary", h.Summary)
	r.GET("/api/reports/:dataset/export", h.Export)
	return r, svc
}

func TestReportHandler_Summary(t *testing.T) {
	r, svc := setupHandlerTest(t)
	svc.EXPECT().
		Summary(gomock.Any(), report.RangeQuery{From: "2025-01-01", To: "2025-01-31"}).
		Return(report.SummaryResponse{Headcount: 7, Leaves: map[string]int64{"Pending": 3}}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/summary?from=2025-01-01&to=2025-01-31", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data report.SummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.Data.Headcount)
	assert.Equal(t, int64(3), body.Data.Leaves["Pending"])
}

func TestReportHandler_Export(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		r, svc := setupHandlerTest(t)
		svc.EXPECT().
			Export(gomock.Any(), "leaves", report.ExportQuery{Format: "csv"}).
			Return(report.ExportFile{
				Filename:    "leaves-2025-01-31.csv",
				ContentType: "text/csv; charset=utf-8",
				Body:        []byte("\"ID\"\n"),
			}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/leaves/export?format=csv", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="leaves-2025-01-31.csv"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "\"ID\"\n", w.Body.String())
	})

	t.Run("unknown dataset", func(t *testing.T) {
		r, svc := setupHandlerTest(t)
		svc.EXPECT().Export(gomock.Any(), "salaries", gomock.Any()).Return(report.ExportFile{}, reporterrors.ErrUnknownDataset)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/salaries/export", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad format rejected at bind", func(t *testing.T) {
		r, _ := setupHandlerTest(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/leaves/export?format=pdf", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
