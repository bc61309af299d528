package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-hr-admin/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	JoinedOn  string  `json:"joinedOn" binding:"required,isodate"`
	LeaveType string  `json:"leaveType" binding:"omitempty,oneof=Sick Casual"`
	Days      float64 `json:"days" binding:"gt=0"`
}

func TestValidateStruct_ListsEveryViolation(t *testing.T) {
	apperror.Init()

	violations := apperror.ValidateStruct(sampleRequest{Email: "nope", JoinedOn: "10/01/2025", LeaveType: "Vacation"})

	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"name", "email", "joinedOn", "leaveType", "days"}, fields)
	assert.Equal(t, "Name is required", violations[0].Message)
	assert.Equal(t, "Joined On must be an ISO date (YYYY-MM-DD)", violations[2].Message)
}

func TestValidateStruct_Valid(t *testing.T) {
	apperror.Init()

	violations := apperror.ValidateStruct(sampleRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		JoinedOn: "2025-01-10",
		Days:     0.5,
	})
	assert.Empty(t, violations)
}

func TestParseISODate(t *testing.T) {
	d, err := apperror.ParseISODate("2025-01-10")
	assert.NoError(t, err)
	assert.Equal(t, "2025-01-10", d.Format(apperror.ISODateLayout))

	d, err = apperror.ParseISODate("2025-01-10T15:04:05Z")
	assert.NoError(t, err)
	assert.Equal(t, "2025-01-10", d.Format(apperror.ISODateLayout))

	_, err = apperror.ParseISODate("10-01-2025")
	assert.Error(t, err)
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and details", func(t *testing.T) {
		err := apperror.Validation(apperror.FieldViolation{Field: "name", Message: "Name is required"})
		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, apperror.CodeValidation, got.Code)
		assert.Len(t, got.Details, 1)
	})

	t.Run("wrapped sentinel still matches", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", apperror.ErrUnprovisioned)
		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusForbidden, got.Status)
		assert.Equal(t, apperror.CodeUnprovisioned, got.Code)
	})

	t.Run("unknown error becomes internal with detail outside production", func(t *testing.T) {
		apperror.ExposeInternalErrors(true)
		got := apperror.ToHTTP(errors.New("db down"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, "Internal server error", got.Message)
		assert.Equal(t, "db down", got.Details)
	})

	t.Run("production hides internal detail", func(t *testing.T) {
		apperror.ExposeInternalErrors(false)
		defer apperror.ExposeInternalErrors(true)

		got := apperror.ToHTTP(errors.New("db down"))
		assert.Nil(t, got.Details)
	})
}

func TestWithDetails_PreservesIdentity(t *testing.T) {
	err := apperror.ErrValidation.WithDetails([]string{"x"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.False(t, errors.Is(err, apperror.ErrNotFound))
}

func TestFieldViolations(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		err := apperror.Validation(apperror.FieldViolation{Field: "to", Message: "To must not be before From"})

		v := apperror.FieldViolations(err)
		assert.Len(t, v, 1)
		assert.Equal(t, "to", v[0].Field)
	})

	t.Run("wrapped validation error", func(t *testing.T) {
		err := fmt.Errorf("list: %w", apperror.Validation(apperror.FieldViolation{Field: "limit"}))

		v := apperror.FieldViolations(err)
		assert.Len(t, v, 1)
		assert.Equal(t, "limit", v[0].Field)
	})

	t.Run("negative non validation errors", func(t *testing.T) {
		assert.Nil(t, apperror.FieldViolations(apperror.ErrNotFound))
		assert.Nil(t, apperror.FieldViolations(errors.New("boom")))
		assert.Nil(t, apperror.FieldViolations(nil))
	})
}
