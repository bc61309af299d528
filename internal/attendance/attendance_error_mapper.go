package attendance

import (
	"errors"

	attendanceerrors "go-hr-admin/internal/attendance/errors"
	"go-hr-admin/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrClockInNotFound
	}
	// two clock-ins racing for the same day
	if dbutil.IsDuplicateKey(err, "uq_attendance_employee_date") {
		return attendanceerrors.ErrAlreadyClockedIn
	}
	return err
}
