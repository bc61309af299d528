package leave

import (
	"errors"

	leaveerrors "go-hr-admin/internal/leave/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	// employee_code references employees.employee_code
	if dbutil.IsForeignKeyViolation(err) {
		return apperror.Validation(apperror.FieldViolation{
			Field:   "employeeId",
			Message: "Employee ID does not exist",
		})
	}

	return err
}
