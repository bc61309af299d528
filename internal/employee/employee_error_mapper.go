package employee

import (
	"errors"

	employeeerrors "go-hr-admin/internal/employee/errors"
	"go-hr-admin/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	switch {
	case dbutil.IsDuplicateKey(err, "uq_employees_email"):
		return employeeerrors.ErrEmailAlreadyExists
	case dbutil.IsDuplicateKey(err, "uq_employees_code"):
		return employeeerrors.ErrEmployeeCodeAlreadyExists
	case dbutil.IsDuplicateKey(err, "uq_employees_firebase_uid"):
		return employeeerrors.ErrFirebaseUIDAlreadyLinked
	case dbutil.IsDuplicateKey(err, ""):
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
