package leaveerrors

import (
	"net/http"

	"go-hr-admin/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Leave request has already been decided",
		http.StatusConflict,
	)
	ErrNotOwnLeave = apperror.New(
		apperror.CodeForbidden,
		"You may only access your own leave requests",
		http.StatusForbidden,
	)
)
