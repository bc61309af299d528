package identityerrors

import (
	"net/http"

	"go-hr-admin/internal/shared/apperror"
)

var (
	ErrMissingToken = apperror.New(
		apperror.CodeUnauthenticated,
		"Missing Authorization header",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthenticated,
		"Invalid or expired token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthenticated,
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrUnprovisioned = apperror.ErrUnprovisioned
)
