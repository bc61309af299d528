package reporterrors

import (
	"net/http"

	"go-hr-admin/internal/shared/apperror"
)

var ErrUnknownDataset = apperror.New(
	apperror.CodeNotFound,
	"Report dataset not found",
	http.StatusNotFound,
)
