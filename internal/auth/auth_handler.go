package auth

import (
	"net/http"

	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (ctrl *Handler) Me(c *gin.Context) {
	me, err := ctrl.service.Me(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, me, nil)
}
