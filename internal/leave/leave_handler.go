package leave

import (
	"net/http"

	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// tolerateViolations keeps field violations for the service, which reports
// them together with the cross-field checks. Decode errors are returned.
func tolerateViolations(err error) error {
	if err == nil || len(apperror.Violations(err)) > 0 {
		return nil
	}
	return apperror.MapValidationError(err)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := tolerateViolations(c.ShouldBindJSON(&req)); err != nil {
		h.logger.Warn("http create leave bind failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http create leave", zap.String("employee_id", req.EmployeeID))

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var q ListLeavesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http update leave status", zap.String("leave_id", id))

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave status validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// History handles GET /leaves/:id where id is an employee code.
func (h *Handler) History(c *gin.Context) {
	code := c.Param("id")

	resp, err := h.service.History(c.Request.Context(), code)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Balances(c *gin.Context) {
	code := c.Param("id")

	resp, err := h.service.Balances(c.Request.Context(), code)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Validate(c *gin.Context) {
	var req CreateLeaveRequest
	if err := tolerateViolations(c.ShouldBindQuery(&req)); err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
