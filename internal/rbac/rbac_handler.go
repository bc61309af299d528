package rbac

import (
	"net/http"
	"strings"

	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"
	"go-hr-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	repo    Repository
	logger  *zap.Logger
}

func NewHandler(service Service, repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, repo: repo, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// ListRoles returns the seeded roles with their effective permissions.
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.repo.ListRoles(c.Request.Context())
	if err != nil {
		h.logger.Error("list roles failed", zap.Error(err))
		writeServiceError(c, err)
		return
	}

	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleResponse{
			ID:          r.ID,
			Name:        r.Name,
			Permissions: h.service.Permissions(r.Name),
		})
	}
	response.Success(c, http.StatusOK, out, nil)
}

// Check evaluates resource:action for the calling principal.
func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	principal := contextutil.GetPrincipal(c.Request.Context())
	if principal == nil {
		writeServiceError(c, apperror.ErrUnauthenticated)
		return
	}

	allowed, err := h.service.Enforce(principal.Role, req.Resource, req.Action)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, CheckResponse{
		Role:         principal.Role,
		Resource:     req.Resource,
		Action:       req.Action,
		Allowed:      allowed,
		AllowedRoles: h.service.AllowedRoles(req.Resource, req.Action),
	}, nil)
}
