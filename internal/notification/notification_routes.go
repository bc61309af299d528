package notification

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authenticate gin.HandlerFunc, rbacService middleware.RBACService) {
	notifications := r.Group("/notifications")
	notifications.Use(authenticate, middleware.Authorize(rbacService, "notification", "read"))
	{
		notifications.GET("", h.List)
		notifications.PATCH("/:id/read", h.MarkRead)
	}
}
