package report

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authenticate gin.HandlerFunc, rbacService middleware.RBACService) {
	reports := r.Group("/reports")
	reports.Use(authenticate, middleware.Authorize(rbacService, "report", "read"))
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/:dataset/export", middleware.RateLimitByUser(0.2, 3), h.Export)
	}
}
