package attendance

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authenticate gin.HandlerFunc, rbacService middleware.RBACService) {
	attendance := r.Group("/attendance")
	attendance.Use(authenticate)
	{
		attendance.GET("", middleware.Authorize(rbacService, "attendance", "read_all"), h.List)
		attendance.GET("/me", middleware.Authorize(rbacService, "attendance", "read_own"), h.Mine)
		attendance.POST("/clock-in", middleware.RateLimitByUser(0.2, 2), middleware.Authorize(rbacService, "attendance", "clock"), h.ClockIn)
		attendance.POST("/clock-out", middleware.RateLimitByUser(0.2, 2), middleware.Authorize(rbacService, "attendance", "clock"), h.ClockOut)
	}
}
