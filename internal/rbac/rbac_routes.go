package rbac

import (
	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /roles. The permission table is an admin screen;
// any signed-in user may check their own access.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authenticate gin.HandlerFunc) {
	roles := r.Group("/roles")
	roles.Use(authenticate)
	{
		roles.GET("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHR), handler.ListRoles)
		roles.GET("/check", handler.Check)
	}
}
