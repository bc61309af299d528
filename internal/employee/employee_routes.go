package employee

import (
	"time"

	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authenticate gin.HandlerFunc,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	employees := r.Group("/employees")
	employees.Use(authenticate)
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "employee", "read"),
			handler.List,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "employee", "read"),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(rbacService, "employee", "write"),
			middleware.Idempotency(rdb, 24*time.Hour),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(rbacService, "employee", "write"),
			handler.Update,
		)
	}
}
