package leave

import (
	"time"

	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts /leaves. History, balances and validate check
// ownership in the service, the rest are gated here.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authenticate gin.HandlerFunc,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(authenticate)
	{
		leaves.GET("/validate", handler.Validate)
		leaves.GET("/:id/balances", handler.Balances)
		leaves.GET("/:id", handler.History)

		leaves.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb, 24*time.Hour),
			handler.Create,
		)

		leaves.GET("",
			middleware.Authorize(rbacService, "leave", "read_all"),
			handler.List,
		)

		leaves.PATCH("/:id/status",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(rbacService, "leave", "review"),
			handler.UpdateStatus,
		)
	}
}
