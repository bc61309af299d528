package auth

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authenticate gin.HandlerFunc) {
	r.GET("/me", authenticate, middleware.RateLimitByUser(2, 5), handler.Me)
}
