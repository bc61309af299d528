package middleware

import (
	"go-hr-admin/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// RBACService adalah interface lokal.
// Apapun package yang punya method Enforce(role, resource, action) bisa masuk ke sini.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

// Authorize gates a route on the principal's role holding resource:action.
func Authorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			abortWithError(c, apperror.ErrUnauthenticated)
			return
		}

		allowed, err := service.Enforce(principal.Role, resource, action)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if !allowed {
			abortWithError(c, apperror.ErrForbidden.WithDetails(map[string]string{
				"required": resource + ":" + action,
			}))
			return
		}
		c.Next()
	}
}
