package middleware

import (
	"strings"

	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/identity"
	identityerrors "go-hr-admin/internal/identity/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"
	"go-hr-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys set by Authenticate.
const (
	ContextPrincipal    = "principal"
	ContextUserID       = "user_id"
	ContextEmployeeCode = "employee_id"
	ContextRole         = "role"
)

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

// Authenticate verifies the bearer token and resolves it to a local
// principal. Nothing downstream runs unless both steps succeed.
func Authenticate(verifier identity.TokenVerifier, resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := contextutil.GetLogger(ctx, zap.L()).Named("middleware.auth")

		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			abortWithError(c, identityerrors.ErrMissingToken)
			return
		}

		claim, err := verifier.Verify(ctx, token)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			abortWithError(c, err)
			return
		}

		principal, err := resolver.Resolve(ctx, claim)
		if err != nil {
			abortWithError(c, err)
			return
		}

		reqLogger := contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", principal.UID),
			zap.String("employee_id", principal.EmployeeCode),
		)
		ctx = contextutil.WithPrincipal(ctx, principal)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Set(ContextPrincipal, principal)
		c.Set(ContextUserID, principal.UID)
		c.Set(ContextEmployeeCode, principal.EmployeeCode)
		c.Set(ContextRole, principal.Role)

		c.Next()
	}
}

// RequireRoles only lets principals whose role is in allowedRoles through.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			abortWithError(c, apperror.ErrUnauthenticated)
			return
		}

		if !principal.HasRole(allowedRoles...) {
			abortWithError(c, apperror.ErrForbidden)
			return
		}

		c.Next()
	}
}

// CurrentPrincipal returns the principal attached by Authenticate.
func CurrentPrincipal(c *gin.Context) (*domain.Principal, bool) {
	if v, exists := c.Get(ContextPrincipal); exists {
		if p, ok := v.(*domain.Principal); ok && p != nil {
			return p, true
		}
	}
	if p := contextutil.GetPrincipal(c.Request.Context()); p != nil {
		return p, true
	}
	return nil, false
}
