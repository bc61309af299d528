package rbac

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRoleRepo struct {
	roles []domain.Role
	err   error
}

func (f *fakeRoleRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return f.roles, f.err
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func setupRBACRouter(t *testing.T, repo Repository, principal *domain.Principal) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	h := NewHandler(newDefaultService(t), repo)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if principal != nil {
			c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), principal))
		}
		c.Next()
	})
	r.GET("/api/roles", h.ListRoles)
	r.GET("/api/roles/check", h.Check)
	return r
}

func TestHandler_ListRoles(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := setupRBACRouter(t, &fakeRoleRepo{roles: domain.Roles}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roles", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var roles []RoleResponse
		assert.NoError(t, json.Unmarshal(env.Data, &roles))
		assert.Len(t, roles, 4)
		assert.Equal(t, domain.RoleAdmin, roles[0].Name)
		assert.Contains(t, roles[0].Permissions, "employee:write")
		assert.NotContains(t, roles[3].Permissions, "leave:review")
	})

	t.Run("negative repo error", func(t *testing.T) {
		r := setupRBACRouter(t, &fakeRoleRepo{err: errors.New("db down")}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roles", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandler_Check(t *testing.T) {
	manager := &domain.Principal{UID: "u1", EmployeeCode: "EMP002", Role: domain.RoleManager}

	t.Run("success", func(t *testing.T) {
		r := setupRBACRouter(t, &fakeRoleRepo{}, manager)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roles/check?resource=leave&action=review", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var res CheckResponse
		assert.NoError(t, json.Unmarshal(env.Data, &res))
		assert.True(t, res.Allowed)
		assert.Equal(t, []string{domain.RoleAdmin, domain.RoleHR, domain.RoleManager}, res.AllowedRoles)
	})

	t.Run("negative missing query", func(t *testing.T) {
		r := setupRBACRouter(t, &fakeRoleRepo{}, manager)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roles/check?resource=leave", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, apperror.CodeValidation, env.Error.Code)
	})

	t.Run("negative no principal", func(t *testing.T) {
		r := setupRBACRouter(t, &fakeRoleRepo{}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roles/check?resource=leave&action=review", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRegisterRoutes_RoleListingGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	mount := func(p *domain.Principal) *gin.Engine {
		r := gin.New()
		authenticate := func(c *gin.Context) {
			c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), p))
			c.Next()
		}
		RegisterRoutes(r.Group("/api"), NewHandler(newDefaultService(t), &fakeRoleRepo{roles: domain.Roles}), authenticate)
		return r
	}

	t.Run("hr lists roles", func(t *testing.T) {
		w := httptest.NewRecorder()
		mount(&domain.Principal{UID: "u1", Role: domain.RoleHR}).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roles", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative employee is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		mount(&domain.Principal{UID: "u2", Role: domain.RoleEmployee}).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roles", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)

		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, apperror.CodeForbidden, env.Error.Code)
	})

	t.Run("employee may still check access", func(t *testing.T) {
		w := httptest.NewRecorder()
		mount(&domain.Principal{UID: "u2", Role: domain.RoleEmployee}).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roles/check?resource=leave&action=create", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
