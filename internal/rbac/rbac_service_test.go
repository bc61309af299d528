package rbac

import (
	"testing"

	"go-hr-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultService(t *testing.T) Service {
	t.Helper()
	policy, err := DefaultPolicy()
	require.NoError(t, err)
	svc, err := NewService(policy)
	require.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newDefaultService(t)

	cases := []struct {
		role, resource, action string
		allowed                bool
	}{
		{domain.RoleEmployee, "leave", "create", true},
		{domain.RoleEmployee, "leave", "review", false},
		{domain.RoleEmployee, "leave", "read_all", false},
		{domain.RoleManager, "leave", "review", true},
		{domain.RoleManager, "leave", "create", true},
		{domain.RoleManager, "employee", "write", false},
		{domain.RoleHR, "employee", "write", true},
		{domain.RoleHR, "report", "read", true},
		{domain.RoleAdmin, "leave", "review", true},
		{domain.RoleAdmin, "report", "read", true},
		{"Contractor", "leave", "create", false},
	}

	for _, tc := range cases {
		allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestRBACService_AllowedRoles(t *testing.T) {
	svc := newDefaultService(t)

	assert.Equal(t,
		[]string{domain.RoleAdmin, domain.RoleHR, domain.RoleManager},
		svc.AllowedRoles("leave", "review"),
	)
	assert.Equal(t,
		[]string{domain.RoleAdmin, domain.RoleHR, domain.RoleManager},
		svc.AllowedRoles("leave", "read_all"),
	)
	assert.Equal(t,
		[]string{domain.RoleAdmin, domain.RoleHR},
		svc.AllowedRoles("employee", "write"),
	)
	assert.Empty(t, svc.AllowedRoles("payroll", "run"))
}

func TestRBACService_Permissions(t *testing.T) {
	svc := newDefaultService(t)

	perms := svc.Permissions(domain.RoleManager)
	assert.Contains(t, perms, "leave:review")
	assert.Contains(t, perms, "leave:create")
	assert.NotContains(t, perms, "employee:write")
	assert.IsNonDecreasing(t, perms)
}

func TestRBACService_Reload(t *testing.T) {
	svc := newDefaultService(t)

	policy, err := ParsePolicy([]byte(`
roles:
  Employee:
    permissions: [leave:create]
  Manager:
    permissions: [leave:create]
`))
	require.NoError(t, err)
	require.NoError(t, svc.Reload(policy))

	allowed, err := svc.Enforce(domain.RoleManager, "leave", "review")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestParsePolicy(t *testing.T) {
	t.Run("success default", func(t *testing.T) {
		p, err := DefaultPolicy()
		assert.NoError(t, err)
		assert.Len(t, p.Roles, 4)
	})

	t.Run("negative unknown parent", func(t *testing.T) {
		_, err := ParsePolicy([]byte("roles:\n  HR:\n    inherits: [Boss]\n"))
		assert.ErrorContains(t, err, "unknown role Boss")
	})

	t.Run("negative malformed permission", func(t *testing.T) {
		_, err := ParsePolicy([]byte("roles:\n  HR:\n    permissions: [leave]\n"))
		assert.ErrorContains(t, err, "expected resource:action")
	})

	t.Run("negative unknown field", func(t *testing.T) {
		_, err := ParsePolicy([]byte("roles:\n  HR:\n    perms: [leave:read]\n"))
		assert.Error(t, err)
	})

	t.Run("negative empty", func(t *testing.T) {
		_, err := ParsePolicy([]byte("roles: {}\n"))
		assert.Error(t, err)
	})
}
