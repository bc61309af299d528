package auth_test

import (
	"context"
	"testing"

	"go-hr-admin/internal/auth"
	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePermissions map[string][]string

func (f fakePermissions) Permissions(role string) []string { return f[role] }

func TestService_Me(t *testing.T) {
	perms := fakePermissions{domain.RoleManager: {"leave:read_all", "leave:review"}}

	t.Run("principal with permissions", func(t *testing.T) {
		ctx := contextutil.WithPrincipal(context.Background(), &domain.Principal{
			UID:          "uid-1",
			Email:        "m@example.com",
			EmployeeID:   3,
			EmployeeCode: "EMP003",
			Name:         "Mira",
			Department:   "Ops",
			RoleID:       domain.RoleIDManager,
			Role:         domain.RoleManager,
		})

		me, err := auth.NewService(perms).Me(ctx)

		require.NoError(t, err)
		assert.Equal(t, "EMP003", me.EmployeeID)
		assert.Equal(t, uint(3), me.ID)
		assert.Equal(t, []string{"leave:read_all", "leave:review"}, me.Permissions)
	})

	t.Run("role without permissions gets empty list", func(t *testing.T) {
		ctx := contextutil.WithPrincipal(context.Background(), &domain.Principal{Role: domain.RoleEmployee})

		me, err := auth.NewService(perms).Me(ctx)

		require.NoError(t, err)
		assert.NotNil(t, me.Permissions)
		assert.Empty(t, me.Permissions)
	})

	t.Run("no principal", func(t *testing.T) {
		_, err := auth.NewService(perms).Me(context.Background())

		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})
}
