package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go-hr-admin/internal/employee"
	employeemock "go-hr-admin/internal/employee/mock"
	"go-hr-admin/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestRoleRows_DefaultPolicy(t *testing.T) {
	rows, err := roleRows("")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byName := map[string]roleRow{}
	for _, r := range rows {
		byName[r.Name] = r
	}

	assert.Equal(t, uint(1), byName["Admin"].ID)
	assert.Equal(t, []string{"Employee"}, byName["Manager"].Inherits)
	assert.Contains(t, byName["Employee"].Permissions, "leave:create")
	assert.NotContains(t, byName["Employee"].Permissions, "leave:review")
	assert.Contains(t, byName["Manager"].Permissions, "leave:create")
	assert.Contains(t, byName["Admin"].Permissions, "report:read")
}

func TestRoleRows_MissingPolicyFile(t *testing.T) {
	_, err := roleRows("/nonexistent/policy.yaml")
	assert.Error(t, err)
}

func TestRenderRoles(t *testing.T) {
	rows, err := roleRows("")
	require.NoError(t, err)

	var buf bytes.Buffer
	renderRoles(&buf, rows)

	out := buf.String()
	assert.Contains(t, out, "ROLE")
	assert.Contains(t, out, "Manager")
	assert.Contains(t, out, "attendance:read_all")
}

func TestRenderEmployees(t *testing.T) {
	uid := "firebase-1"
	rows := []employee.Employee{
		{EmployeeCode: "EMP001", Name: "Ayu", Email: "ayu@example.com", Department: "Finance", RoleID: 2, Status: employee.StatusActive, FirebaseUID: &uid},
		{EmployeeCode: "EMP002", Name: "Budi", Email: "budi@example.com", Department: "IT", RoleID: 4, Status: employee.StatusActive},
	}

	var buf bytes.Buffer
	renderEmployees(&buf, rows, 2)

	out := buf.String()
	assert.Contains(t, out, "EMP001")
	assert.Contains(t, out, "HR")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "TOTAL")
}

func TestLinkEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeemock.NewMockRepository(ctrl)

		repo.EXPECT().FindByCode(ctx, "EMP003").Return(&employee.Employee{ID: 3, EmployeeCode: "EMP003"}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			require.NotNil(t, e.FirebaseUID)
			assert.Equal(t, "uid-3", *e.FirebaseUID)
			return nil
		})

		e, err := linkEmployee(ctx, repo, " emp003 ", "uid-3")
		require.NoError(t, err)
		assert.Equal(t, "EMP003", e.EmployeeCode)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeemock.NewMockRepository(ctrl)
		repo.EXPECT().FindByCode(ctx, "EMP404").Return(nil, gorm.ErrRecordNotFound)

		_, err := linkEmployee(ctx, repo, "EMP404", "uid")
		assert.EqualError(t, err, "employee EMP404 not found")
	})

	t.Run("update failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeemock.NewMockRepository(ctrl)
		repo.EXPECT().FindByCode(ctx, "EMP001").Return(&employee.Employee{EmployeeCode: "EMP001"}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(errors.New("duplicate uid"))

		_, err := linkEmployee(ctx, repo, "EMP001", "uid")
		assert.EqualError(t, err, "duplicate uid")
	})

	t.Run("empty uid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeemock.NewMockRepository(ctrl)

		_, err := linkEmployee(ctx, repo, "EMP001", "  ")
		assert.Error(t, err)
	})
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("HR_JWT_SECRET", "test-secret")
	initConfig()

	cmd := tokenCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--uid", "uid-9", "--email", "nina@example.com", "--ttl", "1h"})
	require.NoError(t, cmd.Execute())

	token := strings.TrimSpace(out.String())
	claim, err := identity.NewJWTVerifier("test-secret").Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-9", claim.UID)
	assert.Equal(t, "nina@example.com", claim.Email)
}

func TestTokenCommand_RequiresUID(t *testing.T) {
	t.Setenv("HR_JWT_SECRET", "test-secret")
	initConfig()

	cmd := tokenCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.EqualError(t, cmd.Execute(), "--uid is required")
}
