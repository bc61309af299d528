package auth

import (
	"context"

	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"
)

// PermissionLister reports the effective permissions of a role.
type PermissionLister interface {
	Permissions(role string) []string
}

type Service interface {
	Me(ctx context.Context) (MeResponse, error)
}

type service struct {
	permissions PermissionLister
}

func NewService(permissions PermissionLister) Service {
	return &service{permissions: permissions}
}

func (s *service) Me(ctx context.Context) (MeResponse, error) {
	p := contextutil.GetPrincipal(ctx)
	if p == nil {
		return MeResponse{}, apperror.ErrUnauthenticated
	}

	perms := []string{}
	if s.permissions != nil {
		if v := s.permissions.Permissions(p.Role); v != nil {
			perms = v
		}
	}

	return MeResponse{
		UID:         p.UID,
		Email:       p.Email,
		ID:          p.EmployeeID,
		EmployeeID:  p.EmployeeCode,
		Name:        p.Name,
		Department:  p.Department,
		RoleID:      p.RoleID,
		Role:        p.Role,
		Permissions: perms,
	}, nil
}
