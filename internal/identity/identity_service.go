package identity

import (
	"context"
	"errors"

	"go-hr-admin/internal/domain"
	identityerrors "go-hr-admin/internal/identity/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolver maps a verified claim to the local employee and role.
//
//go:generate mockgen -source=identity_service.go -destination=mock/identity_service_mock.go -package=mock
type Resolver interface {
	Resolve(ctx context.Context, claim domain.Claim) (*domain.Principal, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("identity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Resolve(ctx context.Context, claim domain.Claim) (*domain.Principal, error) {
	row, err := s.repo.FindByFirebaseUID(ctx, claim.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("firebase uid not mapped to employees table", zap.String("uid", claim.UID))
			return nil, identityerrors.ErrUnprovisioned
		}
		s.logger.Error("resolve principal failed", zap.String("uid", claim.UID), zap.Error(err))
		return nil, err
	}

	email := claim.Email
	if email == "" {
		email = row.Email
	}

	return &domain.Principal{
		UID:          claim.UID,
		Email:        email,
		EmployeeID:   row.ID,
		EmployeeCode: row.EmployeeCode,
		Name:         row.Name,
		Department:   row.Department,
		RoleID:       row.RoleID,
		Role:         row.Role,
	}, nil
}
