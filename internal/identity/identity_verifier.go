package identity

import (
	"context"

	"go-hr-admin/internal/domain"
)

// TokenVerifier turns a bearer token into a verified identity claim.
//
//go:generate mockgen -source=identity_verifier.go -destination=mock/identity_verifier_mock.go -package=mock
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Claim, error)
}
