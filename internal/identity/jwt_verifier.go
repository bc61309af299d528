package identity

import (
	"context"
	"errors"
	"time"

	"go-hr-admin/internal/domain"
	identityerrors "go-hr-admin/internal/identity/errors"

	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier verifies HS256 tokens signed with a shared secret. It stands
// in for Firebase in local development and tests.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (domain.Claim, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claim{}, identityerrors.ErrTokenExpired
		}
		return domain.Claim{}, identityerrors.ErrInvalidToken
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		uid, _ = claims["sub"].(string)
	}
	if uid == "" {
		return domain.Claim{}, identityerrors.ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return domain.Claim{UID: uid, Email: email}, nil
}

// Issue signs a token for uid, used by hrctl to mint local dev tokens.
func (v *JWTVerifier) Issue(uid, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
