package identity

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hr-admin/internal/config"
	"go-hr-admin/internal/domain"
	identityerrors "go-hr-admin/internal/identity/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// IDTokenVerifier is the slice of *auth.Client the verifier needs.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type firebaseVerifier struct {
	client IDTokenVerifier
	logger *zap.Logger
}

// NewFirebaseVerifier initialises the Firebase Admin SDK from the service
// account fields in cfg. Without a client email/private key it falls back
// to application default credentials.
func NewFirebaseVerifier(ctx context.Context, cfg config.AuthConfig) (TokenVerifier, error) {
	var opts []option.ClientOption
	if cfg.FirebaseClientEmail != "" && cfg.FirebasePrivateKey != "" {
		creds, err := json.Marshal(map[string]string{
			"type":         "service_account",
			"project_id":   cfg.FirebaseProjectID,
			"client_email": cfg.FirebaseClientEmail,
			"private_key":  cfg.FirebasePrivateKey,
			"token_uri":    "https://oauth2.googleapis.com/token",
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase admin sdk: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase auth client: %w", err)
	}
	zap.L().Info("firebase admin sdk initialised", zap.String("project_id", cfg.FirebaseProjectID))

	return NewFirebaseVerifierWithClient(client), nil
}

func NewFirebaseVerifierWithClient(client IDTokenVerifier) TokenVerifier {
	return &firebaseVerifier{client: client, logger: zap.L().Named("identity.firebase")}
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (domain.Claim, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		v.logger.Debug("verify id token failed", zap.Error(err))
		if auth.IsIDTokenExpired(err) {
			return domain.Claim{}, identityerrors.ErrTokenExpired
		}
		return domain.Claim{}, identityerrors.ErrInvalidToken
	}

	email, _ := decoded.Claims["email"].(string)
	return domain.Claim{UID: decoded.UID, Email: email}, nil
}
