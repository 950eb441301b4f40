package ports

import (
	"context"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string) error
}

// TokenPayload is the identity extracted from a verified Google ID token.
type TokenPayload struct {
	Email string
	Name  string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string, clientID string) (*TokenPayload, error)
}

type AuthService interface {
	LoginWithGoogle(ctx context.Context, googleToken string) (string, string, error) // returns access_token, refresh_token, error
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
}
