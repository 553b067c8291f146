package ports

import (
	"context"

	"github.com/tradingportal/companies-api/internal/core/domain"
)

// TokenPair is the access/refresh token pair issued on login and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService covers registration and the three login paths (password,
// refresh and Google). The rest of the system never touches credentials; it
// only consumes the principal resolved from the access token.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GoogleLogin(ctx context.Context, code string) (*TokenPair, *domain.User, error)
}
