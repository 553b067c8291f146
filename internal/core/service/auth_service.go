package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tradingportal/companies-api/internal/core/domain"
	"github.com/tradingportal/companies-api/internal/core/ports"
)

// RefreshTokenStore abstracts the Redis-backed refresh token storage.
// Tokens are opaque random strings; the store maps them to a user id until
// they expire or are rotated away.
type RefreshTokenStore interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// Get returns domain.ErrInvalidToken for unknown or expired tokens.
	Get(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

// GoogleVerifier abstracts the Google OAuth code exchange so the service can
// be tested without the network.
type GoogleVerifier interface {
	// Exchange trades an authorization code for the account's email and name.
	Exchange(ctx context.Context, code string) (email, name string, err error)
}

// AuthService implements registration, password login, token refresh and
// Google social login.
type AuthService struct {
	users      ports.UserRepository
	tokens     RefreshTokenStore
	google     GoogleVerifier
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users ports.UserRepository, tokens RefreshTokenStore, google GoogleVerifier, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		google:     google,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a new
// pair is issued, so a leaked token can be replayed at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidToken
	}

	userID, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return s.issuePair(ctx, user)
}

// GoogleLogin exchanges the authorization code and signs the matching portal
// user in, creating the account on first login with that email.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*ports.TokenPair, *domain.User, error) {
	if code == "" {
		return nil, nil, domain.ErrInvalidToken
	}

	email, name, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("google exchange: %w", domain.ErrInvalidToken)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err == domain.ErrUserNotFound {
		now := time.Now().UTC()
		user, err = s.users.Create(ctx, &domain.User{
			Username:  name,
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refresh := newRefreshToken()
	if err := s.tokens.Save(ctx, refresh, user.ID, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &ports.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      user.ID,
		"username":     user.Username,
		"is_superuser": user.IsSuperuser,
		"exp":          time.Now().Add(s.accessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func newRefreshToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// fallback: time-derived, still bounded by the store TTL
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
