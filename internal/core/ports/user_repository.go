package ports

import (
	"context"

	"github.com/tradingportal/companies-api/internal/core/domain"
)

// UserRepository defines persistence for portal users.
//
// Create maps a unique-constraint violation on username or email to
// domain.ErrUserExists; lookups return domain.ErrUserNotFound when no row
// matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
