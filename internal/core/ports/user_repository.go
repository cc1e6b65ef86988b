package ports

import (
	"context"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// UserFilter narrows a user listing. A nil Active matches every account.
type UserFilter struct {
	Active *bool
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches case-insensitively; emails are stored lowercased.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) error
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
}
