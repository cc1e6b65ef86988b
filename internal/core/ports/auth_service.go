package ports

import (
	"context"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// RegisterInput carries the data needed to open a USER account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Bio      string
}

// AuthService registers accounts and issues access tokens.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
