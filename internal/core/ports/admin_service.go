package ports

import (
	"context"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// UserSkills groups one user's listings by type.
type UserSkills struct {
	Offered []domain.Skill
	Needed  []domain.Skill
}

// UserWithSkills is an account plus, when requested, its listings.
type UserWithSkills struct {
	domain.User
	Skills *UserSkills
}

// AdminService defines the dashboard and moderation use cases.
type AdminService interface {
	Metrics(ctx context.Context) (*domain.PlatformMetrics, error)
	Users(ctx context.Context, includeSkills bool) ([]UserWithSkills, error)
	SetUserActive(ctx context.Context, id string, active bool) (*domain.User, error)
}
