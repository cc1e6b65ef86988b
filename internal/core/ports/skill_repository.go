package ports

import (
	"context"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// SkillFilter narrows a skill listing. Zero values mean "no filter".
type SkillFilter struct {
	UserID        string
	Type          domain.SkillType
	ExcludeUserID string
}

// SkillRepository defines persistence operations for skill listings.
// List returns newest first.
type SkillRepository interface {
	List(ctx context.Context, filter SkillFilter) ([]domain.Skill, error)
	FindByID(ctx context.Context, id string) (*domain.Skill, error)
	Create(ctx context.Context, skill *domain.Skill) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter SkillFilter) (int64, error)
}
